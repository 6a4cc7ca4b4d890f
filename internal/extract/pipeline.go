package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

// Attempt records why one strategy did not produce usable text.
type Attempt struct {
	Strategy string
	Reason   string
}

// PipelineError is returned when every strategy either failed or yielded
// empty text. It carries one reason per strategy attempted.
type PipelineError struct {
	Attempts []Attempt
}

func (e *PipelineError) Error() string {
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, a.Strategy+": "+a.Reason)
	}
	return "no text extracted: " + strings.Join(reasons, "; ")
}

// ErrorKind marks pipeline exhaustion as NO_TEXT_EXTRACTED at the boundary.
func (e *PipelineError) ErrorKind() common.Kind {
	return common.KindNoTextExtracted
}

// Reasons returns the per-strategy failure reasons in attempt order.
func (e *PipelineError) Reasons() []string {
	out := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Reason)
	}
	return out
}

// Pipeline tries strategies in the order given, cheapest first. The first
// strategy yielding a non-empty result wins and the rest are skipped. A
// strategy failure is recorded and fallback continues; it never aborts the run.
// The pipeline keeps no state across invocations.
type Pipeline struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewPipeline(logger *slog.Logger, strategies ...Strategy) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{strategies: strategies, logger: logger}
}

// Run executes the strategy ladder against doc.
func (p *Pipeline) Run(ctx context.Context, doc Document) (Result, error) {
	if len(p.strategies) == 0 {
		return Result{}, fmt.Errorf("pipeline has no strategies")
	}

	attempts := make([]Attempt, 0, len(p.strategies))
	for _, s := range p.strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := time.Now()
		res, err := s.Extract(ctx, doc)
		if err != nil {
			p.logger.Warn("pipeline.strategy.failed",
				"strategy", s.Name(),
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: err.Error()})
			continue
		}
		if res.Empty() {
			p.logger.Info("pipeline.strategy.empty",
				"strategy", s.Name(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: "empty result"})
			continue
		}

		res.Method = s.Name()
		res.Duration = time.Since(start)
		p.logger.Info("pipeline.strategy.ok",
			"strategy", s.Name(),
			"pages", len(res.Pages),
			"fields", len(res.Fields),
			"warnings", len(res.Warnings),
			"duration_ms", res.Duration.Milliseconds(),
		)
		return res, nil
	}

	return Result{}, &PipelineError{Attempts: attempts}
}
