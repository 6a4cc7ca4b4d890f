package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name  string
	res   Result
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(_ context.Context, _ Document) (Result, error) {
	s.calls++
	return s.res, s.err
}

func TestPipelineFirstNonEmptyWins(t *testing.T) {
	first := &stubStrategy{name: "first", res: Result{Pages: []string{""}}}
	second := &stubStrategy{name: "second", res: Result{Pages: []string{"hello"}}}
	third := &stubStrategy{name: "third", res: Result{Pages: []string{"never"}}}

	p := NewPipeline(nil, first, second, third)
	res, err := p.Run(context.Background(), Document{Data: []byte("x")})
	require.NoError(t, err)

	assert.Equal(t, "hello", res.Text())
	assert.Equal(t, "second", res.Method)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls, "strategies after the winner must not run")
}

func TestPipelineRecoversFromStrategyFailure(t *testing.T) {
	failing := &stubStrategy{name: "broken", err: errors.New("engine unavailable")}
	working := &stubStrategy{name: "working", res: Result{Pages: []string{"text"}}}

	p := NewPipeline(nil, failing, working)
	res, err := p.Run(context.Background(), Document{})
	require.NoError(t, err)
	assert.Equal(t, "text", res.Text())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestPipelineAllFailAggregation(t *testing.T) {
	a := &stubStrategy{name: "a", err: errors.New("boom")}
	b := &stubStrategy{name: "b", res: Result{Pages: []string{"  \n "}}}
	c := &stubStrategy{name: "c", err: errors.New("bang")}

	p := NewPipeline(nil, a, b, c)
	_, err := p.Run(context.Background(), Document{})
	require.Error(t, err)

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	require.Len(t, pe.Attempts, 3, "one failure reason per strategy attempted")
	assert.Equal(t, "a", pe.Attempts[0].Strategy)
	assert.Equal(t, "boom", pe.Attempts[0].Reason)
	assert.Equal(t, "empty result", pe.Attempts[1].Reason)
	assert.Equal(t, "bang", pe.Attempts[2].Reason)
	assert.Len(t, pe.Reasons(), 3)
}

func TestPipelineFieldsResultWins(t *testing.T) {
	text := &stubStrategy{name: "text", res: Result{}}
	structured := &stubStrategy{name: "structured", res: Result{Fields: map[string]string{"patients_name": "JANE"}}}

	p := NewPipeline(nil, text, structured)
	res, err := p.Run(context.Background(), Document{})
	require.NoError(t, err)
	assert.Equal(t, "JANE", res.Fields["patients_name"])
}

func TestPipelineNoStrategies(t *testing.T) {
	p := NewPipeline(nil)
	_, err := p.Run(context.Background(), Document{})
	assert.Error(t, err)
}

func TestResultEmpty(t *testing.T) {
	assert.True(t, Result{}.Empty())
	assert.True(t, Result{Pages: []string{" ", "\n\f\n"}}.Empty())
	assert.False(t, Result{Pages: []string{"", "x"}}.Empty())
	assert.False(t, Result{Fields: map[string]string{"k": "v"}}.Empty())
}
