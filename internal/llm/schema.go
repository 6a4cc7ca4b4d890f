package llm

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

// BuildFieldsJSONSchema constrains the model output to a flat object of
// scalar values. Key names are left free; the standardizer reconciles them
// with the canonical vocabulary afterwards.
func BuildFieldsJSONSchema() map[string]any {
	return map[string]any{
		"type":          "object",
		"minProperties": 1,
		"additionalProperties": map[string]any{
			"type": []string{"string", "number", "boolean", "null"},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseFieldsJSON decodes model output into a flat string map, coercing
// scalar values and dropping nulls. Anything else is malformed.
func ParseFieldsJSON(content string) (map[string]string, error) {
	raw := []byte(content)
	if err := ValidateJSONAgainstSchema(BuildFieldsJSONSchema(), raw); err != nil {
		return nil, common.NewAppError(common.KindMalformedResponse, "model output rejected by schema", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, common.NewAppError(common.KindMalformedResponse, "model output is not a JSON object", err)
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		}
	}
	return out, nil
}

func imageDataURL(img []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
}
