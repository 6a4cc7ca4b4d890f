package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
}

func TestExtractFieldsParsesObject(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_, _ = w.Write([]byte(chatReply(`{"patients_name":"JANE DOE","charges":150.00,"days_units":null}`)))
	})

	fields, err := c.ExtractFields(context.Background(), [][]byte{[]byte("png")})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "JANE DOE", fields["patients_name"])
	assert.Equal(t, "150", fields["charges"], "numbers are coerced to strings")
	assert.NotContains(t, fields, "days_units", "nulls are dropped, not backfilled here")
}

func TestExtractFieldsStripsCodeFences(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply("```json\n{\"npi\":\"1234567890\"}\n```")))
	})

	fields, err := c.ExtractFields(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", fields["npi"])
}

func TestExtractFieldsMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply(`the form says the patient is Jane`)))
	})

	_, err := c.ExtractFields(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, common.KindMalformedResponse, common.KindOf(err))
}

func TestExtractFieldsNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.ExtractFields(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, common.KindMalformedResponse, common.KindOf(err))
}

func TestExtractFieldsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream sad", http.StatusBadGateway)
	})

	_, err := c.ExtractFields(context.Background(), nil)
	require.Error(t, err)
}

func TestParseFieldsJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		want    map[string]string
	}{
		{
			name:    "flat object",
			content: `{"a":"x","b":2,"c":true}`,
			want:    map[string]string{"a": "x", "b": "2", "c": "true"},
		},
		{
			name:    "rejects arrays",
			content: `["a","b"]`,
			wantErr: true,
		},
		{
			name:    "rejects nested objects",
			content: `{"a":{"b":"c"}}`,
			wantErr: true,
		},
		{
			name:    "rejects empty object",
			content: `{}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldsJSON(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, common.KindMalformedResponse, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
