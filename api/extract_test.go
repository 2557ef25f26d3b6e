package api

import (
	"encoding/json"
	"testing"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name     string
		payload  map[string]any
		wantText string
		wantRule string
	}{
		{"a2a input", map[string]any{"a2a": map[string]any{"input": "civil news"}, "message": "ignored"}, "civil news", "a2a.input"},
		{"a2a blank falls through", map[string]any{"a2a": map[string]any{"input": "  "}, "message": "hello"}, "hello", "message"},
		{"a2a not an object", map[string]any{"a2a": "oops", "text": "t"}, "t", "text"},
		{"message before text", map[string]any{"message": "m", "text": "t", "body": "b"}, "m", "message"},
		{"text before body", map[string]any{"text": "t", "body": "b"}, "t", "text"},
		{"body", map[string]any{"body": "  b  "}, "b", "body"},
		{"non-string message skipped", map[string]any{"message": map[string]any{"parts": []any{}}, "body": "b"}, "b", "body"},
		{"unmapped keys", map[string]any{"foo": "bar"}, "", ""},
		{"nil payload", nil, "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, rule := ExtractText(c.payload)
			if text != c.wantText || rule != c.wantRule {
				t.Fatalf("ExtractText = (%q, %q); want (%q, %q)", text, rule, c.wantText, c.wantRule)
			}
		})
	}
}

func TestExtractID(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"messageId first", map[string]any{"messageId": "a", "id": "b", "message_id": "c", "conversation_id": "d"}, "a"},
		{"id", map[string]any{"id": "b", "message_id": "c"}, "b"},
		{"message_id", map[string]any{"message_id": "c", "conversation_id": "d"}, "c"},
		{"conversation_id", map[string]any{"conversation_id": "d"}, "d"},
		{"numeric id", map[string]any{"id": float64(12345)}, "12345"},
		{"json number id", map[string]any{"id": json.Number("12345678901234567891")}, "12345678901234567891"},
		{"empty skipped", map[string]any{"messageId": "", "id": "b"}, "b"},
		{"none", map[string]any{"text": "x"}, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractID(c.payload)
			if c.want == "" {
				if got != nil {
					t.Fatalf("ExtractID = %q; want nil", *got)
				}
				return
			}
			if got == nil || *got != c.want {
				t.Fatalf("ExtractID = %v; want %q", got, c.want)
			}
		})
	}
}
