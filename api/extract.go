package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FieldRule names one place a value may live in an inbound payload.
type FieldRule struct {
	Name string
	Path []string
}

// TextRules locate the user's text, highest priority first.
var TextRules = []FieldRule{
	{Name: "a2a.input", Path: []string{"a2a", "input"}},
	{Name: "message", Path: []string{"message"}},
	{Name: "text", Path: []string{"text"}},
	{Name: "body", Path: []string{"body"}},
}

// IDRules locate the correlation identifier, highest priority first.
var IDRules = []FieldRule{
	{Name: "messageId", Path: []string{"messageId"}},
	{Name: "id", Path: []string{"id"}},
	{Name: "message_id", Path: []string{"message_id"}},
	{Name: "conversation_id", Path: []string{"conversation_id"}},
}

// lookup walks Path through nested objects.
func (r FieldRule) lookup(payload map[string]any) (any, bool) {
	var cur any = payload
	for _, key := range r.Path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ExtractText returns the first non-blank string matched by TextRules and
// the rule name, or two empty strings.
func ExtractText(payload map[string]any) (text, rule string) {
	for _, r := range TextRules {
		v, ok := r.lookup(payload)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s, r.Name
			}
		}
	}
	return "", ""
}

// ExtractID returns the first non-empty identifier matched by IDRules.
// Numeric ids are rendered in their JSON form.
func ExtractID(payload map[string]any) *string {
	for _, r := range IDRules {
		v, ok := r.lookup(payload)
		if !ok {
			continue
		}
		var id string
		switch t := v.(type) {
		case string:
			id = strings.TrimSpace(t)
		case json.Number:
			id = t.String()
		case float64:
			id = strconv.FormatFloat(t, 'f', -1, 64)
		}
		if id != "" {
			return &id
		}
	}
	return nil
}
