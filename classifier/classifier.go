// Package classifier maps free chat text to a news search query.
package classifier

import "strings"

// Topic is the outcome of classification.
type Topic struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// Rule matches when any keyword occurs as a substring of the lowercased text,
// so "ai" also matches inside "email".
type Rule struct {
	Topic    Topic    `json:"topic"`
	Keywords []string `json:"keywords"`
}

// Default is used when no rule matches.
var Default = Topic{
	Name:  "general",
	Query: "engineering OR technology OR innovation OR discovery OR breakthrough",
}

// rules are evaluated in order; the first match wins.
var rules = []Rule{
	{
		Topic:    Topic{Name: "civil", Query: "civil engineering OR structural engineering OR bridge OR concrete"},
		Keywords: []string{"civil"},
	},
	{
		Topic:    Topic{Name: "mechanical", Query: "mechanical engineering OR robotics OR manufacturing OR thermodynamics"},
		Keywords: []string{"mechanical"},
	},
	{
		Topic:    Topic{Name: "aerospace", Query: "aerospace OR flight OR satellite OR space technology"},
		Keywords: []string{"aerospace"},
	},
	{
		Topic:    Topic{Name: "materials", Query: "materials science OR nanomaterials OR composites OR metallurgy"},
		Keywords: []string{"materials", "materials science"},
	},
	{
		Topic:    Topic{Name: "software", Query: "software engineering OR AI OR machine learning OR programming"},
		Keywords: []string{"software", "ai"},
	},
}

// Classify returns the topic of the first matching rule, or Default.
func Classify(text string) Topic {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.Topic
		}
	}
	return Default
}

func (r Rule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Rules returns a copy of the ordered rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Topic:    r.Topic,
			Keywords: append([]string(nil), r.Keywords...),
		}
	}
	return out
}
