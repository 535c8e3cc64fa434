// README: Ordered (predicate, message) rules that turn raw upstream errors into user-facing text.
package apperr

import "strings"

// Rule maps raw error text to a user message when Match returns true.
type Rule struct {
	Match   func(raw string) bool
	Message string
}

// Rules are evaluated top to bottom; the first match wins.
type Rules struct {
	list     []Rule
	fallback string
}

func NewRules(fallback string, rules ...Rule) Rules {
	return Rules{list: rules, fallback: fallback}
}

// Classify returns the message of the first matching rule, or the fallback.
func (r Rules) Classify(err error) string {
	if err == nil {
		return r.fallback
	}
	return r.ClassifyText(err.Error())
}

func (r Rules) ClassifyText(raw string) string {
	for _, rule := range r.list {
		if rule.Match != nil && rule.Match(raw) {
			return rule.Message
		}
	}
	return r.fallback
}

// ContainsAny matches when raw contains any of the substrings, case sensitive.
func ContainsAny(subs ...string) func(string) bool {
	return func(raw string) bool {
		for _, s := range subs {
			if strings.Contains(raw, s) {
				return true
			}
		}
		return false
	}
}

// UnreachableMarkers are the texts that mean the upstream could not be reached at all.
// Go's net errors say "connection refused"; the others are kept for upstreams that relay them.
var UnreachableMarkers = []string{"ECONNREFUSED", "fetch failed", "connection refused", "no such host"}
