package classifier

import (
	"context"
	"strings"
)

// Rule is one ordered substring-to-label mapping.
type Rule struct {
	Substring string
	Label     string
}

// RuleClassifier is the deterministic collaborator used by tests and by
// console runs with no LLM key configured. It checks rules in
// declaration order and returns the first whose substring appears in
// the input and whose label is also a candidate.
type RuleClassifier struct {
	Rules []Rule
}

func NewRuleClassifier(rules ...Rule) *RuleClassifier {
	return &RuleClassifier{Rules: rules}
}

func (r *RuleClassifier) DetectIntent(_ context.Context, userInput string, candidates []string) string {
	for _, rule := range r.Rules {
		if !strings.Contains(userInput, rule.Substring) {
			continue
		}
		if containsCandidate(candidates, rule.Label) {
			return rule.Label
		}
	}
	return Unknown
}
