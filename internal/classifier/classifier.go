// Package classifier provides the intent classification contract consumed
// by the Process instruction, plus its two collaborators: a Gemini-backed
// implementation and a deterministic rule-based mock.
package classifier

import "context"

// Unknown is the sentinel label returned when no candidate matches.
const Unknown = "UNKNOWN"

// Classifier detects which of a set of candidate intent labels best
// matches user input. Implementations never return an error; an
// unresolvable input simply yields Unknown.
type Classifier interface {
	DetectIntent(ctx context.Context, userInput string, candidates []string) string
}

func containsCandidate(candidates []string, label string) bool {
	for _, c := range candidates {
		if c == label {
			return true
		}
	}
	return false
}
