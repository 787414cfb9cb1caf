package classifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// LLMClassifier wraps a Gemini generative model, formatting a prompt that
// asks the model to choose among the candidate labels and post-processing
// the reply: strip surrounding quotes, accept an exact match, fall back
// to substring containment, and otherwise report Unknown.
type LLMClassifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewLLMClassifier returns nil, nil when apiKey is empty so callers can
// fall back to the rule-based mock without special-casing configuration.
func NewLLMClassifier(ctx context.Context, apiKey string) (*LLMClassifier, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := client.GenerativeModel("gemini-2.5-flash-preview-09-2025")
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}
	return &LLMClassifier{client: client, model: model}, nil
}

func (l *LLMClassifier) Close() {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Close(); err != nil {
		log.Printf("warning: failed to close classifier client: %v", err)
	}
}

func (l *LLMClassifier) DetectIntent(ctx context.Context, userInput string, candidates []string) string {
	if l == nil || l.model == nil || len(candidates) == 0 {
		return Unknown
	}

	quoted := make([]string, len(candidates))
	for i, c := range candidates {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	systemPrompt := "You classify a user's message into exactly one of a fixed set of intent labels. " +
		"Respond with only the chosen label, nothing else."
	userPrompt := fmt.Sprintf("Message: %q\nCandidates: [%s]", userInput, strings.Join(quoted, ", "))

	l.model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	resp, err := l.model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		log.Printf("classifier: generate content failed: %v", err)
		return Unknown
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Unknown
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return Unknown
	}

	label := strings.TrimSpace(string(text))
	label = strings.Trim(label, `"'`)

	if containsCandidate(candidates, label) {
		return label
	}
	for _, c := range candidates {
		if strings.Contains(label, c) {
			return c
		}
	}
	return Unknown
}
