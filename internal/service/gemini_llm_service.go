package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Lorikeet/config"
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService produces short explanations for questions a user got
// wrong during quest review. It is strictly best-effort: review pages render
// fine without it, and any failure degrades to an empty explanation.
type GeminiLLMService interface {
	ExplainMistake(snapshot *model.QuestQuestionSnapshot, submittedAnswer string) (string, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

func (s *geminiLLMService) ExplainMistake(snapshot *model.QuestQuestionSnapshot, submittedAnswer string) (string, error) {
	if s.client == nil {
		return "", nil
	}

	correct := snapshot.Answer
	if snapshot.CorrectOption != nil {
		if idx := *snapshot.CorrectOption; idx >= 0 && idx < len(snapshot.Options) {
			correct = snapshot.Options[idx]
		}
	}

	prompt := fmt.Sprintf(
		"You are a friendly language tutor. A learner answered a practice question incorrectly.\n"+
			"Question: %s\n"+
			"Their answer: %s\n"+
			"Correct answer: %s\n"+
			"In at most two sentences, explain why the correct answer is right and give one short tip to remember it. "+
			"Do not scold the learner.",
		snapshot.Prompt, submittedAnswer, correct,
	)

	resp, err := s.client.GenerateContent(context.Background(), genai.Text(prompt))
	if err != nil {
		log.Warn().Err(err).Uint("snapshotID", snapshot.ID).Msg("ExplainMistake: Gemini request failed")
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
