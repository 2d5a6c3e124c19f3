package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizmoa/internal/config"
	"quizmoa/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIQuizGenerator implements domain.QuizGenerationService with an OpenAI
// chat model through langchaingo.
type OpenAIQuizGenerator struct {
	llm         llms.Model
	maxInputLen int
	logger      *zap.Logger
}

// NewOpenAIQuizGenerator builds the generator from config, creating the
// OpenAI client.
func NewOpenAIQuizGenerator(cfg config.LLMConfig, logger *zap.Logger) (domain.QuizGenerationService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewOpenAIQuizGeneratorWithModel(llm, cfg.MaxInputLen, logger), nil
}

// NewOpenAIQuizGeneratorWithModel wires an already constructed model. Used by
// tests and by callers that manage the client themselves.
func NewOpenAIQuizGeneratorWithModel(llm llms.Model, maxInputLen int, logger *zap.Logger) domain.QuizGenerationService {
	return &OpenAIQuizGenerator{
		llm:         llm,
		maxInputLen: maxInputLen,
		logger:      logger,
	}
}

// Generate asks the model for a summary plus question list and parses the
// strict-JSON reply into domain.QuizContent.
func (g *OpenAIQuizGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.QuizContent, error) {
	text := req.Text
	if g.maxInputLen > 0 && len(text) > g.maxInputLen {
		// Token budget guard; study material beyond the cap is dropped.
		text = text[:g.maxInputLen]
	}

	prompt := g.buildPrompt(text, req)

	g.logger.Debug("Calling quiz generation model",
		zap.String("type", req.Type),
		zap.String("difficulty", req.Difficulty),
		zap.Int("count", req.Count),
		zap.Int("input_len", len(text)))

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.5))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	content, err := parseQuizContent(response)
	if err != nil {
		g.logger.Error("Failed to parse LLM quiz response",
			zap.Error(err),
			zap.String("response", response))
		return nil, domain.NewLLMServiceError(err)
	}

	valid := make([]domain.QuizItem, 0, len(content.Quizzes))
	for i, item := range content.Quizzes {
		if item.Question == "" || item.Answer == "" {
			g.logger.Warn("LLM generated incomplete quiz item, skipping",
				zap.Int("index", i))
			continue
		}
		if item.ID == 0 {
			item.ID = len(valid) + 1
		}
		if item.Options == nil {
			item.Options = []string{}
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("model returned no usable quiz items"))
	}
	content.Quizzes = valid

	return content, nil
}

func (g *OpenAIQuizGenerator) buildPrompt(text string, req domain.GenerationRequest) string {
	optionsRule := "Each question has 4-5 answer options and \"answer\" must equal one of them exactly."
	if req.Type == domain.TypeShortAnswer {
		optionsRule = "\"options\" must be an empty array and \"answer\" a single short word or phrase."
	}

	return fmt.Sprintf(`You are a study tutor. Read the study material below and respond with ONLY a JSON object in the following format:
{
    "summary": "three sentence summary of the material",
    "quizzes": [
        {"id": 1, "question": "...", "options": ["..."], "answer": "...", "explanation": "..."}
    ]
}

Rules:
1. Write in the same language as the study material.
2. Create exactly %d questions of type %s at %s difficulty.
3. %s
4. Every question and explanation must be grounded in the material.
5. "id" starts at 1 and increments by 1.

Study material:
%s`, req.Count, req.Type, req.Difficulty, optionsRule, text)
}

// parseQuizContent strips markdown fences the model sometimes wraps around
// its JSON and unmarshals the payload.
func parseQuizContent(response string) (*domain.QuizContent, error) {
	responseStr := strings.TrimSpace(response)
	responseStr = strings.TrimPrefix(responseStr, "```json")
	responseStr = strings.TrimPrefix(responseStr, "```")
	responseStr = strings.TrimSuffix(responseStr, "```")
	responseStr = strings.TrimSpace(responseStr)

	var content domain.QuizContent
	if err := json.Unmarshal([]byte(responseStr), &content); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return &content, nil
}

var _ domain.QuizGenerationService = (*OpenAIQuizGenerator)(nil)
