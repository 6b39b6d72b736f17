package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
	"google.golang.org/api/option"
)

// Quotes is the built-in list used when no generator is configured or all fail
var Quotes = []string{
	"Consistency beats intensity. Keep showing up!",
	"Every healthy choice is a vote for the future you want.",
	"You don't have to be extreme, just consistent.",
	"Strong body, stronger mind, one step at a time.",
	"Fuel your body, focus your mind, follow your plan.",
}

const (
	quotePrompt = `You are a friendly fitness coach.
Write ONE short motivational sentence (at most 15 words) about healthy eating and regular exercise.
Return only the sentence, without quotes, emojis or explanations.`
	maxQuoteLen  = 200
	quoteTimeout = 10 * time.Second
)

var errEmptyQuote = errors.New("empty quote")

// QuoteGenerator produces a motivational line from a language model
type QuoteGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// CoachService hands out one motivational quote per calendar day. Generators
// are tried in order; the static list is the last resort.
type CoachService struct {
	generators []QuoteGenerator
	closers    []func() error
	errHandler *apperrors.Handler

	mu    sync.Mutex
	cache map[string]string
}

// NewCoachService wires Gemini then OpenAI when their keys are set
func NewCoachService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*CoachService, error) {
	var (
		gens    []QuoteGenerator
		closers []func() error
	)

	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		gens = append(gens, &geminiGenerator{client: client})
		closers = append(closers, client.Close)
	}
	if openaiAPIKey != "" {
		gens = append(gens, &openaiGenerator{client: openai.NewClient(openaiAPIKey)})
	}

	s := NewCoachServiceWithGenerators(gens...)
	s.closers = closers
	return s, nil
}

// NewCoachServiceWithGenerators builds a coach over explicit generators
func NewCoachServiceWithGenerators(gens ...QuoteGenerator) *CoachService {
	return &CoachService{
		generators: gens,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		cache:      make(map[string]string),
	}
}

// WithErrorHandler replaces the handler that records provider failures
func (s *CoachService) WithErrorHandler(h *apperrors.Handler) *CoachService {
	s.errHandler = h
	return s
}

// Quote returns the quote for day; repeated calls on the same day agree
func (s *CoachService) Quote(ctx context.Context, day time.Time) string {
	key := utils.DayKey(day)

	s.mu.Lock()
	if q, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return q
	}
	s.mu.Unlock()

	q := s.generate(ctx)
	if q == "" {
		q = StaticQuote(day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cache[key]; ok {
		return existing
	}
	s.cache[key] = q
	return q
}

func (s *CoachService) generate(ctx context.Context) string {
	for _, g := range s.generators {
		genCtx, cancel := context.WithTimeout(ctx, quoteTimeout)
		text, err := g.Generate(genCtx, quotePrompt)
		cancel()
		if err != nil {
			s.errHandler.Handle(ctx, apperrors.NewExternalAPIError(err, g.Name()))
			continue
		}
		if q := cleanQuote(text); q != "" {
			return q
		}
		s.errHandler.Handle(ctx, apperrors.NewExternalAPIError(errEmptyQuote, g.Name()))
	}
	return ""
}

// Close releases generator clients
func (s *CoachService) Close() error {
	for _, c := range s.closers {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

// StaticQuote picks from Quotes by day so the choice is stable within a day
func StaticQuote(day time.Time) string {
	return Quotes[day.YearDay()%len(Quotes)]
}

func cleanQuote(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.Trim(s, "\"'` ")
	if len(s) > maxQuoteLen {
		return ""
	}
	return s
}

type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) Name() string { return "gemini" }

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

type openaiGenerator struct {
	client *openai.Client
}

func (g *openaiGenerator) Name() string { return "openai" }

func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT3Dot5Turbo,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: 60,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
