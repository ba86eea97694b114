package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// maxReplyLength is the hard budget for a posted reply. Anything longer is
// cut to exactly this length with a trailing ellipsis.
const maxReplyLength = 240

const replySystemPrompt = "You are @answerthembot, a witty Twitter bot that helps users respond " +
	"to tweets with cleverness and humor. Keep your responses under 240 characters."

const classifySystemPrompt = "You analyze tweets mentioning @answerthembot to determine what type of response the user wants. " +
	"Classify the request as one of: 'witty', 'roast', 'debate', or 'peace'. " +
	"Respond with JSON in this format: { \"command\": string, \"confidence\": number }. " +
	"command should be one of the four values above, and confidence should be between 0 and 1."

const wittyTemplate = `You are a witty Twitter bot that creates clever and humorous responses.
Tweet: %q
Author: @%s

Generate a witty, clever reply in under 240 characters. Make it funny and engaging, but keep it respectful.
The response should be a standalone witty comment that anyone would understand without context.`

const roastTemplate = `You are a Twitter bot that specializes in gentle roasts and comebacks.
Tweet: %q
Author: @%s

Generate a roast reply in under 240 characters. Make it cutting and humorous, but not mean-spirited or offensive.
Keep the roast focused on the argument or statement, never on personal attributes.`

const debateTemplate = `You are a Twitter bot that provides logical counter-arguments in debates.
Tweet: %q
Author: @%s

Generate a smart, logical counter-argument in under 240 characters. Be reasonable and fact-based, but with a touch of wit.
Focus on making a solid point rather than attacking the person.`

const peaceTemplate = `You are a Twitter bot that de-escalates heated conversations with calming responses.
Tweet: %q
Author: @%s

Generate a calming, de-escalating response in under 240 characters. Add a touch of wisdom and humor while encouraging
civil discourse. Find common ground and reduce tension.`

// ResponderService wraps the chat-completion API behind the two operations
// the bot needs: classifying a mention and drafting a reply.
type ResponderService struct {
	api   *openai.Client
	model string
}

func NewResponderService(apiKey string) *ResponderService {
	return &ResponderService{
		api:   openai.NewClient(apiKey),
		model: openai.GPT4o,
	}
}

type classifyResult struct {
	Command    string  `json:"command"`
	Confidence float64 `json:"confidence"`
}

// DetectMode classifies a mention into one of the four reply modes. Any
// failure, from transport errors to out-of-enumeration output, falls back to
// witty with confidence 0.5 so ingestion never stalls on classification.
func (s *ResponderService) DetectMode(ctx context.Context, content string) (models.ResponseMode, float64) {
	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return models.ModeWitty, 0.5
	}

	var result classifyResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return models.ModeWitty, 0.5
	}

	mode := models.ResponseMode(result.Command)
	if !mode.Valid() {
		return models.ModeWitty, 0.5
	}
	return mode, clampConfidence(result.Confidence)
}

func clampConfidence(c float64) float64 {
	if c == 0 {
		return 0.5
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// GenerateReply drafts a reply in the given mode. The caller decides what a
// failure means; there is no retry here.
func (s *ResponderService) GenerateReply(ctx context.Context, content, author string, mode models.ResponseMode) (string, error) {
	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: replySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: replyPrompt(content, author, mode)},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("reply generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("reply generation: empty response")
	}

	return postProcessReply(resp.Choices[0].Message.Content), nil
}

func replyPrompt(content, author string, mode models.ResponseMode) string {
	switch mode {
	case models.ModeRoast:
		return fmt.Sprintf(roastTemplate, content, author)
	case models.ModeDebate:
		return fmt.Sprintf(debateTemplate, content, author)
	case models.ModePeace:
		return fmt.Sprintf(peaceTemplate, content, author)
	default:
		return fmt.Sprintf(wittyTemplate, content, author)
	}
}

// postProcessReply trims whitespace, strips one pair of wrapping quotes and
// enforces the 240-character budget. A truncated reply is exactly 240
// characters and ends in an ellipsis.
func postProcessReply(raw string) string {
	text := strings.TrimSpace(raw)

	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	runes := []rune(text)
	if len(runes) > maxReplyLength {
		text = string(runes[:maxReplyLength-3]) + "..."
	}
	return text
}
