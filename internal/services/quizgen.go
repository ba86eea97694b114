package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

const questionSystemPrompt = `You are a relationship quiz generator. The user will give you a quiz title and description. You must respond with ONLY valid JSON (no markdown, no code fences, no explanations) in the following format:

{
  "questions": [
    {
      "text": "Question text?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_index": 0,
      "explanation": "Short explanation of the correct answer"
    }
  ]
}

Rules:
- Each question must have 2 to 6 options
- correct_index is the zero-based index of the correct option
- Make questions personal and fun, suited to a quiz friends or couples play about each other
- Write everything in the same language as the quiz title
- Return ONLY the JSON object, nothing else`

// QuizGenService generates quiz questions from a title and description.
// The API key can be swapped at runtime through Configure.
type QuizGenService struct {
	mu    sync.RWMutex
	api   *openai.Client
	model string
}

func NewQuizGenService(apiKey string) *QuizGenService {
	s := &QuizGenService{model: openai.GPT4o}
	if apiKey != "" {
		s.api = openai.NewClient(apiKey)
	}
	return s
}

func (s *QuizGenService) Configure(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = openai.NewClient(apiKey)
}

func (s *QuizGenService) Generate(ctx context.Context, title, description string, count int) ([]QuestionInput, error) {
	s.mu.RLock()
	api := s.api
	s.mu.RUnlock()
	if api == nil {
		return nil, fmt.Errorf("question generation: openai is not configured")
	}

	if count <= 0 {
		count = 5
	}

	userPrompt := fmt.Sprintf("Quiz title: %q. Description: %q. Generate %d questions.", title, description, count)

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: questionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("question generation: empty response")
	}

	return parseGeneratedQuestions(resp.Choices[0].Message.Content)
}

type generatedQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// parseGeneratedQuestions converts the model's JSON into question inputs,
// dropping entries that are malformed.
func parseGeneratedQuestions(content string) ([]QuestionInput, error) {
	content = cleanJSONContent(content)

	var payload struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("question generation returned invalid JSON: %w", err)
	}

	inputs := make([]QuestionInput, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if q.Text == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			continue
		}
		input := QuestionInput{Text: q.Text, Explanation: q.Explanation}
		for i, text := range q.Options {
			input.Options = append(input.Options, OptionInput{
				Text:      text,
				IsCorrect: i == q.CorrectIndex,
			})
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
