package service

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/pkg/logger"
	"arch_quiz_backend/pkg/monitoring"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	objectivePrompt = `당신은 건축시공학 교수입니다. 건축시공학과 관련된 객관식 4지선다형 문제를 하나 출제하세요.
아래 형식의 JSON 으로 출력하세요. JSON 외의 텍스트는 출력하지 마세요.

{
  "문제": "...",
  "선택지1": "...",
  "선택지2": "...",
  "선택지3": "...",
  "선택지4": "...",
  "정답": "1",
  "해설": "..."
}`

	subjectivePrompt = `당신은 건축시공학 교수입니다. 건축시공학과 관련된 주관식 문제를 하나 출제하세요.
아래 형식의 JSON 으로 출력하세요. JSON 외의 텍스트는 출력하지 마세요.

{
  "문제": "...",
  "모범답안": "...",
  "해설": "..."
}`

	lecturePromptFmt = `당신은 건축시공학 교수입니다. 아래 강의 내용을 바탕으로 객관식 4지선다형 문제를 하나 출제해주세요.
JSON 형식으로 출력해주세요. JSON 외의 텍스트는 출력하지 마세요.

[강의 내용]
%s

아래 형식으로 출력하세요:
{
  "문제": "...",
  "선택지1": "...",
  "선택지2": "...",
  "선택지3": "...",
  "선택지4": "...",
  "정답": "1",
  "해설": "..."
}`

	keywordPromptFmt = `당신은 건축시공학 교수입니다. 키워드 "%s" 와 관련된 난이도 "%s" 의 객관식 4지선다형 문제를 하나 출제하세요.
아래 형식의 JSON 으로 출력하세요. JSON 외의 텍스트는 출력하지 마세요.

{
  "문제": "...",
  "선택지1": "...",
  "선택지2": "...",
  "선택지3": "...",
  "선택지4": "...",
  "정답": "1",
  "해설": "..."
}`

	explanationPromptFmt = `당신은 건축시공학 교수입니다. 아래 문제와 정답에 대한 해설을 작성하세요.
긴 해설과 핵심 요약 3가지를 아래 형식의 JSON 으로 출력하세요. JSON 외의 텍스트는 출력하지 마세요.

[문제]
%s

[정답]
%s

{
  "해설": "...",
  "요약": ["...", "...", "..."]
}`
)

// lectureTextLimit caps how much lecture material goes into the prompt.
const lectureTextLimit = 1500

// CallError tags a generation failure as transient (worth retrying) or
// permanent (malformed response, rejected request).
type CallError struct {
	Transient bool
	Err       error
}

func (e *CallError) Error() string {
	if e.Transient {
		return fmt.Sprintf("generation: transient: %v", e.Err)
	}
	return fmt.Sprintf("generation: permanent: %v", e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

func transientErr(err error) *CallError { return &CallError{Transient: true, Err: err} }
func permanentErr(err error) *CallError { return &CallError{Transient: false, Err: err} }

type aiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []aiChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message aiChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerationService produces questions and explanations through a hosted
// chat-completion endpoint.
type GenerationService struct {
	cfg        config.AIConfig
	client     *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewGenerationService(cfg config.AIConfig) *GenerationService {
	return &GenerationService{
		cfg:        cfg,
		client:     &http.Client{Timeout: 60 * time.Second},
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// chat performs one completion call and returns the raw assistant text.
func (s *GenerationService) chat(prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []aiChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", permanentErr(err)
	}

	req, err := http.NewRequest("POST", s.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", permanentErr(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", transientErr(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", transientErr(fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", permanentErr(fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", permanentErr(err)
	}
	if result.Error != nil {
		return "", permanentErr(fmt.Errorf("AI API error: %s", result.Error.Message))
	}
	if len(result.Choices) == 0 {
		return "", permanentErr(fmt.Errorf("AI returned no choices"))
	}
	return result.Choices[0].Message.Content, nil
}

// chatWithRetry retries transient failures with exponential backoff. A
// permanent failure is returned immediately.
func (s *GenerationService) chatWithRetry(prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(s.backoff << (attempt - 1))
		}
		text, err := s.chat(prompt)
		if err == nil {
			monitoring.ObserveGeneration("success")
			return text, nil
		}
		lastErr = err
		if ce, ok := err.(*CallError); !ok || !ce.Transient {
			monitoring.ObserveGeneration("permanent")
			return "", err
		}
		logger.Log.Warn("generation call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	monitoring.ObserveGeneration("transient")
	return "", lastErr
}

// StripCodeFence removes a surrounding ```json ... ``` block, which some
// models wrap around the payload despite instructions.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type objectivePayload struct {
	Question    string `json:"문제"`
	Choice1     string `json:"선택지1"`
	Choice2     string `json:"선택지2"`
	Choice3     string `json:"선택지3"`
	Choice4     string `json:"선택지4"`
	Answer      string `json:"정답"`
	Explanation string `json:"해설"`
}

type subjectivePayload struct {
	Question    string `json:"문제"`
	ModelAnswer string `json:"모범답안"`
	Explanation string `json:"해설"`
}

type explanationPayload struct {
	Explanation string   `json:"해설"`
	Summary     []string `json:"요약"`
}

func parseObjective(text, source string) (*model.Question, error) {
	var p objectivePayload
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &p); err != nil {
		return nil, permanentErr(fmt.Errorf("response is not valid JSON: %w", err))
	}
	if p.Question == "" || p.Answer == "" {
		return nil, permanentErr(fmt.Errorf("response is missing required fields"))
	}
	q := &model.Question{
		Text:        p.Question,
		Choice1:     p.Choice1,
		Choice2:     p.Choice2,
		Choice3:     p.Choice3,
		Choice4:     p.Choice4,
		Answer:      p.Answer,
		Explanation: model.Explanation{LongForm: p.Explanation},
		Source:      source,
		Format:      model.Objective,
	}
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, permanentErr(err)
	}
	return q, nil
}

// GenerateQuestion asks the model for one brand-new question of the given
// format, tagged with the construction-exam source label.
func (s *GenerationService) GenerateQuestion(format model.QuestionFormat) (*model.Question, error) {
	if format == model.Subjective {
		text, err := s.chatWithRetry(subjectivePrompt)
		if err != nil {
			return nil, err
		}
		var p subjectivePayload
		if err := json.Unmarshal([]byte(StripCodeFence(text)), &p); err != nil {
			return nil, permanentErr(fmt.Errorf("response is not valid JSON: %w", err))
		}
		if p.Question == "" || p.ModelAnswer == "" {
			return nil, permanentErr(fmt.Errorf("response is missing required fields"))
		}
		q := &model.Question{
			Text:        p.Question,
			Answer:      p.ModelAnswer,
			Explanation: model.Explanation{LongForm: p.Explanation},
			Source:      model.SourceConstructionExam,
			Format:      model.Subjective,
		}
		q.Normalize()
		if err := q.Validate(); err != nil {
			return nil, permanentErr(err)
		}
		return q, nil
	}

	text, err := s.chatWithRetry(objectivePrompt)
	if err != nil {
		return nil, err
	}
	return parseObjective(text, model.SourceConstructionExam)
}

// GenerateFromLecture builds an objective question from lecture text.
func (s *GenerationService) GenerateFromLecture(lectureText string) (*model.Question, error) {
	runes := []rune(lectureText)
	if len(runes) > lectureTextLimit {
		lectureText = string(runes[:lectureTextLimit])
	}
	text, err := s.chatWithRetry(fmt.Sprintf(lecturePromptFmt, lectureText))
	if err != nil {
		return nil, err
	}
	return parseObjective(text, model.SourceLecture)
}

// GenerateByKeyword builds an objective question around a keyword. When the
// model ignores the JSON instruction, the legacy plain-text layout is
// accepted as a fallback.
func (s *GenerationService) GenerateByKeyword(keyword, difficulty string) (*model.Question, error) {
	text, err := s.chatWithRetry(fmt.Sprintf(keywordPromptFmt, keyword, difficulty))
	if err != nil {
		return nil, err
	}
	q, err := parseObjective(text, model.SourceKeyword)
	if err == nil {
		return q, nil
	}
	if legacy, ok := ParseLegacyProblem(text); ok {
		legacy.Source = model.SourceKeyword
		return legacy, nil
	}
	return nil, err
}

// GenerateExplanation asks for a long-form explanation plus a three-point
// summary for an existing question.
func (s *GenerationService) GenerateExplanation(q *model.Question) (*model.Explanation, error) {
	answer := strings.TrimSpace(q.Answer)
	if q.IsObjective() {
		if idx, ok := q.AnswerIndex(); ok {
			answer = strings.TrimSpace(q.Choices()[idx-1])
		}
	}
	text, err := s.chatWithRetry(fmt.Sprintf(explanationPromptFmt, q.Text, answer))
	if err != nil {
		return nil, err
	}
	var p explanationPayload
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &p); err != nil {
		return nil, permanentErr(fmt.Errorf("response is not valid JSON: %w", err))
	}
	if p.Explanation == "" {
		return nil, permanentErr(fmt.Errorf("response is missing required fields"))
	}
	e := &model.Explanation{LongForm: p.Explanation, SummaryPoints: p.Summary}
	if err := e.Validate(); err != nil {
		return nil, permanentErr(err)
	}
	return e, nil
}
