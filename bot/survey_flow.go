package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fanhub/models"
)

// errSessionFinished marks a reply that arrived after the final answer was
// already recorded, before the session was removed from the store.
var errSessionFinished = errors.New("survey already finished")

// surveySession tracks one user's in-progress survey conversation. Sessions
// live in memory only; an interrupted conversation simply starts over.
// Updates are handled on separate goroutines, so all progress mutation goes
// through submit, which holds the session lock.
type surveySession struct {
	mu          sync.Mutex
	survey      *models.Survey
	questionIdx int
	answers     map[string]interface{}
}

// sessionStore guards the per-chat survey sessions against concurrent
// updates from the polling loop.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*surveySession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*surveySession)}
}

func (s *sessionStore) start(chatID int64, survey *models.Survey) *surveySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &surveySession{survey: survey, answers: map[string]interface{}{}}
	s.sessions[chatID] = session
	return session
}

func (s *sessionStore) get(chatID int64) (*surveySession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

func (s *sessionStore) end(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// promptFor renders the prompt for one question, including how to answer it.
func promptFor(question models.Question, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n\n%s", index+1, total, question.Text)

	switch question.Type {
	case models.QuestionSingleChoice:
		b.WriteString("\n\nReply with the number of your choice:")
		for i, option := range question.Options {
			fmt.Fprintf(&b, "\n%d. %s", i+1, option)
		}
	case models.QuestionMultipleChoice:
		b.WriteString("\n\nReply with the numbers of your choices, separated by commas:")
		for i, option := range question.Options {
			fmt.Fprintf(&b, "\n%d. %s", i+1, option)
		}
	case models.QuestionScale:
		fmt.Fprintf(&b, "\n\nReply with a number from %d to %d.", question.Min, question.Max)
	case models.QuestionText:
		b.WriteString("\n\nReply with your answer.")
	}

	return b.String()
}

// parseAnswer validates a raw text reply against a question definition and
// returns the value to store. Choice answers accept the 1-based option
// number or the option text itself.
func parseAnswer(question models.Question, text string) (interface{}, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty answer")
	}

	switch question.Type {
	case models.QuestionSingleChoice:
		option, err := matchOption(question.Options, text)
		if err != nil {
			return nil, err
		}
		return option, nil

	case models.QuestionMultipleChoice:
		parts := strings.Split(text, ",")
		seen := map[string]bool{}
		selected := []string{}
		for _, part := range parts {
			option, err := matchOption(question.Options, strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			if !seen[option] {
				seen[option] = true
				selected = append(selected, option)
			}
		}
		return selected, nil

	case models.QuestionScale:
		value, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("please reply with a number from %d to %d", question.Min, question.Max)
		}
		if value < question.Min || value > question.Max {
			return nil, fmt.Errorf("please reply with a number from %d to %d", question.Min, question.Max)
		}
		return value, nil

	default: // free text
		return text, nil
	}
}

func matchOption(options []string, text string) (string, error) {
	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("please pick a number from 1 to %d", len(options))
		}
		return options[n-1], nil
	}
	for _, option := range options {
		if strings.EqualFold(option, text) {
			return option, nil
		}
	}
	return "", fmt.Errorf("please pick one of the listed options")
}

// submit validates a raw reply against the current question and records it,
// all under the session lock: two quick messages from the same chat arrive
// on separate goroutines, and without the lock they would race on the answer
// map and could advance past the last question. Exactly one caller observes
// completion and receives a copy of the collected answers; later replies get
// errSessionFinished. When the survey is not finished, the prompt for the
// next question is returned instead.
func (s *surveySession) submit(text string) (map[string]interface{}, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.survey.Questions)
	if s.questionIdx >= total {
		return nil, "", errSessionFinished
	}

	answer, err := parseAnswer(s.survey.Questions[s.questionIdx], text)
	if err != nil {
		return nil, "", err
	}

	s.answers[strconv.Itoa(s.questionIdx)] = answer
	s.questionIdx++

	if s.questionIdx >= total {
		answers := make(map[string]interface{}, len(s.answers))
		for key, value := range s.answers {
			answers[key] = value
		}
		return answers, "", nil
	}
	return nil, promptFor(s.survey.Questions[s.questionIdx], s.questionIdx, total), nil
}
