package bot

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"fanhub/models"
)

func TestParseAnswerSingleChoice(t *testing.T) {
	question := models.Question{
		Type:    models.QuestionSingleChoice,
		Options: []string{"Mirage", "Inferno", "Nuke"},
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2", "Inferno", false},
		{"inferno", "Inferno", false},
		{" Nuke ", "Nuke", false},
		{"0", "", true},
		{"4", "", true},
		{"Dust", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := parseAnswer(question, tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAnswer(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAnswer(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAnswer(%q) = %v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAnswerMultipleChoice(t *testing.T) {
	question := models.Question{
		Type:    models.QuestionMultipleChoice,
		Options: []string{"Highlights", "Interviews", "Memes"},
	}

	got, err := parseAnswer(question, "1, memes, 1")
	if err != nil {
		t.Fatalf("parseAnswer failed: %v", err)
	}
	want := []string{"Highlights", "Memes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected deduplicated %v, got %v", want, got)
	}

	if _, err := parseAnswer(question, "1, 9"); err == nil {
		t.Errorf("Expected error when one selection is out of range")
	}
}

func TestParseAnswerScale(t *testing.T) {
	question := models.Question{Type: models.QuestionScale, Min: 1, Max: 10}

	got, err := parseAnswer(question, "7")
	if err != nil {
		t.Fatalf("parseAnswer failed: %v", err)
	}
	if got != 7 {
		t.Errorf("Expected 7, got %v", got)
	}

	for _, in := range []string{"0", "11", "seven"} {
		if _, err := parseAnswer(question, in); err == nil {
			t.Errorf("parseAnswer(%q) expected error", in)
		}
	}
}

func TestParseAnswerText(t *testing.T) {
	question := models.Question{Type: models.QuestionText}

	got, err := parseAnswer(question, "  more watch parties  ")
	if err != nil {
		t.Fatalf("parseAnswer failed: %v", err)
	}
	if got != "more watch parties" {
		t.Errorf("Expected trimmed text, got %v", got)
	}

	if _, err := parseAnswer(question, "   "); err == nil {
		t.Errorf("Expected error for blank text answer")
	}
}

func TestSurveySessionSubmitAdvances(t *testing.T) {
	survey := &models.Survey{
		Questions: []models.Question{
			{Text: "q1", Type: models.QuestionText},
			{Text: "q2", Type: models.QuestionScale, Min: 1, Max: 5},
		},
	}
	store := newSessionStore()
	session := store.start(10, survey)

	answers, prompt, err := session.submit("answer one")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if answers != nil {
		t.Errorf("Survey reported done after first of two questions")
	}
	if !strings.Contains(prompt, "q2") {
		t.Errorf("Expected prompt for the second question, got %q", prompt)
	}

	answers, _, err = session.submit("4")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	want := map[string]interface{}{"0": "answer one", "1": 4}
	if !reflect.DeepEqual(answers, want) {
		t.Errorf("Expected answers %v, got %v", want, answers)
	}

	if _, _, err := session.submit("late reply"); !errors.Is(err, errSessionFinished) {
		t.Errorf("Expected errSessionFinished after the last answer, got %v", err)
	}

	store.end(10)
	if _, ok := store.get(10); ok {
		t.Errorf("Expected session removed after end")
	}
}

func TestSurveySessionSubmitInvalidAnswerKeepsPosition(t *testing.T) {
	survey := &models.Survey{
		Questions: []models.Question{
			{Text: "q1", Type: models.QuestionScale, Min: 1, Max: 5},
		},
	}
	session := newSessionStore().start(11, survey)

	if _, _, err := session.submit("nine"); err == nil {
		t.Fatalf("Expected validation error")
	}

	answers, _, err := session.submit("3")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !reflect.DeepEqual(answers, map[string]interface{}{"0": 3}) {
		t.Errorf("Expected the rejected reply to leave the question open, got %v", answers)
	}
}

func TestSurveySessionSubmitConcurrent(t *testing.T) {
	survey := &models.Survey{
		Questions: []models.Question{
			{Text: "q1", Type: models.QuestionText},
			{Text: "q2", Type: models.QuestionText},
			{Text: "q3", Type: models.QuestionText},
		},
	}
	store := newSessionStore()
	store.start(7, survey)

	const replies = 8
	var wg sync.WaitGroup
	finished := make(chan map[string]interface{}, replies)
	late := make(chan error, replies)

	for i := 0; i < replies; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, ok := store.get(7)
			if !ok {
				t.Errorf("Session disappeared mid-survey")
				return
			}
			answers, _, err := session.submit("answer")
			if answers != nil {
				finished <- answers
			}
			if errors.Is(err, errSessionFinished) {
				late <- err
			}
		}()
	}
	wg.Wait()
	close(finished)
	close(late)

	completions := 0
	for answers := range finished {
		completions++
		if len(answers) != len(survey.Questions) {
			t.Errorf("Expected %d recorded answers, got %d", len(survey.Questions), len(answers))
		}
	}
	if completions != 1 {
		t.Errorf("Expected exactly one goroutine to observe completion, got %d", completions)
	}
	if got := len(late); got != replies-len(survey.Questions) {
		t.Errorf("Expected %d late replies, got %d", replies-len(survey.Questions), got)
	}
}

func TestPromptForListsOptions(t *testing.T) {
	question := models.Question{
		Text:    "Favorite map?",
		Type:    models.QuestionSingleChoice,
		Options: []string{"Mirage", "Inferno"},
	}

	prompt := promptFor(question, 0, 3)
	if !strings.Contains(prompt, "Question 1/3") {
		t.Errorf("Expected question counter in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "1. Mirage") || !strings.Contains(prompt, "2. Inferno") {
		t.Errorf("Expected numbered options in prompt, got %q", prompt)
	}
}

func TestPromptForScaleRange(t *testing.T) {
	question := models.Question{Text: "Rate us", Type: models.QuestionScale, Min: 1, Max: 10}
	prompt := promptFor(question, 2, 3)
	if !strings.Contains(prompt, "from 1 to 10") {
		t.Errorf("Expected scale bounds in prompt, got %q", prompt)
	}
}
