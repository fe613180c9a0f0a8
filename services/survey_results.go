package services

import (
	"strconv"

	"fanhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyResults is the aggregate view of every response to a survey.
type SurveyResults struct {
	SurveyTitle    string           `json:"surveyTitle"`
	TotalResponses int              `json:"totalResponses"`
	Questions      []QuestionResult `json:"questions"`
}

// QuestionResult holds the per-question aggregate. Which fields are
// populated depends on the question type.
type QuestionResult struct {
	Question string `json:"question"`
	Type     string `json:"type"`

	// Choice questions: count per declared option (zero-filled).
	OptionCounts map[string]int `json:"optionCounts,omitempty"`

	// Text questions: every non-empty answer in arrival order.
	TextAnswers []string `json:"textAnswers,omitempty"`

	// Scale questions. HasStats is false when no answer was usable, in
	// which case Average/Min/Max carry no meaning. The numeric stats are
	// always emitted so a legitimate zero (min 0 on a 0-based scale) is
	// not dropped from the JSON.
	HasStats     bool        `json:"hasStats,omitempty"`
	Average      float64     `json:"average"`
	Min          int         `json:"min"`
	Max          int         `json:"max"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

// BuildResults tallies raw responses against a survey definition. It is a
// pure function over its inputs: answers with unknown option values or
// non-coercible scale values are skipped silently, and zero responses yield
// a well-defined empty result for every question type.
func BuildResults(survey *models.Survey, responses []models.SurveyResponse) SurveyResults {
	results := SurveyResults{
		SurveyTitle:    survey.Title,
		TotalResponses: len(responses),
		Questions:      make([]QuestionResult, 0, len(survey.Questions)),
	}

	for i, question := range survey.Questions {
		key := strconv.Itoa(i)
		qr := QuestionResult{Question: question.Text, Type: question.Type}

		switch question.Type {
		case models.QuestionSingleChoice, models.QuestionMultipleChoice:
			qr.OptionCounts = tallyChoices(question, responses, key)
		case models.QuestionText:
			qr.TextAnswers = collectTexts(responses, key)
		case models.QuestionScale:
			qr.HasStats, qr.Average, qr.Min, qr.Max, qr.Distribution = summarizeScale(responses, key)
		}

		results.Questions = append(results.Questions, qr)
	}

	return results
}

func tallyChoices(question models.Question, responses []models.SurveyResponse, key string) map[string]int {
	counts := make(map[string]int, len(question.Options))
	for _, option := range question.Options {
		counts[option] = 0
	}

	for _, response := range responses {
		answer, ok := response.Answers[key]
		if !ok {
			continue
		}
		for _, selected := range answerValues(answer) {
			if _, declared := counts[selected]; declared {
				counts[selected]++
			}
		}
	}
	return counts
}

// answerValues flattens an answer into the selected option strings. A
// multiple-choice answer arrives as a list (primitive.A when decoded from
// bson); a single-choice answer as a bare string.
func answerValues(answer interface{}) []string {
	switch v := answer.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		return stringSlice(v)
	case primitive.A:
		return stringSlice(v)
	default:
		return nil
	}
}

func stringSlice(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func collectTexts(responses []models.SurveyResponse, key string) []string {
	answers := []string{}
	for _, response := range responses {
		if text, ok := response.Answers[key].(string); ok && text != "" {
			answers = append(answers, text)
		}
	}
	return answers
}

func summarizeScale(responses []models.SurveyResponse, key string) (bool, float64, int, int, map[int]int) {
	distribution := map[int]int{}
	sum, min, max := 0, 0, 0
	count := 0

	for _, response := range responses {
		value, ok := coerceInt(response.Answers[key])
		if !ok {
			continue
		}
		if count == 0 || value < min {
			min = value
		}
		if count == 0 || value > max {
			max = value
		}
		sum += value
		count++
		distribution[value]++
	}

	if count == 0 {
		return false, 0, 0, 0, distribution
	}
	return true, float64(sum) / float64(count), min, max, distribution
}

// coerceInt accepts the numeric shapes the bson decoder produces plus
// numeric strings typed into the chat. Everything else is not countable.
func coerceInt(answer interface{}) (int, bool) {
	switch v := answer.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
