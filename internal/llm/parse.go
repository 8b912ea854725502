package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/vettalabs/vetta/internal/interview"
)

// Defaults applied when an evaluation response cannot be parsed.
const (
	neutralScore    = 70
	neutralFeedback = "The answer broadly meets expectations."
)

var errNoJSON = errors.New("llm: no JSON object in response")

// jsonBlockRe matches the first JSON object in a response; models often wrap
// the object in prose or markdown fences.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// listItemRe strips leading enumeration from generated question lines
// ("1. ", "2) ", "3、").
var listItemRe = regexp.MustCompile(`^\d+[.)、:]\s*`)

func extractJSON(raw string) (string, error) {
	m := jsonBlockRe.FindString(raw)
	if m == "" {
		return "", errNoJSON
	}
	return m, nil
}

// Score pointers distinguish a missing field from an explicit 0; a model
// that omits the score gets the neutral default, not a zero.
type evaluationPayload struct {
	Score          *float64 `json:"score"`
	Feedback       string   `json:"feedback"`
	NeedFollowup   bool     `json:"need_followup"`
	FollowupReason string   `json:"followup_reason"`
}

func parseEvaluation(raw string) (interview.Evaluation, error) {
	blob, err := extractJSON(raw)
	if err != nil {
		return interview.Evaluation{}, err
	}

	var p evaluationPayload
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return interview.Evaluation{}, err
	}

	ev := interview.Evaluation{
		Score:    neutralScore,
		Feedback: p.Feedback,
	}
	if p.Score != nil {
		ev.Score = clampScore(int(*p.Score))
	}
	if ev.Feedback == "" {
		ev.Feedback = neutralFeedback
	}
	if p.NeedFollowup && p.FollowupReason != "" {
		reason := p.FollowupReason
		ev.FollowupReason = &reason
	}

	return ev, nil
}

type conclusionPayload struct {
	FinalScore *float64 `json:"final_score"`
	Feedback   string   `json:"feedback"`
}

func parseConclusion(raw string) (interview.Conclusion, error) {
	blob, err := extractJSON(raw)
	if err != nil {
		return interview.Conclusion{}, err
	}

	var p conclusionPayload
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return interview.Conclusion{}, err
	}

	c := interview.Conclusion{
		Score:    neutralScore,
		Feedback: p.Feedback,
	}
	if p.FinalScore != nil {
		c.Score = clampScore(int(*p.FinalScore))
	}
	if c.Feedback == "" {
		return interview.Conclusion{}, errors.New("llm: conclusion missing feedback")
	}

	return c, nil
}

// parseQuestionList splits a generated response into at most max questions,
// one per line, dropping enumeration markers and blanks.
func parseQuestionList(raw string, max int) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = listItemRe.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == max {
			break
		}
	}
	return questions
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
