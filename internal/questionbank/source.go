package questionbank

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Chunks shorter than this are noise (page numbers, stray headings) rather
// than usable questions.
const minQuestionLength = 10

// Source adapts the Bank to the interview orchestrator's question retrieval
// interface.
type Source struct {
	bank *Bank
}

// NewSource wraps a Bank for use by the orchestrator.
func NewSource(bank *Bank) *Source {
	return &Source{bank: bank}
}

// Select retrieves questions relevant to queryContext, drawing from the
// requested question types. It returns at most the total requested count;
// fewer (or none) when the corpus has little relevant material.
func (s *Source) Select(ctx context.Context, queryContext string, questionTypes []string, countsByType map[string]int) ([]string, error) {
	total := 0
	for _, n := range countsByType {
		total += n
	}
	if total <= 0 {
		return nil, nil
	}

	query := queryContext
	if len(questionTypes) > 0 {
		query = strings.TrimSpace(query + "\n" + strings.Join(questionTypes, " "))
	}

	// Over-fetch so that filtered-out chunks don't starve the result.
	results, err := s.bank.Search(ctx, query, total*2)
	if err != nil {
		return nil, err
	}

	questions := make([]string, 0, total)
	for _, r := range results {
		q := extractQuestion(r.Content)
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) == total {
			break
		}
	}

	return questions, nil
}

// extractQuestion pulls a single question out of a corpus chunk. Chunks may
// carry "Q:" or "Question:" markers from the source document; otherwise the
// first substantial line is taken as the question.
func extractQuestion(content string) string {
	lines := strings.Split(content, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"Q:", "Question:"} {
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				if q := strings.TrimSpace(rest); utf8.RuneCountInString(q) >= minQuestionLength {
					return q
				}
			}
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) >= minQuestionLength {
			return line
		}
	}

	return ""
}
