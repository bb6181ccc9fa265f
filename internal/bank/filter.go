package bank

import "github.com/opostest/backend/internal/models"

// Filter narrows the bank to a theme/title-scoped pool. A title key takes
// precedence over a theme key; with neither set the full bank is returned.
// Keys match by literal string equality — numeric ids are normalized to
// their decimal text at load time, so "3" matches a bank entry whose raw
// theme was the number 3.
//
// An empty result is valid output here; the caller must treat it as a hard
// stop and refuse to generate a quiz from it.
func Filter(questions []models.Question, titleKey, themeKey string) []models.Question {
	switch {
	case titleKey != "":
		return filterBy(questions, func(q models.Question) bool { return q.Title == titleKey })
	case themeKey != "":
		return filterBy(questions, func(q models.Question) bool { return q.Theme == themeKey })
	default:
		return questions
	}
}

func filterBy(questions []models.Question, keep func(models.Question) bool) []models.Question {
	filtered := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if keep(q) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
