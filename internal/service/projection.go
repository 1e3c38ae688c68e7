package service

import (
	"strings"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

// ProjectNotices derives the list shown to the current role from the
// canonical collection plus transient query state. It is a pure function:
// the input slice is never mutated and the canonical order is preserved.
//
// Three conjunctive gates apply:
//   - visibility: visitors never see hidden notices, admins see everything
//   - category: only notices matching the filter, unless the filter is "all"
//   - search: case-insensitive substring match on title or description
func ProjectNotices(notices []models.Notice, role models.Role, query models.NoticeQuery) []models.Notice {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	category := query.Category
	if category == "" {
		category = models.CategoryFilterAll
	}

	out := make([]models.Notice, 0, len(notices))
	for _, n := range notices {
		if role != models.RoleAdmin && !n.Visible {
			continue
		}
		if category != models.CategoryFilterAll && string(n.Category) != category {
			continue
		}
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func matchesSearch(n models.Notice, loweredSearch string) bool {
	return strings.Contains(strings.ToLower(n.Title), loweredSearch) ||
		strings.Contains(strings.ToLower(n.Description), loweredSearch)
}
