package review

import (
	"sort"
	"strings"

	"reviewdesk/internal/domain"

	"github.com/google/uuid"
)

// isIdentifierShaped reports whether q looks like a canonical
// 8-4-4-4-12 UUID. Such queries switch the search to exact id matching.
func isIdentifierShaped(q string) bool {
	if len(q) != 36 {
		return false
	}
	_, err := uuid.Parse(q)
	return err == nil
}

func filterReviews(rows []domain.Review, query string, status domain.ReviewStatus) []domain.Review {
	query = strings.TrimSpace(query)
	exact := isIdentifierShaped(query)
	needle := strings.ToLower(query)

	out := make([]domain.Review, 0, len(rows))
	for _, r := range rows {
		if status != "" && status != domain.StatusAll && r.Status != status {
			continue
		}
		if query != "" {
			if exact && !matchesIdentifier(r, query) {
				continue
			}
			if !exact && !matchesText(r, needle) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func matchesIdentifier(r domain.Review, id string) bool {
	if strings.EqualFold(r.ID, id) ||
		strings.EqualFold(r.ClientRef, id) ||
		strings.EqualFold(r.WorkerRef, id) {
		return true
	}
	return r.ContactRef != nil && strings.EqualFold(*r.ContactRef, id)
}

func matchesText(r domain.Review, needle string) bool {
	if r.Title != nil && strings.Contains(strings.ToLower(*r.Title), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Content), needle) ||
		strings.Contains(string(r.Status), needle)
}

// sortReviews orders newest first; equal timestamps fall back to id so pages
// are stable between calls.
func sortReviews(rows []domain.Review) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}

// paginate slices one page. Pages past the end are empty; the bound is checked
// before multiplying so huge page numbers cannot overflow.
func paginate(rows []domain.Review, page, perPage int) []domain.Review {
	if page < 1 || perPage < 1 || page-1 >= totalPages(len(rows), perPage) {
		return []domain.Review{}
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func totalPages(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total-1)/perPage + 1
}
