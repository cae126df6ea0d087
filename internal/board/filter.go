package board

import (
	"strings"

	"github.com/danielolaszy/ticketboard/pkg/models"
)

// Filter selects a view of the board.
type Filter struct {
	// Status must equal the ticket status name exactly. Empty matches all.
	Status string

	// Search is matched case-insensitively against summary, key and
	// description. Empty matches all.
	Search string
}

// Apply returns the tickets of full that match both the status and search
// criteria, in their original order. full is not modified.
func Apply(full []models.Ticket, status, search string) []models.Ticket {
	query := strings.ToLower(search)

	out := make([]models.Ticket, 0, len(full))
	for _, t := range full {
		if matchesStatus(t, status) && matchesSearch(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func matchesStatus(t models.Ticket, status string) bool {
	return status == "" || t.Fields.Status.Name == status
}

// matchesSearch expects query to be lower-cased already.
func matchesSearch(t models.Ticket, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Fields.Summary), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Key), query) {
		return true
	}
	return t.HasDescription() && strings.Contains(strings.ToLower(string(t.Fields.Description)), query)
}
