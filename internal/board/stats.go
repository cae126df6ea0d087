package board

import "github.com/danielolaszy/ticketboard/pkg/models"

// Stats counts tickets per status bucket. Tickets in any other status only
// count towards Total.
type Stats struct {
	Open       int
	InProgress int
	Resolved   int
	Total      int
}

// ComputeStats aggregates over the full ticket set.
func ComputeStats(full []models.Ticket) Stats {
	stats := Stats{Total: len(full)}
	for _, t := range full {
		switch t.Fields.Status.Name {
		case models.StatusToDo:
			stats.Open++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusDone:
			stats.Resolved++
		}
	}
	return stats
}
