// Package sample provides the fixed demonstration tickets shown whenever live
// tickets cannot be retrieved.
package sample

import "github.com/danielolaszy/ticketboard/pkg/models"

// Tickets returns a fresh copy of the three sample tickets, one per status
// bucket. Callers may keep or modify the result freely.
func Tickets() []models.Ticket {
	return []models.Ticket{
		{
			Key: "SD-123",
			Fields: models.TicketFields{
				Summary:     "Problema com acesso ao sistema",
				Description: "Não consigo fazer login na plataforma",
				Status:      models.Status{Name: models.StatusToDo},
				Priority:    &models.Priority{Name: "High"},
				Created:     "2024-01-15T10:30:00",
				Assignee:    &models.User{DisplayName: "João Silva"},
			},
		},
		{
			Key: "SD-124",
			Fields: models.TicketFields{
				Summary:     "Solicitação de novo equipamento",
				Description: "Preciso de um notebook para trabalho remoto",
				Status:      models.Status{Name: models.StatusInProgress},
				Priority:    &models.Priority{Name: "Medium"},
				Created:     "2024-01-15T11:00:00",
				Assignee:    &models.User{DisplayName: "Maria Santos"},
			},
		},
		{
			Key: "SD-125",
			Fields: models.TicketFields{
				Summary:     "Dúvida sobre políticas de RH",
				Description: "Como funciona o processo de férias?",
				Status:      models.Status{Name: models.StatusDone},
				Priority:    &models.Priority{Name: "Low"},
				Created:     "2024-01-14T09:00:00",
				Assignee:    &models.User{DisplayName: "Pedro Costa"},
			},
		},
	}
}
