package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options controls how tickets are presented.
type Options struct {
	// Locale selects the date convention, e.g. "pt-BR".
	Locale string

	// Location is where dates are shown. Nil means time.Local.
	Location *time.Location

	// Link returns the click-through target for a ticket key. When nil the
	// cards are not linked.
	Link func(key string) string
}

// Card is the display projection of one ticket. Every field is plain text;
// escaping is left to the template.
type Card struct {
	Key           string
	URL           string
	Summary       string
	Description   string
	Status        string
	StatusClass   string
	Priority      string
	PriorityClass string
	Assignee      string
	Created       string
}

// NewCard projects t for display.
func NewCard(t models.Ticket, opts Options) Card {
	card := Card{
		Key:           t.Key,
		Summary:       t.Fields.Summary,
		Description:   DescriptionLabel(t),
		Status:        t.Fields.Status.Name,
		StatusClass:   StatusClass(t.Fields.Status.Name),
		Priority:      t.PriorityName(),
		PriorityClass: PriorityClass(t),
		Assignee:      AssigneeLabel(t),
		Created:       FormatDate(t.Fields.Created, opts.Locale, opts.Location),
	}
	if opts.Link != nil {
		card.URL = opts.Link(t.Key)
	}
	return card
}

// NewCards projects tickets for display, preserving order.
func NewCards(tickets []models.Ticket, opts Options) []Card {
	cards := make([]Card, 0, len(tickets))
	for _, t := range tickets {
		cards = append(cards, NewCard(t, opts))
	}
	return cards
}

type cardsData struct {
	Cards []Card
}

// Cards writes one ticket card per ticket, or the empty-state block when
// tickets is empty.
func Cards(w io.Writer, tickets []models.Ticket, opts Options) error {
	return execute(w, "cards", cardsData{Cards: NewCards(tickets, opts)})
}

// StatusOptions are the values offered by the status filter.
var StatusOptions = []string{models.StatusToDo, models.StatusInProgress, models.StatusDone}

// PageData is the input of the dashboard page.
type PageData struct {
	Board     board.Snapshot
	Cards     []Card
	Statuses  []string
	PortalURL string
}

// Page writes the dashboard for snap.
func Page(w io.Writer, snap board.Snapshot, opts Options) error {
	return execute(w, "page", PageData{
		Board:     snap,
		Cards:     NewCards(snap.Tickets, opts),
		Statuses:  StatusOptions,
		PortalURL: "/portal",
	})
}

// ConfigData is the input of the configuration page.
type ConfigData struct {
	Config  config.Configuration
	Message board.Message
}

// ConfigPage writes the configuration form pre-filled with cfg.
func ConfigPage(w io.Writer, cfg config.Configuration, msg board.Message) error {
	return execute(w, "config", ConfigData{Config: cfg, Message: msg})
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
