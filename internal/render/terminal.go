package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danielolaszy/ticketboard/internal/board"
)

const defaultTerminalWidth = 80

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0052CC")).
			Padding(0, 1)

	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0052CC"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E6C84"))
	badgeStyle = lipgloss.NewStyle().Padding(0, 1)

	statusColors = map[string]lipgloss.Color{
		"todo":       lipgloss.Color("#DFE1E6"),
		"inprogress": lipgloss.Color("#DEEBFF"),
		"done":       lipgloss.Color("#E3FCEF"),
	}
	priorityColors = map[string]lipgloss.Color{
		"highest": lipgloss.Color("#FF5630"),
		"high":    lipgloss.Color("#FF7452"),
		"medium":  lipgloss.Color("#FFAB00"),
		"low":     lipgloss.Color("#36B37E"),
		"lowest":  lipgloss.Color("#57D9A3"),
	}
	messageColors = map[board.Kind]lipgloss.Color{
		board.KindSuccess: lipgloss.Color("#36B37E"),
		board.KindWarning: lipgloss.Color("#FFAB00"),
		board.KindError:   lipgloss.Color("#FF5630"),
	}
)

// Terminal renders a board snapshot for a terminal.
type Terminal struct {
	Options

	// Width is the card width in cells; zero means 80.
	Width int
}

// Render writes the status message, the stats line and one card per ticket.
func (r Terminal) Render(w io.Writer, snap board.Snapshot) error {
	width := r.Width
	if width <= 0 {
		width = defaultTerminalWidth
	}

	var sb strings.Builder

	if snap.Message.Text != "" {
		style := lipgloss.NewStyle()
		if color, ok := messageColors[snap.Message.Kind]; ok {
			style = style.Foreground(color)
		}
		sb.WriteString(style.Render(snap.Message.Text))
		sb.WriteString("\n")
		for _, hint := range snap.Message.Hints {
			sb.WriteString("  " + hint + "\n")
		}
	}
	if snap.Notice != "" {
		sb.WriteString(metaStyle.Render(snap.Notice))
		sb.WriteString("\n")
	}

	stats := snap.Stats
	sb.WriteString(fmt.Sprintf("Abertos: %d  Em progresso: %d  Resolvidos: %d  Total: %d\n\n",
		stats.Open, stats.InProgress, stats.Resolved, stats.Total))

	if len(snap.Tickets) == 0 {
		sb.WriteString("📭 Nenhum ticket encontrado\n")
	}

	for _, card := range NewCards(snap.Tickets, r.Options) {
		sb.WriteString(r.card(card, width))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r Terminal) card(c Card, width int) string {
	status := badgeStyle.Render(c.Status)
	if color, ok := statusColors[c.StatusClass]; ok {
		status = badgeStyle.Background(color).Foreground(lipgloss.Color("#172B4D")).Render(c.Status)
	}

	priority := badgeStyle.Render(c.Priority)
	if color, ok := priorityColors[c.PriorityClass]; ok {
		priority = badgeStyle.Foreground(color).Render(c.Priority)
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(c.Key), " ", status),
		titleStyle.Render(c.Summary),
		c.Description,
		lipgloss.JoinHorizontal(lipgloss.Top,
			metaStyle.Render(fmt.Sprintf("👤 %s  📅 %s", c.Assignee, c.Created)), " ", priority),
	}
	if c.URL != "" {
		lines = append(lines, metaStyle.Render(c.URL))
	}

	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}
