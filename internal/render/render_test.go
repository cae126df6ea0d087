package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/sample"
	"github.com/danielolaszy/ticketboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "To Do", expected: "todo"},
		{input: "In Progress", expected: "inprogress"},
		{input: "Done", expected: "done"},
		{input: "Waiting for\tcustomer", expected: "waitingforcustomer"},
		{input: "", expected: ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, StatusClass(tc.input), tc.input)
	}
}

func TestFormatDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)

	testCases := []struct {
		name     string
		created  string
		locale   string
		loc      *time.Location
		expected string
	}{
		{name: "pt-BR without offset", created: "2024-01-15T10:30:00", locale: "pt-BR", loc: time.UTC, expected: "15 de jan. de 2024"},
		{name: "pt-BR jira timestamp", created: "2024-09-05T08:00:00.000-0300", locale: "pt-BR", loc: time.UTC, expected: "05 de set. de 2024"},
		{name: "en-US", created: "2024-01-14T09:00:00", locale: "en-US", loc: time.UTC, expected: "Jan 14, 2024"},
		{name: "RFC3339", created: "2024-12-31T23:59:59Z", locale: "pt-br", loc: time.UTC, expected: "31 de dez. de 2024"},
		{name: "Other locale", created: "2024-02-03", locale: "de-DE", loc: time.UTC, expected: "03 Feb 2024"},
		{name: "Unparseable", created: "yesterday", locale: "pt-BR", loc: time.UTC, expected: "yesterday"},
		{name: "Late evening seen from UTC", created: "2024-01-15T23:30:00.000-0300", locale: "pt-BR", loc: time.UTC, expected: "16 de jan. de 2024"},
		{name: "Late evening seen from its own zone", created: "2024-01-15T23:30:00.000-0300", locale: "pt-BR", loc: saoPaulo, expected: "15 de jan. de 2024"},
		{name: "UTC timestamp seen from Tokyo", created: "2024-12-31T20:00:00Z", locale: "en-US", loc: tokyo, expected: "Jan 01, 2025"},
		{name: "No offset stays on its day", created: "2024-01-15T23:30:00", locale: "pt-BR", loc: tokyo, expected: "15 de jan. de 2024"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDate(tc.created, tc.locale, tc.loc))
		})
	}
}

func TestCardUsesLocation(t *testing.T) {
	late := models.Ticket{
		Key: "SD-2",
		Fields: models.TicketFields{
			Summary: "Tarde da noite",
			Status:  models.Status{Name: "To Do"},
			Created: "2024-01-15T23:30:00.000-0300",
		},
	}

	assert.Equal(t, "16 de jan. de 2024", NewCard(late, Options{Locale: "pt-BR", Location: time.UTC}).Created)
	assert.Equal(t, "15 de jan. de 2024",
		NewCard(late, Options{Locale: "pt-BR", Location: time.FixedZone("BRT", -3*60*60)}).Created)
}

func TestNewCardDefaults(t *testing.T) {
	bare := models.Ticket{
		Key: "SD-1",
		Fields: models.TicketFields{
			Summary: "Sem dono",
			Status:  models.Status{Name: "In Progress"},
			Created: "2024-01-15T10:30:00",
		},
	}

	card := NewCard(bare, Options{Locale: "pt-BR", Link: func(key string) string { return "/tickets/" + key }})

	assert.Equal(t, Card{
		Key:           "SD-1",
		URL:           "/tickets/SD-1",
		Summary:       "Sem dono",
		Description:   NoDescriptionLabel,
		Status:        "In Progress",
		StatusClass:   "inprogress",
		Priority:      "Medium",
		PriorityClass: "medium",
		Assignee:      UnassignedLabel,
		Created:       "15 de jan. de 2024",
	}, card)
}

func TestCards(t *testing.T) {
	t.Run("Empty renders empty state", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Cards(&buf, nil, Options{}))

		out := buf.String()
		assert.Contains(t, out, `class="empty-state"`)
		assert.Contains(t, out, "Nenhum ticket encontrado")
		assert.NotContains(t, out, `class="ticket-card"`)
	})

	t.Run("One card per ticket", func(t *testing.T) {
		tickets := sample.Tickets()
		var buf bytes.Buffer
		require.NoError(t, Cards(&buf, tickets, Options{Locale: "pt-BR"}))

		out := buf.String()
		assert.Equal(t, len(tickets), strings.Count(out, `class="ticket-card"`))
		assert.NotContains(t, out, `class="empty-state"`)
		assert.Contains(t, out, "status-inprogress")
		assert.Contains(t, out, "priority-high")
		assert.Contains(t, out, "15 de jan. de 2024")
		assert.Contains(t, out, "João Silva")
		assert.NotContains(t, out, "href=", "cards are unlinked without a Link func")
	})

	t.Run("Ticket text is escaped", func(t *testing.T) {
		tickets := []models.Ticket{{
			Key: "SD-666",
			Fields: models.TicketFields{
				Summary:     `<script>alert("x")</script>`,
				Description: `<img src=x onerror=alert(1)>`,
				Status:      models.Status{Name: `Done" onclick="x`},
				Created:     "2024-01-15T10:30:00",
			},
		}}

		var buf bytes.Buffer
		require.NoError(t, Cards(&buf, tickets, Options{}))

		out := buf.String()
		assert.NotContains(t, out, "<script>")
		assert.NotContains(t, out, "<img")
		assert.NotContains(t, out, `onclick="x`)
		assert.Contains(t, out, "&lt;script&gt;")
	})
}

func TestPage(t *testing.T) {
	b := board.New()
	svc := board.NewService(config.NewStore(config.NewMemoryStorage()), nil, b, nil)
	svc.ShowFallback()
	b.SetFilter(board.Filter{Status: "Done", Search: "rh"})

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, b.Snapshot(), Options{
		Locale: "pt-BR",
		Link:   func(key string) string { return "/tickets/" + key },
	}))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `class="ticket-card"`))
	assert.Contains(t, out, `href="/tickets/SD-125"`)
	assert.Contains(t, out, `id="statTotal">3<`)
	assert.Contains(t, out, `id="statResolvidos">1<`)
	assert.Contains(t, out, `<option value="Done" selected>`)
	assert.Contains(t, out, `value="rh"`)
	assert.Contains(t, out, "Mostrando dados de exemplo")
}

func TestPageUnconfigured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, board.New().Snapshot(), Options{}))

	out := buf.String()
	assert.NotContains(t, out, `id="stats"`)
	assert.Contains(t, out, `class="empty-state"`)
}

func TestConfigPage(t *testing.T) {
	var buf bytes.Buffer
	err := ConfigPage(&buf, config.Configuration{
		InstanceURL:  "https://x.atlassian.net",
		AccountEmail: "a@b.com",
		ProjectKey:   "105",
	}, board.Message{Kind: board.KindWarning, Text: "⚠️ Preencha todos os campos obrigatórios"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `value="https://x.atlassian.net"`)
	assert.Contains(t, out, `value="a@b.com"`)
	assert.Contains(t, out, `class="status warning"`)
	assert.Contains(t, out, "Preencha todos os campos")
}

func TestTerminal(t *testing.T) {
	b := board.New()
	svc := board.NewService(config.NewStore(config.NewMemoryStorage()), nil, b, nil)
	svc.ShowFallback()

	var buf bytes.Buffer
	r := Terminal{Options: Options{Locale: "pt-BR"}, Width: 100}
	require.NoError(t, r.Render(&buf, b.Snapshot()))

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "╭"))
	for _, key := range []string{"SD-123", "SD-124", "SD-125"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "Abertos: 1  Em progresso: 1  Resolvidos: 1  Total: 3")
	assert.Contains(t, out, "Mostrando dados de exemplo")

	b.SetFilter(board.Filter{Search: "nada disso"})
	buf.Reset()
	require.NoError(t, r.Render(&buf, b.Snapshot()))
	assert.Contains(t, buf.String(), "Nenhum ticket encontrado")
	assert.Zero(t, strings.Count(buf.String(), "╭"))
}
