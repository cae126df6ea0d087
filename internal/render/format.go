// Package render projects tickets into HTML and terminal output.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/danielolaszy/ticketboard/pkg/models"
)

const (
	UnassignedLabel    = "Não atribuído"
	NoDescriptionLabel = "Sem descrição"
)

// Layouts accepted for the created timestamp, most specific first.
var createdLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var ptBRMonths = [...]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// StatusClass turns a status name into a CSS class token: "In Progress"
// becomes "inprogress".
func StatusClass(name string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name))
}

// PriorityClass returns the lower-cased priority name of t.
func PriorityClass(t models.Ticket) string {
	return strings.ToLower(t.PriorityName())
}

// AssigneeLabel returns the assignee display name or UnassignedLabel.
func AssigneeLabel(t models.Ticket) string {
	if name := t.AssigneeName(); name != "" {
		return name
	}
	return UnassignedLabel
}

// DescriptionLabel returns the description or NoDescriptionLabel.
func DescriptionLabel(t models.Ticket) string {
	if t.HasDescription() {
		return string(t.Fields.Description)
	}
	return NoDescriptionLabel
}

// ParseCreated parses a JIRA timestamp and returns it in loc. Timestamps
// without an offset are read in loc. A nil loc means time.Local.
func ParseCreated(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range createdLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders created as a day, short month and year in the
// conventions of locale, as seen from loc. Unparseable input is returned
// unchanged.
func FormatDate(created, locale string, loc *time.Location) string {
	ts, ok := ParseCreated(created, loc)
	if !ok {
		return created
	}

	lang := strings.ToLower(locale)
	switch {
	case strings.HasPrefix(lang, "pt"):
		return fmt.Sprintf("%02d de %s de %d", ts.Day(), ptBRMonths[ts.Month()-1], ts.Year())
	case strings.HasPrefix(lang, "en-us"), lang == "en":
		return ts.Format("Jan 02, 2006")
	default:
		return ts.Format("02 Jan 2006")
	}
}
