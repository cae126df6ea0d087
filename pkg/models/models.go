// Package models defines data structures shared across the application.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Status names counted by the dashboard.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// DefaultPriority is shown when a ticket carries no priority.
const DefaultPriority = "Medium"

// Ticket represents a JIRA issue as returned by the search endpoint.
// Tickets are treated as immutable once fetched.
type Ticket struct {
	// Key is the tracker-assigned identifier (e.g., "SD-123")
	Key string `json:"key"`

	// Fields holds the issue payload
	Fields TicketFields `json:"fields"`
}

// TicketFields holds the subset of issue fields the dashboard uses.
type TicketFields struct {
	// Summary is the ticket's title
	Summary string `json:"summary"`

	// Description is the body text; empty when absent
	Description RichText `json:"description,omitempty"`

	// Status is the current workflow status
	Status Status `json:"status"`

	// Priority is nil when the issue has no priority
	Priority *Priority `json:"priority,omitempty"`

	// Created is the raw ISO-8601 creation timestamp
	Created string `json:"created"`

	// Assignee is nil for unassigned issues
	Assignee *User `json:"assignee,omitempty"`
}

// Status is a workflow status.
type Status struct {
	Name string `json:"name"`
}

// Priority is an issue priority.
type Priority struct {
	Name string `json:"name"`
}

// User is a tracker account.
type User struct {
	DisplayName string `json:"displayName"`
}

// PriorityName returns the priority name, or DefaultPriority when absent.
func (t Ticket) PriorityName() string {
	if t.Fields.Priority == nil || t.Fields.Priority.Name == "" {
		return DefaultPriority
	}
	return t.Fields.Priority.Name
}

// AssigneeName returns the assignee display name, or "" when unassigned.
func (t Ticket) AssigneeName() string {
	if t.Fields.Assignee == nil {
		return ""
	}
	return t.Fields.Assignee.DisplayName
}

// HasDescription reports whether the ticket carries a description.
func (t Ticket) HasDescription() bool {
	return t.Fields.Description != ""
}

// RichText is a description field. REST v2 sends a plain string while v3 sends
// an Atlassian Document Format tree; both decode to plain text.
type RichText string

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

// UnmarshalJSON accepts a string, null or an ADF document.
func (r *RichText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RichText(s)
		return nil
	}

	var doc adfNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var blocks []string
	for _, block := range doc.Content {
		var sb strings.Builder
		collectText(&sb, block)
		if sb.Len() > 0 {
			blocks = append(blocks, sb.String())
		}
	}
	*r = RichText(strings.Join(blocks, "\n"))
	return nil
}

func collectText(sb *strings.Builder, node adfNode) {
	switch node.Type {
	case "text":
		sb.WriteString(node.Text)
	case "hardBreak":
		sb.WriteString("\n")
	}
	for _, child := range node.Content {
		collectText(sb, child)
	}
}
