// Package jira retrieves service desk tickets from a JIRA instance.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/danielolaszy/ticketboard/internal/metrics"
	"github.com/danielolaszy/ticketboard/pkg/models"
)

const (
	searchPath = "rest/api/3/search"

	// MaxResults caps a single search; no further pages are requested.
	MaxResults = 100
)

// Client handles interactions with the JIRA API. The connection parameters are
// passed to every Fetch, so one Client serves configuration changes.
type Client struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the base transport for outbound requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithMetrics instruments the current transport with provider.
// It must come after WithTransport.
func WithMetrics(provider metrics.Provider) Option {
	return func(c *Client) {
		c.transport = metrics.NewTransport(c.transport, provider)
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new JIRA client.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Total  int             `json:"total"`
	Issues []models.Ticket `json:"issues"`
}

// Fetch returns the project's tickets, newest first, capped at MaxResults.
//
// It returns ErrMissingCredentials without touching the network when the email
// or token is empty, *APIError for non-2xx responses and *NetworkError when no
// response was received.
func (c *Client) Fetch(ctx context.Context, cfg config.Configuration) ([]models.Ticket, error) {
	if !cfg.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	tp := jira.BasicAuthTransport{
		Username:  cfg.AccountEmail,
		Password:  cfg.APIToken,
		Transport: c.transport,
	}
	httpClient := tp.Client()
	httpClient.Timeout = c.timeout

	api, err := jira.NewClient(httpClient, cfg.InstanceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	req, err := api.NewRequestWithContext(ctx, http.MethodGet, SearchURL(cfg.ProjectKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logging.Debug("searching jira issues",
		"url", cfg.InstanceURL,
		"project", cfg.ProjectKey,
		"email", cfg.AccountEmail,
		"token", logging.MaskSensitive(cfg.APIToken))

	var result searchResult
	resp, err := api.Do(req, &result)
	if err != nil {
		return nil, classify(resp, err)
	}

	if result.Issues == nil {
		result.Issues = []models.Ticket{}
	}

	logging.Debug("jira search complete",
		"project", cfg.ProjectKey,
		"returned", len(result.Issues),
		"total", result.Total)

	return result.Issues, nil
}

// classify maps a go-jira failure onto the package error types.
func classify(resp *jira.Response, err error) error {
	if resp == nil || resp.Response == nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return &NetworkError{Err: err}
		}
		return fmt.Errorf("failed to search jira issues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.Response)
	}

	return fmt.Errorf("failed to decode jira search response: %w", err)
}

// JQL returns the search expression for a project.
func JQL(projectKey string) string {
	return fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
}

// SearchURL returns the search endpoint path, relative to the instance URL.
// The expression is encoded the way browsers encode URI components, so spaces
// become %20.
func SearchURL(projectKey string) string {
	jql := strings.ReplaceAll(url.QueryEscape(JQL(projectKey)), "+", "%20")
	return fmt.Sprintf("%s?jql=%s&maxResults=%d", searchPath, jql, MaxResults)
}

// BrowseURL returns the tracker page for a ticket.
func BrowseURL(cfg config.Configuration, key string) string {
	return strings.TrimRight(cfg.InstanceURL, "/") + "/browse/" + url.PathEscape(key)
}

// PortalURL returns the customer portal of the configured project.
func PortalURL(cfg config.Configuration) string {
	return strings.TrimRight(cfg.InstanceURL, "/") + "/servicedesk/customer/portal/" + url.PathEscape(cfg.ProjectKey)
}
