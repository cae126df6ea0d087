package board

import (
	"context"
	"errors"

	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/danielolaszy/ticketboard/internal/metrics"
	"github.com/danielolaszy/ticketboard/internal/sample"
	"github.com/danielolaszy/ticketboard/pkg/models"
)

// ConfigStore reads and writes the persisted JIRA configuration.
type ConfigStore interface {
	Load() (config.Configuration, error)
	Save(config.Configuration) error
}

// Fetcher retrieves tickets for a configuration.
type Fetcher interface {
	Fetch(ctx context.Context, cfg config.Configuration) ([]models.Ticket, error)
}

// Service drives the board through its lifecycle.
type Service struct {
	store   ConfigStore
	fetcher Fetcher
	board   *Board
	metrics metrics.Provider
}

// NewService wires a Service. A nil provider disables metrics.
func NewService(store ConfigStore, fetcher Fetcher, board *Board, provider metrics.Provider) *Service {
	if provider == nil {
		provider = metrics.NoopProvider{}
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		board:   board,
		metrics: provider,
	}
}

// Board returns the board driven by the service.
func (s *Service) Board() *Board {
	return s.board
}

// Configuration returns the persisted configuration.
func (s *Service) Configuration() (config.Configuration, error) {
	return s.store.Load()
}

// Load reads the configuration and fetches tickets. Any failure leaves the
// board in StateFallback with the sample tickets and a message describing the
// failure. Load returns the state it applied, or the current state when a
// newer load has already been applied.
func (s *Service) Load(ctx context.Context) State {
	token := s.board.begin(LoadingMessage)

	cfg, err := s.store.Load()
	if err == nil {
		var tickets []models.Ticket
		tickets, err = s.fetcher.Fetch(ctx, cfg)
		if err == nil {
			if s.board.apply(token, StateLive, tickets, LoadedMessage(len(tickets))) {
				s.metrics.IncreaseTicketLoads(string(StateLive))
				s.metrics.SetTicketCount(string(StateLive), len(tickets))
				logging.Info("tickets loaded",
					"project", cfg.ProjectKey,
					"count", len(tickets))
				return StateLive
			}
			logging.Debug("discarding stale load result", "token", token)
			return s.board.State()
		}
	}

	if errors.Is(err, jira.ErrMissingCredentials) {
		logging.Warn("jira credentials not configured, showing sample tickets")
	} else {
		logging.Error("failed to load tickets", "error", err)
	}

	if !s.showFallback(token, ErrorMessage(err)) {
		logging.Debug("discarding stale load result", "token", token)
		return s.board.State()
	}
	return StateFallback
}

// ShowFallback displays the sample tickets without attempting a fetch.
func (s *Service) ShowFallback() {
	token := s.board.begin(LoadingMessage)
	s.showFallback(token, FallbackMessage)
}

func (s *Service) showFallback(token uint64, m Message) bool {
	tickets := sample.Tickets()
	if !s.board.apply(token, StateFallback, tickets, m) {
		return false
	}
	s.metrics.IncreaseTicketLoads(string(StateFallback))
	s.metrics.SetTicketCount(string(StateFallback), len(tickets))
	return true
}

// SaveConfiguration persists cfg. On success the saved message is shown and
// the caller is expected to trigger a Load. On validation failure the warning
// is shown and the board is otherwise untouched.
func (s *Service) SaveConfiguration(cfg config.Configuration) error {
	if err := s.store.Save(cfg); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			logging.Warn("configuration rejected", "missing", verr.Missing)
		} else {
			logging.Error("failed to save configuration", "error", err)
		}
		s.board.SetMessage(ErrorMessage(err))
		return err
	}

	logging.Info("configuration saved",
		"url", cfg.InstanceURL,
		"email", cfg.AccountEmail,
		"token", logging.MaskSensitive(cfg.APIToken),
		"project", cfg.ProjectKey)
	s.board.SetMessage(SavedMessage)
	return nil
}
