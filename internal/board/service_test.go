package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/danielolaszy/ticketboard/internal/metrics"
	"github.com/danielolaszy/ticketboard/internal/sample"
	"github.com/danielolaszy/ticketboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFetcher implements Fetcher for testing
type MockFetcher struct {
	FetchFunc func(context.Context, config.Configuration) ([]models.Ticket, error)

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Fetch(ctx context.Context, cfg config.Configuration) ([]models.Ticket, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, cfg)
	}
	return nil, errors.New("Fetch not implemented")
}

func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func configuredStore(t *testing.T) *config.Store {
	t.Helper()
	store := config.NewStore(config.NewMemoryStorage())
	require.NoError(t, store.Save(config.Configuration{
		InstanceURL:  "https://x.atlassian.net",
		AccountEmail: "a@b.com",
		APIToken:     "t",
		ProjectKey:   "105",
	}))
	return store
}

func TestNewBoardIsUnconfigured(t *testing.T) {
	snap := New().Snapshot()

	assert.Equal(t, StateUnconfigured, snap.State)
	assert.NotNil(t, snap.Tickets)
	assert.Empty(t, snap.Tickets)
	assert.Equal(t, Stats{}, snap.Stats)
}

func TestLoadLive(t *testing.T) {
	live := []models.Ticket{
		ticket("SD-9", "Impressora", "", "To Do"),
		ticket("SD-8", "VPN", "", "Waiting"),
	}
	fetcher := &MockFetcher{FetchFunc: func(_ context.Context, cfg config.Configuration) ([]models.Ticket, error) {
		assert.Equal(t, "a@b.com", cfg.AccountEmail)
		return live, nil
	}}

	svc := NewService(configuredStore(t), fetcher, New(), nil)
	state := svc.Load(context.Background())

	assert.Equal(t, StateLive, state)
	snap := svc.Board().Snapshot()
	assert.Equal(t, StateLive, snap.State)
	assert.Equal(t, []string{"SD-9", "SD-8"}, keys(snap.Tickets))
	assert.Equal(t, Stats{Open: 1, Total: 2}, snap.Stats)
	assert.Equal(t, KindSuccess, snap.Message.Kind)
	assert.Contains(t, snap.Message.Text, "2 tickets carregados")
	assert.Empty(t, snap.Notice)
}

func TestLoadFailuresFallBack(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		kind     Kind
		contains string
		hints    bool
	}{
		{
			name:     "API error",
			err:      &jira.APIError{StatusCode: 401, StatusText: "Unauthorized"},
			kind:     KindError,
			contains: "401",
		},
		{
			name:     "Network error",
			err:      &jira.NetworkError{Err: errors.New("connection refused")},
			kind:     KindError,
			contains: "Erro de rede",
			hints:    true,
		},
		{
			name:     "Missing credentials",
			err:      jira.ErrMissingCredentials,
			kind:     KindWarning,
			contains: "Configure suas credenciais",
		},
		{
			name:     "Other error",
			err:      fmt.Errorf("failed to decode jira search response: %w", errors.New("bad json")),
			kind:     KindError,
			contains: "bad json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &MockFetcher{FetchFunc: func(context.Context, config.Configuration) ([]models.Ticket, error) {
				return nil, tc.err
			}}

			svc := NewService(configuredStore(t), fetcher, New(), nil)
			state := svc.Load(context.Background())

			assert.Equal(t, StateFallback, state)
			snap := svc.Board().Snapshot()
			assert.True(t, snap.Fallback())
			assert.Equal(t, sample.Tickets(), snap.Tickets)
			assert.Equal(t, Stats{Open: 1, InProgress: 1, Resolved: 1, Total: 3}, snap.Stats)
			assert.Equal(t, tc.kind, snap.Message.Kind)
			assert.Contains(t, snap.Message.Text, tc.contains)
			assert.Equal(t, tc.hints, len(snap.Message.Hints) > 0)
			assert.Equal(t, FallbackNotice, snap.Notice)
		})
	}
}

func TestLoadWithRealFetcherMissingCredentials(t *testing.T) {
	store := config.NewStore(config.NewMemoryStorage())
	svc := NewService(store, jira.NewClient(), New(), nil)

	assert.Equal(t, StateFallback, svc.Load(context.Background()))
	assert.Len(t, svc.Board().Snapshot().Tickets, 3)
}

func TestShowFallback(t *testing.T) {
	provider := metrics.NewPrometheusProvider()
	svc := NewService(config.NewStore(config.NewMemoryStorage()), &MockFetcher{}, New(), provider)

	svc.ShowFallback()

	snap := svc.Board().Snapshot()
	assert.Equal(t, StateFallback, snap.State)
	assert.Equal(t, FallbackMessage, snap.Message)
	assert.Empty(t, snap.Notice)
	assert.Len(t, snap.Tickets, 3)
}

func TestFilterFollowsReload(t *testing.T) {
	fetcher := &MockFetcher{FetchFunc: func(context.Context, config.Configuration) ([]models.Ticket, error) {
		return []models.Ticket{
			ticket("SD-1", "a", "", "Done"),
			ticket("SD-2", "b", "", "To Do"),
		}, nil
	}}
	b := New()
	svc := NewService(configuredStore(t), fetcher, b, nil)

	b.SetFilter(Filter{Status: "Done"})
	svc.Load(context.Background())

	snap := b.Snapshot()
	assert.Equal(t, []string{"SD-1"}, keys(snap.Tickets))
	assert.Equal(t, 2, snap.Stats.Total, "stats ignore the active filter")
	assert.Equal(t, Filter{Status: "Done"}, snap.Filter)

	b.SetFilter(Filter{})
	assert.Equal(t, []string{"SD-1", "SD-2"}, keys(b.Snapshot().Tickets))
}

func TestViewLeavesActiveFilterAlone(t *testing.T) {
	b := New()
	svc := NewService(config.NewStore(config.NewMemoryStorage()), &MockFetcher{}, b, nil)
	svc.ShowFallback()
	b.SetFilter(Filter{Status: "To Do"})

	view := b.View(Filter{Status: "Done"})
	assert.Equal(t, []string{"SD-125"}, keys(view.Tickets))
	assert.Equal(t, Filter{Status: "Done"}, view.Filter)
	assert.Equal(t, 3, view.Stats.Total)

	snap := b.Snapshot()
	assert.Equal(t, Filter{Status: "To Do"}, snap.Filter)
	assert.Equal(t, []string{"SD-123"}, keys(snap.Tickets))
}

func TestConcurrentViewsSeeTheirOwnFilter(t *testing.T) {
	b := New()
	svc := NewService(config.NewStore(config.NewMemoryStorage()), &MockFetcher{}, b, nil)
	svc.ShowFallback()

	const workers = 500
	start := make(chan struct{})
	var wrong sync.Map
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		status := models.StatusDone
		if i%2 == 1 {
			status = models.StatusToDo
		}

		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			<-start

			view := b.View(Filter{Status: status})
			if view.Filter.Status != status || len(view.Tickets) != 1 || view.Tickets[0].Fields.Status.Name != status {
				wrong.Store(i, keys(view.Tickets))
			}
		}(i, status)
	}

	close(start)
	wg.Wait()

	count := 0
	wrong.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Zero(t, count)
}

func TestSnapshotIsIsolated(t *testing.T) {
	b := New()
	svc := NewService(config.NewStore(config.NewMemoryStorage()), &MockFetcher{}, b, nil)
	svc.ShowFallback()

	snap := b.Snapshot()
	snap.Tickets[0].Key = "mutated"

	assert.Equal(t, "SD-123", b.Snapshot().Tickets[0].Key)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	call := 0
	fetcher := &MockFetcher{FetchFunc: func(context.Context, config.Configuration) ([]models.Ticket, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		if n == 1 {
			close(started)
			<-release
			return []models.Ticket{ticket("OLD-1", "old", "", "To Do")}, nil
		}
		return []models.Ticket{ticket("NEW-1", "new", "", "Done")}, nil
	}}

	svc := NewService(configuredStore(t), fetcher, New(), nil)

	done := make(chan State, 1)
	go func() {
		done <- svc.Load(context.Background())
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first load never reached the fetcher")
	}

	assert.Equal(t, StateLive, svc.Load(context.Background()))
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first load never finished")
	}

	snap := svc.Board().Snapshot()
	assert.Equal(t, []string{"NEW-1"}, keys(snap.Tickets))
	assert.Equal(t, 2, fetcher.Calls())
}

func TestSaveConfiguration(t *testing.T) {
	store := config.NewStore(config.NewMemoryStorage())
	svc := NewService(store, &MockFetcher{}, New(), nil)

	err := svc.SaveConfiguration(config.Configuration{InstanceURL: "https://x.atlassian.net", AccountEmail: " "})
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindWarning, svc.Board().Snapshot().Message.Kind)
	assert.Contains(t, svc.Board().Snapshot().Message.Text, "Preencha todos os campos")

	err = svc.SaveConfiguration(config.Configuration{
		InstanceURL:  "https://x.atlassian.net",
		AccountEmail: "a@b.com",
		APIToken:     "t",
		ProjectKey:   "105",
	})
	require.NoError(t, err)
	assert.Equal(t, SavedMessage, svc.Board().Snapshot().Message)

	cfg, err := svc.Configuration()
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", cfg.AccountEmail)
}
