// Package syncer implements the store's persistence contract: a synchronous
// write to the local SQLite cache plus a debounced, best-effort upload to a
// remote levelup server. Remote failures are swallowed; the local cache is
// the source of truth for the next load.
package syncer

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"levelup/internal/engine"
	"levelup/internal/storage"
)

const defaultDebounce = 500 * time.Millisecond

// Options configure a Syncer. BaseURL empty means local-only.
type Options struct {
	BaseURL  string
	Token    string
	Debounce time.Duration
	Client   *http.Client
	Logger   *zap.Logger
}

type Syncer struct {
	local *storage.StateRepo

	baseURL  string
	token    string
	debounce time.Duration
	client   *http.Client
	log      *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
}

func New(local *storage.StateRepo, opts Options) *Syncer {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Syncer{
		local:    local,
		baseURL:  opts.BaseURL,
		token:    opts.Token,
		debounce: opts.Debounce,
		client:   opts.Client,
		log:      opts.Logger,
	}
}

// Save implements engine.Persister. The local write happens now; the remote
// write is scheduled after a quiet period, coalescing bursts into one call.
func (s *Syncer) Save(userID string, state *engine.State) {
	data, err := engine.EncodeState(state)
	if err != nil {
		s.log.Debug("encode state", zap.Error(err))
		return
	}

	if err := s.local.Save(context.Background(), userID, data); err != nil {
		s.log.Debug("local save", zap.Error(err))
	}

	if s.baseURL == "" || s.token == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = data
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

// Flush pushes any pending snapshot immediately. Call on shutdown.
func (s *Syncer) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.flushPending()
}

func (s *Syncer) flushPending() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if data == nil {
		return
	}
	s.push(data)
}

// push is fire-and-forget: no retries, no error surfaced.
func (s *Syncer) push(state []byte) {
	body := []byte(`{"state":`)
	body = append(body, state...)
	body = append(body, '}')

	req, err := http.NewRequest(http.MethodPut, s.baseURL+"/api/state", bytes.NewReader(body))
	if err != nil {
		s.log.Debug("sync request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug("sync push", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		s.log.Debug("sync push", zap.Int("status", resp.StatusCode))
	}
}
