package services

import (
	"sync"
	"time"

	applog "ecoloop/internal/log"
	"ecoloop/internal/wizard"
)

// IdleTTL is how long a session's in-memory draft or inbox survives without
// being touched. Expired entries are swept whenever a new one is created.
const IdleTTL = 24 * time.Hour

type draftEntry struct {
	w    *wizard.Wizard
	seen time.Time
}

// SellService keeps one in-memory wizard per session. A draft is dropped when
// its post-submit redirect fires, on Reset, or after IdleTTL without use; it is
// never persisted.
type SellService struct {
	RedirectDelay time.Duration

	mu     sync.Mutex
	drafts map[string]*draftEntry
	now    func() time.Time
}

func NewSellService(redirectDelay time.Duration) *SellService {
	return &SellService{RedirectDelay: redirectDelay, drafts: map[string]*draftEntry{}, now: time.Now}
}

// Wizard returns the session's wizard, starting a fresh one if needed.
func (s *SellService) Wizard(sid string) *wizard.Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.drafts[sid]; ok {
		e.seen = now
		return e.w
	}
	s.sweepLocked(now)
	var w *wizard.Wizard
	w = wizard.New(
		wizard.WithRedirectDelay(s.RedirectDelay),
		wizard.WithOnRedirect(func(to string) {
			applog.Info(nil, "sell.redirect", map[string]any{"sid": sid, "to": to})
			s.release(sid, w)
		}),
	)
	s.drafts[sid] = &draftEntry{w: w, seen: now}
	return w
}

func (s *SellService) sweepLocked(now time.Time) {
	for sid, e := range s.drafts {
		if now.Sub(e.seen) > IdleTTL {
			delete(s.drafts, sid)
		}
	}
}

// Reset discards the session's draft.
func (s *SellService) Reset(sid string) {
	s.mu.Lock()
	delete(s.drafts, sid)
	s.mu.Unlock()
}

// release drops w only if it is still the session's current wizard.
func (s *SellService) release(sid string, w *wizard.Wizard) {
	s.mu.Lock()
	if e, ok := s.drafts[sid]; ok && e.w == w {
		delete(s.drafts, sid)
	}
	s.mu.Unlock()
}

func (s *SellService) Active(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[sid]
	return ok
}
