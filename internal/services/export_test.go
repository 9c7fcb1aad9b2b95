package services

import "time"

// MemoLen reports how many query results the catalog holds.
func (s *CatalogService) MemoLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memo)
}

func (s *SellService) SetClock(now func() time.Time) { s.now = now }

func (s *MessageService) SetClock(now func() time.Time) { s.now = now }
