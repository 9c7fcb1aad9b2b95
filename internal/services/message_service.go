package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"ecoloop/internal/domain"
	"ecoloop/internal/repos"
)

// SellerContact is the payload of the messages page's seller parameter, sent
// by the marketplace's "contact seller" button.
type SellerContact struct {
	SellerName   string `json:"sellerName"`
	ProductTitle string `json:"productTitle"`
	ProductImage string `json:"productImage"`
}

// ParseSellerParam decodes the URL-escaped JSON seller parameter.
func ParseSellerParam(raw string) (SellerContact, error) {
	s, err := url.QueryUnescape(raw)
	if err != nil {
		s = raw
	}
	var sc SellerContact
	if err := json.Unmarshal([]byte(s), &sc); err != nil {
		return SellerContact{}, fmt.Errorf("seller param: %w", err)
	}
	if strings.TrimSpace(sc.SellerName) == "" {
		return SellerContact{}, fmt.Errorf("seller param: %w", ErrMissingFields)
	}
	return sc, nil
}

// Inbox is one session's mock conversation list. It lives in memory only.
type Inbox struct {
	mu       sync.Mutex
	convs    []domain.Conversation
	messages map[int][]domain.Message
	selected int
}

func newInbox(r *repos.MessageRepo) *Inbox {
	return &Inbox{convs: r.Conversations(), messages: r.Messages()}
}

// Contact selects the conversation with the seller, opening a new one with an
// introductory message if there is none. It returns the conversation id.
func (in *Inbox) Contact(sc SellerContact) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, c := range in.convs {
		if c.Name == sc.SellerName {
			in.selectLocked(c.ID)
			return c.ID
		}
	}
	id := 1
	for _, c := range in.convs {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	conv := domain.Conversation{
		ID:          id,
		Name:        sc.SellerName,
		Role:        domain.RoleSeller,
		LastMessage: "Interested in: " + sc.ProductTitle,
		Time:        "Just now",
		Online:      true,
		Avatar:      initial(sc.SellerName),
		Product:     &domain.ProductInfo{Title: sc.ProductTitle, Image: sc.ProductImage},
	}
	in.convs = append([]domain.Conversation{conv}, in.convs...)
	in.messages[id] = []domain.Message{{
		ID:     1,
		Sender: "me",
		Text:   "Hi! I'm interested in your listing: " + sc.ProductTitle,
		Time:   "Just now",
	}}
	in.selected = id
	return id
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Conversations filters by a case-insensitive name substring.
func (in *Inbox) Conversations(search string) []domain.Conversation {
	in.mu.Lock()
	defer in.mu.Unlock()
	s := strings.ToLower(search)
	out := make([]domain.Conversation, 0, len(in.convs))
	for _, c := range in.convs {
		if strings.Contains(strings.ToLower(c.Name), s) {
			out = append(out, c)
		}
	}
	return out
}

func (in *Inbox) TotalUnread() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := 0
	for _, c := range in.convs {
		n += c.Unread
	}
	return n
}

// Select opens a conversation and marks it read.
func (in *Inbox) Select(id int) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selectLocked(id)
}

func (in *Inbox) selectLocked(id int) error {
	for i := range in.convs {
		if in.convs[i].ID == id {
			in.convs[i].Unread = 0
			in.selected = id
			return nil
		}
	}
	return ErrNotFound
}

// Selected returns the open conversation and its messages.
func (in *Inbox) Selected() (*domain.Conversation, []domain.Message) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, c := range in.convs {
		if c.ID == in.selected {
			return &c, append([]domain.Message(nil), in.messages[c.ID]...)
		}
	}
	return nil, nil
}

// Send appends a message from the user. Blank text is ignored and reports false.
func (in *Inbox) Send(id int, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	found := false
	for _, c := range in.convs {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false, ErrNotFound
	}
	msgs := in.messages[id]
	in.messages[id] = append(msgs, domain.Message{ID: len(msgs) + 1, Sender: "me", Text: text, Time: "Just now"})
	return true, nil
}

type inboxEntry struct {
	in   *Inbox
	seen time.Time
}

// MessageService keeps one inbox per session, dropped on logout or after
// IdleTTL without use.
type MessageService struct {
	Repo *repos.MessageRepo

	mu      sync.Mutex
	inboxes map[string]*inboxEntry
	now     func() time.Time
}

func NewMessageService(r *repos.MessageRepo) *MessageService {
	return &MessageService{Repo: r, inboxes: map[string]*inboxEntry{}, now: time.Now}
}

func (s *MessageService) Inbox(sid string) *Inbox {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.inboxes[sid]; ok {
		e.seen = now
		return e.in
	}
	for k, e := range s.inboxes {
		if now.Sub(e.seen) > IdleTTL {
			delete(s.inboxes, k)
		}
	}
	in := newInbox(s.Repo)
	s.inboxes[sid] = &inboxEntry{in: in, seen: now}
	return in
}

// Drop forgets a session's inbox.
func (s *MessageService) Drop(sid string) {
	s.mu.Lock()
	delete(s.inboxes, sid)
	s.mu.Unlock()
}
