// Package wizard implements the five-step "sell" flow as an explicit state
// machine.
//
//	ItemType ──► Details ──► Photos ──► Pricing ──► Review ──► Submitted
//	   ◄──────────◄───────────◄───────────◄  (Back, JumpTo)
//
// Forward moves are guarded by the draft's contents; Back and JumpTo to an
// earlier step are unguarded. Submitted is terminal.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecoloop/internal/async"
)

type Step int

const (
	StepItemType Step = iota + 1
	StepDetails
	StepPhotos
	StepPricing
	StepReview
	StepSubmitted
)

var stepLabels = map[Step]struct{ label, icon string }{
	StepItemType:  {"Item Type", "📦"},
	StepDetails:   {"Details", "📝"},
	StepPhotos:    {"Photos", "📸"},
	StepPricing:   {"Pricing", "💰"},
	StepReview:    {"Review", "✓"},
	StepSubmitted: {"Submitted", "🎉"},
}

func (s Step) String() string {
	if l, ok := stepLabels[s]; ok {
		return l.label
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// ParseStep accepts the progress-indicator numbers 1..5. Submitted is not
// addressable.
func ParseStep(n int) (Step, error) {
	s := Step(n)
	if s < StepItemType || s > StepReview {
		return 0, fmt.Errorf("unknown step %d", n)
	}
	return s, nil
}

const (
	MaxPhotos      = 5
	RedirectTarget = "/marketplace"
)

var (
	ErrIncomplete      = errors.New("step requirements not met")
	ErrNoTransition    = errors.New("transition not allowed")
	ErrTerminal        = errors.New("listing already submitted")
	ErrWrongStep       = errors.New("field not editable on this step")
	ErrUnknownItemType = errors.New("unknown item type")
	ErrInvalidOption   = errors.New("option not offered for this item type")
	ErrPhotoIndex      = errors.New("no photo at that position")
)

type Event string

const (
	EventNext   Event = "next"
	EventSubmit Event = "submit"
)

type rule struct {
	guard func(Draft) bool
	next  Step
}

type transitionKey struct {
	from Step
	ev   Event
}

// transitions lists every guarded forward move. Anything absent is not allowed.
var transitions = map[transitionKey]rule{
	{StepItemType, EventNext}: {guard: hasItemType, next: StepDetails},
	{StepDetails, EventNext}:  {guard: detailsComplete, next: StepPhotos},
	{StepPhotos, EventNext}:   {guard: always, next: StepPricing},
	{StepPricing, EventNext}:  {guard: pricingComplete, next: StepReview},
	{StepReview, EventSubmit}: {guard: termsAccepted, next: StepSubmitted},
}

func hasItemType(d Draft) bool     { return d.ItemType != "" }
func detailsComplete(d Draft) bool { return d.ItemSpec != "" && d.Condition != "" }
func always(Draft) bool            { return true }
func pricingComplete(d Draft) bool { return d.Price != "" && d.Location != "" }
func termsAccepted(d Draft) bool   { return d.AcceptTerms }

type Photo struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// Draft is the listing being assembled. It is never persisted.
type Draft struct {
	ItemType    string  `json:"itemType"`
	ItemSpec    string  `json:"itemSpec"`
	Condition   string  `json:"condition"`
	Quantity    int     `json:"quantity"`
	Weight      string  `json:"weight"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Location    string  `json:"location"`
	Photos      []Photo `json:"photos"`
	AcceptTerms bool    `json:"acceptTerms"`
}

type Option func(*Wizard)

// WithRedirectDelay sets how long the confirmation stays up before the
// redirect fires.
func WithRedirectDelay(d time.Duration) Option { return func(w *Wizard) { w.redirectDelay = d } }

// WithOnRedirect registers the navigation callback fired once after submit.
func WithOnRedirect(fn func(target string)) Option { return func(w *Wizard) { w.onRedirect = fn } }

type Wizard struct {
	mu            sync.Mutex
	step          Step
	draft         Draft
	redirectDelay time.Duration
	onRedirect    func(string)
	redirect      *async.Task[string]
}

func New(opts ...Option) *Wizard {
	w := &Wizard{
		step:          StepItemType,
		draft:         Draft{Quantity: 1},
		redirectDelay: 2 * time.Second,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.Photos = append([]Photo(nil), w.draft.Photos...)
	return d
}

// CanAdvance reports whether the forward control of the current step is enabled.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Wizard) canAdvanceLocked() bool {
	ev := EventNext
	if w.step == StepReview {
		ev = EventSubmit
	}
	r, ok := transitions[transitionKey{w.step, ev}]
	return ok && r.guard(w.draft)
}

func (w *Wizard) fire(ev Event) error {
	if w.step == StepSubmitted {
		return ErrTerminal
	}
	r, ok := transitions[transitionKey{w.step, ev}]
	if !ok {
		return ErrNoTransition
	}
	if !r.guard(w.draft) {
		return ErrIncomplete
	}
	w.step = r.next
	return nil
}

// SelectItemType records the item type and moves straight to Details.
// Choosing a different type drops the spec and condition picked for the old one.
func (w *Wizard) SelectItemType(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrTerminal
	}
	if w.step != StepItemType {
		return ErrWrongStep
	}
	if _, ok := templates[key]; !ok {
		return ErrUnknownItemType
	}
	if w.draft.ItemType != key {
		w.draft.ItemSpec = ""
		w.draft.Condition = ""
	}
	w.draft.ItemType = key
	return w.fire(EventNext)
}

// editable must be called with mu held.
func (w *Wizard) editable(on Step) error {
	if w.step == StepSubmitted {
		return ErrTerminal
	}
	if w.step != on {
		return ErrWrongStep
	}
	return nil
}

func (w *Wizard) SetSpec(spec string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepDetails); err != nil {
		return err
	}
	if !contains(templates[w.draft.ItemType].Specs, spec) {
		return ErrInvalidOption
	}
	w.draft.ItemSpec = spec
	return nil
}

func (w *Wizard) SetCondition(cond string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepDetails); err != nil {
		return err
	}
	if !contains(templates[w.draft.ItemType].Conditions, cond) {
		return ErrInvalidOption
	}
	w.draft.Condition = cond
	return nil
}

// SetQuantity clamps non-positive values to 1.
func (w *Wizard) SetQuantity(n int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepDetails); err != nil {
		return err
	}
	if n < 1 {
		n = 1
	}
	w.draft.Quantity = n
	return nil
}

func (w *Wizard) SetWeight(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepDetails); err != nil {
		return err
	}
	w.draft.Weight = strings.TrimSpace(s)
	return nil
}

func (w *Wizard) SetDescription(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepDetails); err != nil {
		return err
	}
	w.draft.Description = s
	return nil
}

func (w *Wizard) SetPrice(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepPricing); err != nil {
		return err
	}
	w.draft.Price = strings.TrimSpace(s)
	return nil
}

func (w *Wizard) SetLocation(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepPricing); err != nil {
		return err
	}
	w.draft.Location = strings.TrimSpace(s)
	return nil
}

func (w *Wizard) SetAcceptTerms(v bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepReview); err != nil {
		return err
	}
	w.draft.AcceptTerms = v
	return nil
}

// AttachPhotos appends photos until MaxPhotos is reached; the rest are
// dropped. It returns how many were kept.
func (w *Wizard) AttachPhotos(photos ...Photo) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepPhotos); err != nil {
		return 0, err
	}
	kept := 0
	for _, p := range photos {
		if len(w.draft.Photos) >= MaxPhotos {
			break
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		w.draft.Photos = append(w.draft.Photos, p)
		kept++
	}
	return kept, nil
}

func (w *Wizard) RemovePhoto(idx int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StepPhotos); err != nil {
		return err
	}
	if idx < 0 || idx >= len(w.draft.Photos) {
		return ErrPhotoIndex
	}
	w.draft.Photos = append(w.draft.Photos[:idx:idx], w.draft.Photos[idx+1:]...)
	return nil
}

// Next moves forward one step if the current step's guard holds. Review only
// moves on through Submit.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fire(EventNext)
}

func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepSubmitted:
		return ErrTerminal
	case StepItemType:
		return ErrNoTransition
	}
	w.step--
	return nil
}

// JumpTo revisits the current or an earlier step.
func (w *Wizard) JumpTo(s Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrTerminal
	}
	if s < StepItemType || s > w.step {
		return ErrNoTransition
	}
	w.step = s
	return nil
}

// Submit finalizes the draft. The returned task resolves to the redirect
// target once the confirmation delay has passed; the redirect callback fires
// exactly once. Nothing is sent anywhere and the catalog is not touched.
func (w *Wizard) Submit() (*async.Task[string], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fire(EventSubmit); err != nil {
		return nil, err
	}
	cb := w.onRedirect
	w.redirect = async.After(w.redirectDelay, func() (string, error) {
		if cb != nil {
			cb(RedirectTarget)
		}
		return RedirectTarget, nil
	})
	return w.redirect, nil
}

// Redirect returns the pending redirect, or nil before submission.
func (w *Wizard) Redirect() *async.Task[string] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redirect
}

func (w *Wizard) RedirectDelay() time.Duration { return w.redirectDelay }

// Suggestion returns the reference price for the chosen item type.
func (w *Wizard) Suggestion() (PriceReference, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := priceReference[w.draft.ItemType]
	return p, ok
}
