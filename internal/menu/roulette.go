package menu

import (
	"errors"
	"time"
)

const (
	// DefaultTick is how often a decoy replaces the displayed dish.
	DefaultTick = 90 * time.Millisecond
	// DefaultDuration is how long a reveal spins before committing.
	DefaultDuration = 3200 * time.Millisecond
)

var (
	// ErrSpinning rejects a draw while another reveal is in flight.
	ErrSpinning = errors.New("menu: a reveal is already in flight")
	// ErrStaleReveal is returned for ticks of a canceled or finished reveal.
	ErrStaleReveal = errors.New("menu: reveal is no longer active")
)

// Frame is what a reveal shows after one tick.
type Frame struct {
	Display string
	Final   string
	Done    bool
}

// Reveal is the handle for one in-flight spin.
type Reveal struct {
	id       uint64
	started  time.Time
	deadline time.Time
	owner    *Roulette
}

// ID identifies the reveal in tick messages.
func (rv *Reveal) ID() uint64 {
	if rv == nil {
		return 0
	}
	return rv.id
}

// Deadline is when the final dish is committed.
func (rv *Reveal) Deadline() time.Time {
	if rv == nil {
		return time.Time{}
	}
	return rv.deadline
}

// Active reports whether this reveal still owns the roulette.
func (rv *Reveal) Active() bool {
	return rv != nil && rv.owner != nil && rv.owner.active == rv
}

// Cancel stops the reveal without committing anything. Safe to call more than
// once and after the reveal finished.
func (rv *Reveal) Cancel() {
	if !rv.Active() {
		return
	}
	rv.owner.active = nil
}

// Roulette draws dishes with recency exclusion and tracks at most one reveal.
type Roulette struct {
	catalog  Catalog
	history  *History
	src      Source
	tick     time.Duration
	duration time.Duration
	seq      uint64
	active   *Reveal
}

// RouletteOption customizes a Roulette.
type RouletteOption func(*Roulette)

// WithSource overrides the random source.
func WithSource(src Source) RouletteOption {
	return func(r *Roulette) {
		if src != nil {
			r.src = src
		}
	}
}

// WithTiming overrides the decoy interval and total spin time.
func WithTiming(tick, duration time.Duration) RouletteOption {
	return func(r *Roulette) {
		if tick > 0 {
			r.tick = tick
		}
		if duration > 0 {
			r.duration = duration
		}
	}
}

// WithHistory shares an existing history.
func WithHistory(h *History) RouletteOption {
	return func(r *Roulette) {
		if h != nil {
			r.history = h
		}
	}
}

// NewRoulette builds a roulette over c.
func NewRoulette(c Catalog, opts ...RouletteOption) *Roulette {
	r := &Roulette{
		catalog:  c,
		history:  NewHistory(HistorySize),
		src:      DefaultSource,
		tick:     DefaultTick,
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Catalog returns the dishes being drawn from.
func (r *Roulette) Catalog() Catalog { return r.catalog }

// Tick returns the decoy interval.
func (r *Roulette) Tick() time.Duration { return r.tick }

// Duration returns the total spin time.
func (r *Roulette) Duration() time.Duration { return r.duration }

// History returns recent picks, most recent first.
func (r *Roulette) History() []string { return r.history.Items() }

// Spinning reports whether a reveal is in flight.
func (r *Roulette) Spinning() bool { return r.active != nil }

// Start begins a reveal. It is rejected with ErrSpinning while another reveal
// is active; callers that want to supersede one cancel it first.
func (r *Roulette) Start(now time.Time) (*Reveal, error) {
	if r.active != nil {
		return nil, ErrSpinning
	}
	r.seq++
	rv := &Reveal{
		id:       r.seq,
		started:  now,
		deadline: now.Add(r.duration),
		owner:    r,
	}
	r.active = rv
	return rv, nil
}

// Advance moves reveal id forward to now. Before the deadline it returns a
// decoy from the full catalog. At or past the deadline it picks the final
// dish, records it in history and releases the reveal, all in this one call.
func (r *Roulette) Advance(id uint64, now time.Time) (Frame, error) {
	rv := r.active
	if rv == nil || rv.id != id {
		return Frame{}, ErrStaleReveal
	}
	if now.Before(rv.deadline) {
		return Frame{Display: Decoy(r.catalog, r.src)}, nil
	}
	final := r.commit()
	r.active = nil
	return Frame{Display: final, Final: final, Done: true}, nil
}

// Draw picks a dish immediately, without a reveal.
func (r *Roulette) Draw() (string, error) {
	if r.active != nil {
		return "", ErrSpinning
	}
	return r.commit(), nil
}

// CancelActive cancels whatever reveal is in flight.
func (r *Roulette) CancelActive() {
	r.active.Cancel()
}

func (r *Roulette) commit() string {
	final := Select(r.catalog, r.history.Items(), r.src)
	r.history.Push(final)
	return final
}
