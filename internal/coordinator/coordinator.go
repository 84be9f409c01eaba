// Package coordinator sequences a lunch run: capture a location, draw a dish,
// build the search link and hand the ranked candidates to the carousel.
//
// A Coordinator is not safe for concurrent use. The TUI drives it from the
// bubbletea update loop, which delivers every message on one goroutine.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kingrea/lunch-roulette/internal/carousel"
	"github.com/kingrea/lunch-roulette/internal/location"
	"github.com/kingrea/lunch-roulette/internal/menu"
	"github.com/kingrea/lunch-roulette/internal/search"
	"github.com/kingrea/lunch-roulette/internal/workflow"
)

// ErrNoLocation is returned when a draw is requested before a location is set.
var ErrNoLocation = errors.New("coordinator: location is not set")

const (
	MessageNoLocation  = "먼저 점심을 먹을 위치를 입력해 주세요."
	MessageSearchReady = "지도 검색 링크가 준비되었습니다."
)

// Logger is the subset of the logbook the coordinator writes to.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Selection is the dish on screen. Display trails Final while a reveal spins.
type Selection struct {
	Final     string
	Display   string
	SearchURL string
}

// Coordinator owns the state of one interactive session.
type Coordinator struct {
	store    *location.Store
	roulette *menu.Roulette
	builder  search.Builder
	filter   search.Filter
	logger   Logger

	location  location.Location
	flow      *workflow.Workflow
	selection Selection
	reveal    *menu.Reveal
	carousel  carousel.Carousel
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the journal.
func WithLogger(l Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithBuilder overrides the search link builder.
func WithBuilder(b search.Builder) Option {
	return func(c *Coordinator) {
		c.builder = b
	}
}

// WithFilter sets the search filter appended to links.
func WithFilter(f search.Filter) Option {
	return func(c *Coordinator) {
		c.filter = f
	}
}

// New reads the stored location once and prepares the workflow accordingly.
func New(ctx context.Context, store *location.Store, roulette *menu.Roulette, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		roulette: roulette,
		builder:  search.NewBuilder(""),
		filter:   search.DefaultFilter(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if loc, ok := store.Load(ctx); ok {
		c.location = loc
		c.logInfo("Location restored · %s", loc.Address)
	}
	c.flow = workflow.New(!c.location.IsZero())
	return c
}

// Location returns the current location.
func (c *Coordinator) Location() (location.Location, bool) {
	return c.location, !c.location.IsZero()
}

// Selection returns the dish on screen.
func (c *Coordinator) Selection() Selection { return c.selection }

// Steps returns the workflow timeline.
func (c *Coordinator) Steps() []workflow.Step { return c.flow.Steps() }

// CurrentStep returns the first unfinished step.
func (c *Coordinator) CurrentStep() workflow.StepID { return c.flow.Current() }

// Spinning reports whether a reveal is in flight.
func (c *Coordinator) Spinning() bool { return c.roulette.Spinning() }

// History returns recent picks, most recent first.
func (c *Coordinator) History() []string { return c.roulette.History() }

// Tick returns the interval between reveal frames.
func (c *Coordinator) Tick() time.Duration { return c.roulette.Tick() }

// Filter returns the search filter in use.
func (c *Coordinator) Filter() search.Filter { return c.filter }

// Carousel exposes the candidate carousel for rotation and navigation.
func (c *Coordinator) Carousel() *carousel.Carousel { return &c.carousel }

// SubmitLocation validates input, cancels any reveal in flight, persists the
// location and restarts the run from the menu step.
func (c *Coordinator) SubmitLocation(ctx context.Context, input string) error {
	loc, err := location.Parse(input)
	if err != nil {
		return err
	}
	c.cancelReveal()
	c.location = loc
	c.clearSelection()
	c.flow.LocationSet()
	if err := c.store.Save(ctx, loc); err != nil {
		c.logWarn("Location not persisted: %v", err)
	}
	c.logInfo("Location set · %s", loc.Address)
	return nil
}

// ForgetLocation clears the stored location and returns to location capture.
func (c *Coordinator) ForgetLocation(ctx context.Context) error {
	c.cancelReveal()
	c.location = location.Location{}
	c.clearSelection()
	c.flow.LocationCleared()
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.logInfo("Location cleared")
	return nil
}

// StartDraw begins an animated draw. Without a location it flags the
// location step and returns ErrNoLocation; menu and search state are left
// alone. While a reveal is in flight it returns menu.ErrSpinning.
func (c *Coordinator) StartDraw(now time.Time) (*menu.Reveal, error) {
	if err := c.beginDraw(); err != nil {
		return nil, err
	}
	rv, err := c.roulette.Start(now)
	if err != nil {
		return nil, err
	}
	c.reveal = rv
	return rv, nil
}

// Advance feeds a reveal tick. Ticks of a superseded reveal return
// menu.ErrStaleReveal and change nothing. The final frame commits the dish,
// the history entry, the search link and the carousel together.
func (c *Coordinator) Advance(id uint64, now time.Time) (menu.Frame, error) {
	frame, err := c.roulette.Advance(id, now)
	if err != nil {
		return frame, err
	}
	if !frame.Done {
		c.selection.Display = frame.Display
		return frame, nil
	}
	c.reveal = nil
	c.complete(frame.Final)
	return frame, nil
}

// DrawInstant draws without animation.
func (c *Coordinator) DrawInstant() (Selection, error) {
	if err := c.beginDraw(); err != nil {
		return Selection{}, err
	}
	final, err := c.roulette.Draw()
	if err != nil {
		return Selection{}, err
	}
	c.complete(final)
	return c.selection, nil
}

// Close cancels the reveal and carousel. Called on teardown.
func (c *Coordinator) Close() {
	c.cancelReveal()
	c.carousel.Stop()
}

func (c *Coordinator) beginDraw() error {
	if c.location.IsZero() {
		c.flow.LocationMissing(MessageNoLocation)
		return ErrNoLocation
	}
	if c.roulette.Spinning() {
		return menu.ErrSpinning
	}
	c.clearSelection()
	if err := c.flow.MenuStarted(); err != nil {
		return fmt.Errorf("coordinator: %w", err)
	}
	return nil
}

func (c *Coordinator) complete(final string) {
	c.selection = Selection{Final: final, Display: final}
	if err := c.flow.MenuDrawn(final); err != nil {
		c.logWarn("Workflow rejected menu completion: %v", err)
		return
	}
	link, err := c.builder.Build(c.location.Address, final, search.WithFilter(c.filter))
	if err != nil {
		_ = c.flow.SearchFailed(err.Error())
		c.logWarn("Search link failed: %v", err)
		return
	}
	c.selection.SearchURL = link
	if err := c.flow.SearchReady(MessageSearchReady); err != nil {
		c.logWarn("Workflow rejected search completion: %v", err)
	}
	c.carousel.Reset(carousel.Derive(c.location.Address, final, link, c.filter))
	c.logInfo("Draw · %s near %s", final, c.location.Address)
}

func (c *Coordinator) clearSelection() {
	c.selection = Selection{}
	c.carousel.Stop()
}

func (c *Coordinator) cancelReveal() {
	if c.reveal != nil {
		c.reveal.Cancel()
		c.reveal = nil
	}
}

func (c *Coordinator) logInfo(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Info(format, args...)
}

func (c *Coordinator) logWarn(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(format, args...)
}
