// Package carousel derives the ranked candidate links for a drawn dish and
// keeps track of which one is on display.
package carousel

import (
	"fmt"
	"strings"
	"time"

	"github.com/kingrea/lunch-roulette/internal/search"
)

const (
	// Size is the number of ranked candidates derived per draw.
	Size = 3
	// DefaultPeriod is how long each candidate stays in front.
	DefaultPeriod = 4 * time.Second
)

// Candidate is one ranked search link.
type Candidate struct {
	Rank        int
	Title       string
	Description string
	URL         string
}

// Derive returns Size candidates, or nothing unless address, dish and search
// link are all present.
func Derive(address, dish, searchURL string, filter search.Filter) []Candidate {
	address = strings.TrimSpace(address)
	dish = strings.TrimSpace(dish)
	searchURL = strings.TrimSpace(searchURL)
	if address == "" || dish == "" || searchURL == "" {
		return nil
	}
	parts := []string{address, dish}
	if summary := filter.Summary(); summary != "" {
		parts = append(parts, summary)
	}
	description := strings.Join(parts, " · ")
	out := make([]Candidate, 0, Size)
	for rank := 1; rank <= Size; rank++ {
		out = append(out, Candidate{
			Rank:        rank,
			Title:       fmt.Sprintf("%d순위 후보", rank),
			Description: description,
			URL:         search.RankURL(searchURL, rank),
		})
	}
	return out
}

// Carousel rotates through candidates. Every Reset or Stop bumps the
// generation; rotation ticks carry the generation they were scheduled for so
// ticks from an earlier list are ignored.
type Carousel struct {
	items      []Candidate
	active     int
	generation uint64
}

// Reset replaces the candidates, puts the first one in front and returns the
// new generation.
func (c *Carousel) Reset(items []Candidate) uint64 {
	c.items = append([]Candidate(nil), items...)
	c.active = 0
	c.generation++
	return c.generation
}

// Stop drops all candidates and invalidates pending ticks.
func (c *Carousel) Stop() {
	c.Reset(nil)
}

// Items returns a copy of the candidates.
func (c *Carousel) Items() []Candidate {
	return append([]Candidate(nil), c.items...)
}

// Len returns the number of candidates.
func (c *Carousel) Len() int {
	return len(c.items)
}

// Active returns the index in front.
func (c *Carousel) Active() int {
	return c.active
}

// Generation identifies the current candidate list.
func (c *Carousel) Generation() uint64 {
	return c.generation
}

// Current returns the candidate in front.
func (c *Carousel) Current() (Candidate, bool) {
	if len(c.items) == 0 {
		return Candidate{}, false
	}
	return c.items[c.active], true
}

// Rotating reports whether a rotation timer should run.
func (c *Carousel) Rotating() bool {
	return len(c.items) >= 2
}

// Advance rotates by one if generation is current. It returns false when the
// tick is stale or there is nothing to rotate, in which case the caller must
// not re-arm its timer.
func (c *Carousel) Advance(generation uint64) bool {
	if generation != c.generation || !c.Rotating() {
		return false
	}
	c.active = (c.active + 1) % len(c.items)
	return true
}

// Move shifts the front candidate by delta, wrapping around.
func (c *Carousel) Move(delta int) {
	n := len(c.items)
	if n == 0 {
		return
	}
	c.active = ((c.active+delta)%n + n) % n
}

// Restart keeps the candidate in front but invalidates pending ticks, so the
// caller can schedule a fresh full period.
func (c *Carousel) Restart() uint64 {
	c.generation++
	return c.generation
}
