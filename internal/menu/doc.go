// Package menu picks today's lunch. A Catalog is the fixed list of dishes, a
// History remembers the last few picks so they are not repeated right away,
// and a Roulette drives the timed reveal that flashes decoys before settling
// on the final dish.
//
// The package has no timers of its own. Callers schedule ticks (the TUI uses
// tea.Tick) and feed the current time back through Roulette.Advance; a reveal
// handle that has been canceled or superseded simply stops matching.
package menu
