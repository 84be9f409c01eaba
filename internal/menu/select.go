package menu

import "math/rand/v2"

// Source is the uniform random source a draw uses. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the process-wide generator.
var DefaultSource Source = globalSource{}

// Eligible returns the catalog minus recent picks. When every dish was picked
// recently the whole catalog is eligible again.
func Eligible(c Catalog, recent []string) []string {
	excluded := make(map[string]struct{}, len(recent))
	for _, item := range recent {
		excluded[item] = struct{}{}
	}
	pool := make([]string, 0, c.Len())
	for _, item := range c.items {
		if _, skip := excluded[item]; skip {
			continue
		}
		pool = append(pool, item)
	}
	if len(pool) == 0 {
		return c.Items()
	}
	return pool
}

// Select picks one eligible dish uniformly at random. It panics on an empty
// catalog, which NewCatalog never produces.
func Select(c Catalog, recent []string, src Source) string {
	if c.Len() == 0 {
		panic(ErrEmptyCatalog)
	}
	if src == nil {
		src = DefaultSource
	}
	pool := Eligible(c, recent)
	return pool[src.IntN(len(pool))]
}

// Decoy picks any dish from the full catalog, ignoring history.
func Decoy(c Catalog, src Source) string {
	if src == nil {
		src = DefaultSource
	}
	return c.items[src.IntN(len(c.items))]
}
