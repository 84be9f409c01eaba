package menu

import (
	"errors"
	"strings"
)

// ErrEmptyCatalog is a configuration error: there is nothing to pick from.
var ErrEmptyCatalog = errors.New("menu: catalog has no items")

// DefaultItems is the stock catalog.
var DefaultItems = []string{
	"규동",
	"우동",
	"모밀",
	"돈카츠",
	"돈까스",
	"라멘",
	"초밥",
	"불고기",
	"칼국수",
	"냉면",
	"김치찌개",
	"제육볶음",
	"중국집",
	"베트남 음식",
	"태국 음식",
	"인도 음식",
	"터키 음식",
	"햄버거",
	"샌드위치",
}

// Catalog is an ordered, immutable list of dishes.
type Catalog struct {
	items []string
}

// NewCatalog trims labels, drops blanks and repeated labels, and keeps order.
func NewCatalog(items []string) (Catalog, error) {
	seen := make(map[string]struct{}, len(items))
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		label := strings.TrimSpace(item)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		cleaned = append(cleaned, label)
	}
	if len(cleaned) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	return Catalog{items: cleaned}, nil
}

// MustCatalog panics on an empty catalog. For package-level defaults and tests.
func MustCatalog(items []string) Catalog {
	c, err := NewCatalog(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of dishes.
func (c Catalog) Len() int {
	return len(c.items)
}

// At returns the i-th dish.
func (c Catalog) At(i int) string {
	return c.items[i]
}

// Items returns a copy of the dishes in order.
func (c Catalog) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Contains reports whether item is on the menu.
func (c Catalog) Contains(item string) bool {
	for _, candidate := range c.items {
		if candidate == item {
			return true
		}
	}
	return false
}
