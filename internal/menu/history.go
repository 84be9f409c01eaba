package menu

// HistorySize is how many recent picks are excluded from the next draw.
const HistorySize = 3

// History is a bounded most-recently-used list, most recent first.
type History struct {
	items []string
	limit int
}

// NewHistory returns an empty history holding at most limit entries. A
// non-positive limit falls back to HistorySize.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistorySize
	}
	return &History{limit: limit}
}

// Push moves item to the front, dropping any earlier occurrence and anything
// past the limit.
func (h *History) Push(item string) {
	next := make([]string, 0, h.limit)
	next = append(next, item)
	for _, existing := range h.items {
		if existing == item {
			continue
		}
		if len(next) == h.limit {
			break
		}
		next = append(next, existing)
	}
	h.items = next
}

// Items returns a copy, most recent first.
func (h *History) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of remembered picks.
func (h *History) Len() int {
	return len(h.items)
}

// Contains reports whether item was picked recently.
func (h *History) Contains(item string) bool {
	for _, existing := range h.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Reset forgets every pick.
func (h *History) Reset() {
	h.items = nil
}
