// Package search turns a location and a dish into a map-search link. The map
// provider is never contacted; links are opened or previewed by the caller.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultEndpoint is the map search page the query is appended to.
const DefaultEndpoint = "https://map.naver.com/p/search/"

// ErrEmptyQuery is returned when the address or the dish is blank.
var ErrEmptyQuery = errors.New("search: address and menu item are required")

var wonPrinter = message.NewPrinter(language.Korean)

// Filter narrows results on the provider side.
type Filter struct {
	DistanceMeters int  `yaml:"distance_meters"`
	BudgetWon      int  `yaml:"budget_won"`
	OpenNow        bool `yaml:"open_now"`
}

// DefaultFilter is a short walk, a modest budget, open right now.
func DefaultFilter() Filter {
	return Filter{DistanceMeters: 750, BudgetWon: 15000, OpenNow: true}
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.DistanceMeters <= 0 && f.BudgetWon <= 0 && !f.OpenNow
}

// Expression renders the filter query value, e.g. distance750m-budget15000-open.
func (f Filter) Expression() string {
	var parts []string
	if f.DistanceMeters > 0 {
		parts = append(parts, "distance"+strconv.Itoa(f.DistanceMeters)+"m")
	}
	if f.BudgetWon > 0 {
		parts = append(parts, "budget"+strconv.Itoa(f.BudgetWon))
	}
	if f.OpenNow {
		parts = append(parts, "open")
	}
	return strings.Join(parts, "-")
}

// Summary is the human-readable form shown next to candidates.
func (f Filter) Summary() string {
	var parts []string
	if f.DistanceMeters > 0 {
		parts = append(parts, fmt.Sprintf("%dm", f.DistanceMeters))
	}
	if f.BudgetWon > 0 {
		parts = append(parts, wonPrinter.Sprintf("1인 %d원 이하", f.BudgetWon))
	}
	if f.OpenNow {
		parts = append(parts, "영업중")
	}
	return strings.Join(parts, " · ")
}

// Builder appends queries to a fixed endpoint.
type Builder struct {
	endpoint string
}

// NewBuilder returns a builder for endpoint, or DefaultEndpoint when blank.
func NewBuilder(endpoint string) Builder {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return Builder{endpoint: endpoint}
}

// Endpoint returns the search page prefix.
func (b Builder) Endpoint() string {
	if b.endpoint == "" {
		return DefaultEndpoint
	}
	return b.endpoint
}

type buildOptions struct {
	filter Filter
	rank   int
}

// Option adds suffixes to a built link.
type Option func(*buildOptions)

// WithFilter appends ?filter=<expression>.
func WithFilter(f Filter) Option {
	return func(o *buildOptions) {
		o.filter = f
	}
}

// WithRank appends #rank=<n>.
func WithRank(rank int) Option {
	return func(o *buildOptions) {
		o.rank = rank
	}
}

// Build returns the search link for "<address> <item>". It is deterministic.
func (b Builder) Build(address, item string, opts ...Option) (string, error) {
	address = strings.TrimSpace(address)
	item = strings.TrimSpace(item)
	if address == "" || item == "" {
		return "", ErrEmptyQuery
	}
	var o buildOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	link := b.Endpoint() + EscapeQuery(address+" "+item)
	if expr := o.filter.Expression(); expr != "" {
		link += "?filter=" + url.QueryEscape(expr)
	}
	if o.rank > 0 {
		link = RankURL(link, o.rank)
	}
	return link, nil
}

// RankURL returns link with its fragment replaced by rank=<n>, so each ranked
// candidate opens as a distinct page.
func RankURL(link string, rank int) string {
	if idx := strings.IndexByte(link, '#'); idx >= 0 {
		link = link[:idx]
	}
	return link + "#rank=" + strconv.Itoa(rank)
}

// EscapeQuery percent-encodes a query as one path segment; spaces become %20.
func EscapeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
