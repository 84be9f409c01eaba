// Package location holds the one durable value the roulette keeps between
// runs: the address lunch is searched around.
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the storage key the address is written under.
const DefaultKey = "random-lunch-location"

var (
	// ErrEmptyAddress is returned for blank or whitespace-only input.
	ErrEmptyAddress = errors.New("location: address is required")
	// ErrMalformed marks a stored value that is not JSON or lacks an address.
	ErrMalformed = errors.New("location: stored value is malformed")
	// ErrNotFound is returned by backends when the key holds nothing.
	ErrNotFound = errors.New("location: no stored value")
)

// Location is where lunch happens.
type Location struct {
	Address string `json:"address"`
}

// Parse validates user input and returns the trimmed location.
func Parse(input string) (Location, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Location{}, ErrEmptyAddress
	}
	return Location{Address: trimmed}, nil
}

// IsZero reports whether no address is set.
func (l Location) IsZero() bool {
	return strings.TrimSpace(l.Address) == ""
}

func (l Location) String() string {
	return l.Address
}

// Encode serializes the location the way it is persisted.
func Encode(l Location) (string, error) {
	if l.IsZero() {
		return "", ErrEmptyAddress
	}
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("location: encode: %w", err)
	}
	return string(data), nil
}

// Decode accepts either {"address": "..."} or a bare JSON string, which older
// builds wrote.
func Decode(raw string) (Location, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch v := value.(type) {
	case string:
		return fromStored(v)
	case map[string]any:
		address, ok := v["address"].(string)
		if !ok {
			return Location{}, fmt.Errorf("%w: address field missing", ErrMalformed)
		}
		return fromStored(address)
	default:
		return Location{}, fmt.Errorf("%w: unexpected %T", ErrMalformed, value)
	}
}

func fromStored(address string) (Location, error) {
	loc, err := Parse(address)
	if err != nil {
		return Location{}, fmt.Errorf("%w: empty address", ErrMalformed)
	}
	return loc, nil
}
