package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseTrimsAndRejectsBlank(t *testing.T) {
	loc, err := Parse("  판교역 1번 출구 \n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if loc.Address != "판교역 1번 출구" {
		t.Fatalf("address = %q", loc.Address)
	}
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := Parse(input); !errors.Is(err, ErrEmptyAddress) {
			t.Fatalf("Parse(%q) err = %v, want ErrEmptyAddress", input, err)
		}
	}
}

func TestDecodeAcceptsObjectAndBareString(t *testing.T) {
	cases := map[string]string{
		`"강남역"`:                    "강남역",
		`{"address":"서울특별시 중구 세종대로 110"}`: "서울특별시 중구 세종대로 110",
		`{"address":" 판교역 ","x":1}`:   "판교역",
	}
	for raw, want := range cases {
		loc, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%s): %v", raw, err)
		}
		if loc.Address != want {
			t.Fatalf("Decode(%s) = %q, want %q", raw, loc.Address, want)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{`{bad json`, `42`, `{"address":7}`, `{}`, `""`, `null`, `["강남역"]`} {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%s) err = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	raw, err := Encode(Location{Address: "강남역 2호선"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(raw, `"address"`) {
		t.Fatalf("encoded value %s lacks address field", raw)
	}
	loc, err := Decode(raw)
	if err != nil || loc.Address != "강남역 2호선" {
		t.Fatalf("decode(%s) = %+v, %v", raw, loc, err)
	}
	if _, err := Encode(Location{}); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("encode empty err = %v", err)
	}
}

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestStoreLoadBareStringValue(t *testing.T) {
	backend := NewMemoryBackend(map[string]string{DefaultKey: `"강남역"`})
	store := NewStore(backend)
	loc, ok := store.Load(context.Background())
	if !ok {
		t.Fatalf("expected stored location")
	}
	if loc != (Location{Address: "강남역"}) {
		t.Fatalf("loaded %+v", loc)
	}
}

func TestStoreLoadDiscardsMalformedAndWarns(t *testing.T) {
	logger := &recordingLogger{}
	backend := NewMemoryBackend(map[string]string{DefaultKey: `{bad json`})
	store := NewStore(backend, WithLogger(logger))
	if _, ok := store.Load(context.Background()); ok {
		t.Fatalf("malformed value must not load")
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning, got %v", logger.warnings)
	}
}

func TestStoreLoadMissingIsSilent(t *testing.T) {
	logger := &recordingLogger{}
	store := NewStore(NewMemoryBackend(nil), WithLogger(logger))
	if _, ok := store.Load(context.Background()); ok {
		t.Fatalf("empty backend must not load")
	}
	if len(logger.warnings) != 0 {
		t.Fatalf("missing value should not warn: %v", logger.warnings)
	}
}

func TestStoreSaveAndClear(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(nil)
	store := NewStore(backend, WithKey("custom-key"))
	if err := store.Save(ctx, Location{Address: "판교역"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := backend.Get(ctx, "custom-key")
	if err != nil {
		t.Fatalf("backend get: %v", err)
	}
	if raw != `{"address":"판교역"}` {
		t.Fatalf("stored %s", raw)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Load(ctx); ok {
		t.Fatalf("expected cleared store")
	}
}
