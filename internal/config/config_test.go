package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/lunch-roulette/internal/menu"
)

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	catalog, err := c.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if catalog.Len() != len(menu.DefaultItems) {
		t.Fatalf("catalog len = %d", catalog.Len())
	}
	if !c.RevealEnabled() {
		t.Fatalf("reveal should default to enabled")
	}
	if c.Project.Store.Backend != BackendFile {
		t.Fatalf("backend = %s", c.Project.Store.Backend)
	}
}

func TestInitLunchDirWritesParsableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitLunchDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, dir := range []string{"logs", "state"} {
		if info, err := os.Stat(filepath.Join(projectDir, LunchDir, dir)); err != nil || !info.IsDir() {
			t.Fatalf("missing %s dir: %v", dir, err)
		}
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	want := DefaultProjectConfig()
	if c.Project.Reveal.Tick != want.Reveal.Tick || c.Project.Reveal.Duration != want.Reveal.Duration {
		t.Fatalf("reveal timing = %v/%v", c.Project.Reveal.Tick, c.Project.Reveal.Duration)
	}
	if c.Project.Carousel.Period != 4*time.Second {
		t.Fatalf("carousel period = %v", c.Project.Carousel.Period)
	}
	if c.Project.Search.Filter != want.Search.Filter {
		t.Fatalf("filter = %+v", c.Project.Search.Filter)
	}
	if strings.Join(c.Project.Menu.Items, ",") != strings.Join(menu.DefaultItems, ",") {
		t.Fatalf("menu items differ from defaults: %v", c.Project.Menu.Items)
	}
	if len(c.Hints()) != 3 {
		t.Fatalf("hints = %v", c.Hints())
	}

	// a second init must not clobber user edits
	path := c.ProjectConfigPath()
	if err := os.WriteFile(path, []byte("version: 1\nmenu:\n  items: [라멘]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitLunchDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "라멘") || strings.Contains(string(data), "규동") {
		t.Fatalf("config overwritten: %s", data)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := writeConfig(t, `
version: 1
menu:
  items:
    - " 라멘 "
    - 초밥
    - ""
reveal:
  enabled: false
  tick: 50ms
  duration: 1s
search:
  endpoint: https://maps.example.com/search
  filter:
    distance_meters: 500
    budget_won: 0
    open_now: false
store:
  backend: REDIS
  redis:
    addr: 10.0.0.5:6379
    db: 2
`)
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := strings.Join(c.Project.Menu.Items, ","); got != "라멘,초밥" {
		t.Fatalf("items = %s", got)
	}
	if c.RevealEnabled() {
		t.Fatalf("reveal should be disabled")
	}
	if c.Project.Reveal.Tick != 50*time.Millisecond || c.Project.Reveal.Duration != time.Second {
		t.Fatalf("reveal timing = %v/%v", c.Project.Reveal.Tick, c.Project.Reveal.Duration)
	}
	if c.Project.Carousel.Period != 4*time.Second {
		t.Fatalf("carousel default lost: %v", c.Project.Carousel.Period)
	}
	if c.Project.Search.Filter.DistanceMeters != 500 || c.Project.Search.Filter.OpenNow {
		t.Fatalf("filter = %+v", c.Project.Search.Filter)
	}
	if c.Project.Store.Backend != BackendRedis || c.Project.Store.Redis.DB != 2 {
		t.Fatalf("store = %+v", c.Project.Store)
	}
	if c.Project.Store.Redis.Prefix == "" || c.Project.Store.Key == "" {
		t.Fatalf("store defaults not applied: %+v", c.Project.Store)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := map[string]string{
		"empty menu":      "version: 1\nmenu:\n  items: []\n",
		"unknown backend": "version: 1\nstore:\n  backend: sqlite\n",
		"tick too long":   "version: 1\nreveal:\n  tick: 5s\n  duration: 1s\n",
		"bad yaml":        "version: [\n",
		"negative budget": "version: 1\nsearch:\n  filter:\n    budget_won: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			projectDir := writeConfig(t, body)
			if _, err := NewConfig(projectDir); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LUNCH_STORE", "memory")
	t.Setenv("LUNCH_REDIS_ADDR", "redis.internal:6380")
	c, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if c.Project.Store.Backend != BackendMemory {
		t.Fatalf("backend = %s", c.Project.Store.Backend)
	}
	if c.Project.Store.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("redis addr = %s", c.Project.Store.Redis.Addr)
	}
	if err := c.SetStoreBackend("bogus"); err == nil {
		t.Fatalf("expected error for bogus backend")
	}
	if err := c.SetStoreBackend(" File "); err != nil || c.Project.Store.Backend != BackendFile {
		t.Fatalf("SetStoreBackend: %v (%s)", err, c.Project.Store.Backend)
	}
	c.SetRevealEnabled(false)
	if c.RevealEnabled() {
		t.Fatalf("reveal override ignored")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	projectDir := t.TempDir()
	lunchDir := filepath.Join(projectDir, LunchDir)
	if err := os.MkdirAll(lunchDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lunchDir, "config.yaml"), []byte(strings.TrimSpace(body)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return projectDir
}
