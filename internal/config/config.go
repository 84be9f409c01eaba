// internal/config/config.go
//
// This package handles configuration and the .lunch directory structure.
// The directory lives next to wherever `lunch` is started (or --dir) and
// holds the config file, the journal and the local location store.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/lunch-roulette/internal/carousel"
	"github.com/kingrea/lunch-roulette/internal/location"
	"github.com/kingrea/lunch-roulette/internal/menu"
	"github.com/kingrea/lunch-roulette/internal/search"
)

const (
	// LunchDir is the name of the directory we create in the working directory
	LunchDir = ".lunch"

	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	envStore     = "LUNCH_STORE"
	envRedisAddr = "LUNCH_REDIS_ADDR"
)

const defaultConfigYAML = `# lunch roulette configuration
version: 1

menu:
  # Dishes the roulette draws from. The last 3 picks are skipped.
  items:
    - 규동
    - 우동
    - 모밀
    - 돈카츠
    - 돈까스
    - 라멘
    - 초밥
    - 불고기
    - 칼국수
    - 냉면
    - 김치찌개
    - 제육볶음
    - 중국집
    - 베트남 음식
    - 태국 음식
    - 인도 음식
    - 터키 음식
    - 햄버거
    - 샌드위치

location:
  hints:
    - 예) 판교역 1번 출구
    - 예) 서울특별시 중구 세종대로 110
    - 예) 강남역 2호선

reveal:
  enabled: true
  tick: 90ms
  duration: 3.2s

carousel:
  period: 4s

search:
  endpoint: https://map.naver.com/p/search/
  filter:
    distance_meters: 750
    budget_won: 15000
    open_now: true

# Where the location is remembered: file (default), redis or memory.
store:
  backend: file
  key: random-lunch-location
  # redis:
  #   addr: 127.0.0.1:6379
  #   db: 0
  #   prefix: "lunch:"
`

// MenuConfig lists the dishes.
type MenuConfig struct {
	Items []string `yaml:"items"`
}

// LocationConfig holds the input placeholder hints.
type LocationConfig struct {
	Hints []string `yaml:"hints"`
}

// RevealConfig controls the roulette animation.
type RevealConfig struct {
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Tick     time.Duration `yaml:"tick"`
	Duration time.Duration `yaml:"duration"`
}

// CarouselConfig controls candidate rotation.
type CarouselConfig struct {
	Period time.Duration `yaml:"period"`
}

// SearchConfig describes the map search provider.
type SearchConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Filter   search.Filter `yaml:"filter"`
}

// RedisConfig points the redis store backend at a server.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// StoreConfig selects the location store backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Key     string      `yaml:"key"`
	Redis   RedisConfig `yaml:"redis"`
}

// ProjectConfig models .lunch/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Menu     MenuConfig     `yaml:"menu"`
	Location LocationConfig `yaml:"location"`
	Reveal   RevealConfig   `yaml:"reveal"`
	Carousel CarouselConfig `yaml:"carousel"`
	Search   SearchConfig   `yaml:"search"`
	Store    StoreConfig    `yaml:"store"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the user ran `lunch` from
	ProjectDir string

	// LunchProjectDir is ProjectDir/.lunch
	LunchProjectDir string

	Project ProjectConfig
}

// InitLunchDir creates the .lunch directory structure in projectDir.
//
// Structure created:
// .lunch/
// ├── config.yaml
// ├── logs/    <- journey.log
// └── state/   <- store.json (file backend)
func InitLunchDir(projectDir string) error {
	lunchDir := filepath.Join(projectDir, LunchDir)
	dirs := []string{
		filepath.Join(lunchDir, "logs"),
		filepath.Join(lunchDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(lunchDir, "config.yaml"))
}

// NewConfig loads .lunch/config.yaml under projectDir, falling back to
// defaults when the file is absent, then applies environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		LunchProjectDir: filepath.Join(projectDir, LunchDir),
		Project:         DefaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.LunchProjectDir, "logs")
}

// JournalPath returns the logbook file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// StateDir returns the path to the state directory
func (c *Config) StateDir() string {
	return filepath.Join(c.LunchProjectDir, "state")
}

// StorePath returns the file backend's JSON file.
func (c *Config) StorePath() string {
	return filepath.Join(c.StateDir(), "store.json")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.LunchProjectDir, "config.yaml")
}

// Catalog builds the menu catalog.
func (c *Config) Catalog() (menu.Catalog, error) {
	return menu.NewCatalog(c.Project.Menu.Items)
}

// Hints returns the placeholder hints for the location input.
func (c *Config) Hints() []string {
	return append([]string(nil), c.Project.Location.Hints...)
}

// RevealEnabled reports whether draws animate.
func (c *Config) RevealEnabled() bool {
	if c.Project.Reveal.Enabled == nil {
		return true
	}
	return *c.Project.Reveal.Enabled
}

// SetRevealEnabled overrides the reveal switch for this run only.
func (c *Config) SetRevealEnabled(enabled bool) {
	c.Project.Reveal.Enabled = &enabled
}

// SetStoreBackend overrides the store backend for this run only.
func (c *Config) SetStoreBackend(backend string) error {
	backend = normalizeBackend(backend)
	if !validBackend(backend) {
		return fmt.Errorf("config: unknown store backend %q", backend)
	}
	c.Project.Store.Backend = backend
	return nil
}

// DefaultProjectConfig mirrors defaultConfigYAML.
func DefaultProjectConfig() ProjectConfig {
	enabled := true
	return ProjectConfig{
		Version:  1,
		Menu:     MenuConfig{Items: append([]string(nil), menu.DefaultItems...)},
		Location: LocationConfig{Hints: []string{"예) 판교역 1번 출구", "예) 서울특별시 중구 세종대로 110", "예) 강남역 2호선"}},
		Reveal: RevealConfig{
			Enabled:  &enabled,
			Tick:     menu.DefaultTick,
			Duration: menu.DefaultDuration,
		},
		Carousel: CarouselConfig{Period: carousel.DefaultPeriod},
		Search: SearchConfig{
			Endpoint: search.DefaultEndpoint,
			Filter:   search.DefaultFilter(),
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Key:     location.DefaultKey,
			Redis:   RedisConfig{Addr: "127.0.0.1:6379", Prefix: location.DefaultRedisPrefix},
		},
	}
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := DefaultProjectConfig()
	// yaml replaces slices wholesale, so configured lists win over defaults
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() {
	if backend := strings.TrimSpace(os.Getenv(envStore)); backend != "" {
		c.Project.Store.Backend = normalizeBackend(backend)
	}
	if addr := strings.TrimSpace(os.Getenv(envRedisAddr)); addr != "" {
		c.Project.Store.Redis.Addr = addr
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := DefaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = 1
	}
	if len(pc.Location.Hints) == 0 {
		pc.Location.Hints = defaults.Location.Hints
	}
	if pc.Reveal.Tick <= 0 {
		pc.Reveal.Tick = defaults.Reveal.Tick
	}
	if pc.Reveal.Duration <= 0 {
		pc.Reveal.Duration = defaults.Reveal.Duration
	}
	if pc.Carousel.Period <= 0 {
		pc.Carousel.Period = defaults.Carousel.Period
	}
	if strings.TrimSpace(pc.Search.Endpoint) == "" {
		pc.Search.Endpoint = defaults.Search.Endpoint
	}
	if strings.TrimSpace(pc.Store.Backend) == "" {
		pc.Store.Backend = defaults.Store.Backend
	}
	if strings.TrimSpace(pc.Store.Key) == "" {
		pc.Store.Key = defaults.Store.Key
	}
	if strings.TrimSpace(pc.Store.Redis.Prefix) == "" {
		pc.Store.Redis.Prefix = defaults.Store.Redis.Prefix
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Menu.Items = trimAll(pc.Menu.Items)
	pc.Location.Hints = trimAll(pc.Location.Hints)
	pc.Search.Endpoint = strings.TrimSpace(pc.Search.Endpoint)
	pc.Store.Backend = normalizeBackend(pc.Store.Backend)
	pc.Store.Key = strings.TrimSpace(pc.Store.Key)
	pc.Store.Redis.Addr = strings.TrimSpace(pc.Store.Redis.Addr)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if len(pc.Menu.Items) == 0 {
		return fmt.Errorf("menu.items must list at least one dish")
	}
	if pc.Reveal.Tick >= pc.Reveal.Duration {
		return fmt.Errorf("reveal.tick (%s) must be shorter than reveal.duration (%s)", pc.Reveal.Tick, pc.Reveal.Duration)
	}
	if pc.Search.Filter.DistanceMeters < 0 || pc.Search.Filter.BudgetWon < 0 {
		return fmt.Errorf("search.filter values must not be negative")
	}
	if !validBackend(pc.Store.Backend) {
		return fmt.Errorf("store.backend must be 'file', 'redis' or 'memory'")
	}
	if pc.Store.Backend == BackendRedis && pc.Store.Redis.Addr == "" {
		return fmt.Errorf("store.redis.addr is required for the redis backend")
	}
	return nil
}

func normalizeBackend(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func validBackend(value string) bool {
	switch value {
	case BackendFile, BackendRedis, BackendMemory:
		return true
	}
	return false
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
