// internal/tui/app.go
//
// This is the TUI (Terminal User Interface) for lunch roulette.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Timers are tea.Tick commands. A reveal tick carries the reveal ID and a
// carousel tick carries the carousel generation; once either is superseded
// the tick is dropped and not scheduled again.

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/lunch-roulette/internal/carousel"
	"github.com/kingrea/lunch-roulette/internal/config"
	"github.com/kingrea/lunch-roulette/internal/coordinator"
	"github.com/kingrea/lunch-roulette/internal/location"
	"github.com/kingrea/lunch-roulette/internal/logbook"
	"github.com/kingrea/lunch-roulette/internal/menu"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLocation appState = iota // Location form
	stateRoulette                 // Draw control, timeline and carousel
)

const (
	logPanelLines   = 6
	fallbackHint    = "예) 강남역"
	defaultWidth    = 100
	minColumnWidth  = 20
	historyColWidth = 28
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithBackend replaces the configured location backend.
func WithBackend(backend location.Backend) AppOption {
	return func(a *App) {
		if backend != nil {
			a.backend = backend
		}
	}
}

// WithStoreBackend selects a configured backend by name (file, redis, memory).
func WithStoreBackend(name string) AppOption {
	return func(a *App) {
		a.storeBackend = strings.TrimSpace(name)
	}
}

// WithReveal turns the roulette animation on or off for this run.
func WithReveal(enabled bool) AppOption {
	return func(a *App) {
		a.revealOverride = &enabled
	}
}

// WithOpener overrides how candidate links are opened.
func WithOpener(o carousel.Opener) AppOption {
	return func(a *App) {
		if o != nil {
			a.opener = o
		}
	}
}

// WithClipboard overrides how candidate links are copied.
func WithClipboard(write func(string) error) AppOption {
	return func(a *App) {
		if write != nil {
			a.copyText = write
		}
	}
}

// WithClock pins the time used to start reveals.
func WithClock(clock func() time.Time) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithRouletteOptions forwards options to the roulette (source, timing).
func WithRouletteOptions(opts ...menu.RouletteOption) AppOption {
	return func(a *App) {
		a.rouletteOpts = append(a.rouletteOpts, opts...)
	}
}

// WithHintSource overrides the random source for the placeholder hint.
func WithHintSource(src menu.Source) AppOption {
	return func(a *App) {
		if src != nil {
			a.hintSource = src
		}
	}
}

type revealTickMsg struct {
	id uint64
	at time.Time
}

type carouselTickMsg struct {
	generation uint64
}

type linkOpenedMsg struct {
	url string
}

type linkCopiedMsg struct {
	url string
	err error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	ctx     context.Context
	state   appState
	config  *config.Config
	coord   *coordinator.Coordinator
	logbook *logbook.Logbook
	closer  io.Closer

	backend        location.Backend
	storeBackend   string
	revealOverride *bool
	rouletteOpts   []menu.RouletteOption
	hintSource     menu.Source
	opener         carousel.Opener
	copyText       func(string) error
	clock          func() time.Time

	// UI components
	input     textinput.Model
	keys      keyMap
	help      help.Model
	inputErr  string // inline validation message under the form
	banner    string // precondition message shown above the form
	statusMsg string // Status message to display
	width     int
	height    int
}

// NewApp loads configuration from projectDir and builds the session.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	app := &App{
		ctx:        context.Background(),
		config:     cfg,
		hintSource: menu.DefaultSource,
		opener:     carousel.BrowserOpener{},
		copyText:   clipboard.WriteAll,
		clock:      time.Now,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.storeBackend != "" {
		if err := cfg.SetStoreBackend(app.storeBackend); err != nil {
			return nil, err
		}
	}
	if app.revealOverride != nil {
		cfg.SetRevealEnabled(*app.revealOverride)
	}

	lb, err := logbook.New(cfg.JournalPath())
	if err == nil {
		app.logbook = lb
	}

	if app.backend == nil {
		backend, closer, err := coordinator.OpenBackend(cfg)
		if err != nil {
			return nil, err
		}
		app.backend = backend
		app.closer = closer
	}
	coord, err := coordinator.FromConfig(app.ctx, cfg, app.backend, app.logbook, app.rouletteOpts...)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.coord = coord

	app.input = newLocationInput(app.pickHint())
	if loc, ok := coord.Location(); ok {
		app.state = stateRoulette
		app.input.SetValue(loc.Address)
		app.statusMsg = fmt.Sprintf("%s 근처에서 점심을 골라 볼까요?", loc.Address)
	} else {
		app.state = stateLocation
		app.input.Focus()
	}
	app.syncKeys()
	app.logInfo("Session opened · store: %s", cfg.Project.Store.Backend)
	return app, nil
}

func newLocationInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "📍 "
	input.CharLimit = 120
	input.Width = 48
	return input
}

func (a *App) pickHint() string {
	hints := a.config.Hints()
	if len(hints) == 0 {
		return fallbackHint
	}
	return hints[a.hintSource.IntN(len(hints))]
}

// Close cancels pending timers and releases the store backend.
func (a *App) Close() {
	if a.coord != nil {
		a.coord.Close()
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logWarn("Store close failed: %v", err)
		}
		a.closer = nil
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if a.state == stateLocation {
		return textinput.Blink
	}
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case revealTickMsg:
		return a, a.handleRevealTick(msg)

	case carouselTickMsg:
		if a.coord.Carousel().Advance(msg.generation) {
			return a, a.scheduleCarousel()
		}
		return a, nil

	case linkOpenedMsg:
		a.statusMsg = "지도 검색을 새 창으로 열었습니다."
		a.logInfo("Opened %s", msg.url)
		return a, nil

	case linkCopiedMsg:
		if msg.err != nil {
			a.statusMsg = "링크를 복사하지 못했습니다."
			a.logWarn("Clipboard unavailable: %v", msg.err)
			return a, nil
		}
		a.statusMsg = "링크를 클립보드에 복사했습니다."
		a.logInfo("Copied %s", msg.url)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.state == stateLocation {
			return a.updateLocationForm(msg)
		}
		return a.updateRoulette(msg)
	}

	if a.state == stateLocation {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateLocationForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return a.submitLocation()
	case tea.KeyEsc:
		if _, ok := a.coord.Location(); ok {
			a.showRoulette()
			return a, nil
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.inputErr != "" && strings.TrimSpace(a.input.Value()) != "" {
		a.inputErr = ""
	}
	return a, cmd
}

func (a *App) submitLocation() (tea.Model, tea.Cmd) {
	err := a.coord.SubmitLocation(a.ctx, a.input.Value())
	if err != nil {
		if errors.Is(err, location.ErrEmptyAddress) {
			a.inputErr = "위치를 입력해 주세요."
		} else {
			a.inputErr = err.Error()
		}
		return a, nil
	}
	loc, _ := a.coord.Location()
	a.input.SetValue(loc.Address)
	a.showRoulette()
	a.statusMsg = fmt.Sprintf("위치를 %s(으)로 저장했습니다.", loc.Address)
	return a, nil
}

func (a *App) showRoulette() {
	a.state = stateRoulette
	a.inputErr = ""
	a.banner = ""
	a.input.Blur()
	a.syncKeys()
}

func (a *App) showLocationForm(banner string) tea.Cmd {
	a.state = stateLocation
	a.banner = banner
	a.inputErr = ""
	a.syncKeys()
	return a.input.Focus()
}

func (a *App) updateRoulette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Draw):
		return a, a.draw()
	case key.Matches(msg, a.keys.Open):
		return a, a.openCurrent()
	case key.Matches(msg, a.keys.Prev):
		a.coord.Carousel().Move(-1)
		return a, a.restartCarousel()
	case key.Matches(msg, a.keys.Next):
		a.coord.Carousel().Move(1)
		return a, a.restartCarousel()
	case key.Matches(msg, a.keys.Copy):
		return a, a.copyCurrent()
	case key.Matches(msg, a.keys.Location):
		return a, a.showLocationForm("")
	case key.Matches(msg, a.keys.Forget):
		return a, a.forgetLocation()
	}
	return a, nil
}

func (a *App) draw() tea.Cmd {
	if !a.config.RevealEnabled() {
		_, err := a.coord.DrawInstant()
		if err != nil {
			return a.drawFailed(err)
		}
		a.afterDraw()
		return a.scheduleCarousel()
	}
	rv, err := a.coord.StartDraw(a.clock())
	if err != nil {
		return a.drawFailed(err)
	}
	a.statusMsg = "메뉴를 고르는 중..."
	a.syncKeys()
	return a.scheduleReveal(rv.ID())
}

func (a *App) drawFailed(err error) tea.Cmd {
	switch {
	case errors.Is(err, coordinator.ErrNoLocation):
		a.statusMsg = ""
		return a.showLocationForm(coordinator.MessageNoLocation)
	case errors.Is(err, menu.ErrSpinning):
		a.statusMsg = "이미 추첨 중입니다."
		return nil
	default:
		a.statusMsg = err.Error()
		a.logWarn("Draw failed: %v", err)
		return nil
	}
}

func (a *App) handleRevealTick(msg revealTickMsg) tea.Cmd {
	frame, err := a.coord.Advance(msg.id, msg.at)
	if err != nil {
		// superseded or canceled; let the tick die
		return nil
	}
	if !frame.Done {
		return a.scheduleReveal(msg.id)
	}
	a.afterDraw()
	return a.scheduleCarousel()
}

func (a *App) afterDraw() {
	sel := a.coord.Selection()
	a.statusMsg = fmt.Sprintf("오늘의 점심은 %s!", sel.Final)
	a.syncKeys()
}

func (a *App) forgetLocation() tea.Cmd {
	if err := a.coord.ForgetLocation(a.ctx); err != nil {
		a.logWarn("Forget location failed: %v", err)
	}
	a.input.SetValue("")
	a.statusMsg = "저장된 위치를 삭제했습니다."
	return a.showLocationForm("")
}

func (a *App) openCurrent() tea.Cmd {
	candidate, ok := a.coord.Carousel().Current()
	if !ok {
		return nil
	}
	opener := a.opener
	logger := a.logbook
	return func() tea.Msg {
		carousel.Activate(opener, candidate, logger)
		return linkOpenedMsg{url: candidate.URL}
	}
}

func (a *App) copyCurrent() tea.Cmd {
	candidate, ok := a.coord.Carousel().Current()
	if !ok {
		return nil
	}
	write := a.copyText
	return func() tea.Msg {
		return linkCopiedMsg{url: candidate.URL, err: write(candidate.URL)}
	}
}

func (a *App) scheduleReveal(id uint64) tea.Cmd {
	return tea.Tick(a.coord.Tick(), func(t time.Time) tea.Msg {
		return revealTickMsg{id: id, at: t}
	})
}

func (a *App) scheduleCarousel() tea.Cmd {
	c := a.coord.Carousel()
	if !c.Rotating() {
		return nil
	}
	generation := c.Generation()
	return tea.Tick(a.carouselPeriod(), func(time.Time) tea.Msg {
		return carouselTickMsg{generation: generation}
	})
}

// restartCarousel re-arms rotation after manual navigation so the chosen
// candidate gets a full period on screen.
func (a *App) restartCarousel() tea.Cmd {
	c := a.coord.Carousel()
	if c.Len() == 0 {
		return nil
	}
	c.Restart()
	return a.scheduleCarousel()
}

func (a *App) carouselPeriod() time.Duration {
	if period := a.config.Project.Carousel.Period; period > 0 {
		return period
	}
	return carousel.DefaultPeriod
}

func (a *App) syncKeys() {
	roulette := a.state == stateRoulette
	_, hasLocation := a.coord.Location()
	_, hasCandidate := a.coord.Carousel().Current()
	spinning := a.coord.Spinning()
	a.keys.Draw.SetEnabled(roulette && !spinning)
	a.keys.Open.SetEnabled(roulette && hasCandidate)
	a.keys.Prev.SetEnabled(roulette && a.coord.Carousel().Len() > 1)
	a.keys.Next.SetEnabled(roulette && a.coord.Carousel().Len() > 1)
	a.keys.Copy.SetEnabled(roulette && hasCandidate)
	a.keys.Location.SetEnabled(roulette)
	a.keys.Forget.SetEnabled(roulette && hasLocation)
	a.keys.Quit.SetEnabled(roulette)
}

// View renders the current state.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	rightWidth := historyColWidth
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}
	var content string
	switch a.state {
	case stateLocation:
		content = a.renderLocationForm()
	case stateRoulette:
		content = a.renderRoulette(leftWidth - 4)
	}
	return a.renderBoard(content, leftWidth, rightWidth)
}

func (a *App) renderBoard(mainContent string, leftWidth, rightWidth int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("🍱 점심 메뉴 룰렛")
	left := lipgloss.JoinVertical(lipgloss.Left,
		renderTimeline(a.coord.Steps(), leftWidth-4),
		"",
		lipgloss.NewStyle().Width(max(minColumnWidth, leftWidth-4)).Render(mainContent),
	)
	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(minColumnWidth, leftWidth)).
		Render(left)
	body := leftBox
	if rightWidth > 0 {
		rightBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(max(minColumnWidth, rightWidth)).
			Render(a.renderSidePanel())
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	}
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	if a.state == stateRoulette {
		sections = append(sections, a.help.View(a.keys))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderLocationForm() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("어디에서 점심을 드시나요?")
	lines := []string{title}
	if a.banner != "" {
		lines = append(lines, labelStyleBlocked.Render("⚠ "+a.banner))
	}
	lines = append(lines, "", a.input.View())
	if a.inputErr != "" {
		lines = append(lines, labelStyleBlocked.Render(a.inputErr))
	}
	hint := "enter 저장"
	if _, ok := a.coord.Location(); ok {
		hint += " · esc 돌아가기"
	}
	lines = append(lines, "", detailTextStyle.Render(hint))
	return strings.Join(lines, "\n")
}

func (a *App) renderSidePanel() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("최근 메뉴")
	lines := []string{title}
	recent := a.coord.History()
	if len(recent) == 0 {
		lines = append(lines, labelStyleSkipped.Render("아직 없음"))
	}
	for i, item := range recent {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	lines = append(lines, "", detailTextStyle.Render("최근 3개 메뉴는 다시 뽑히지 않아요."))
	if loc, ok := a.coord.Location(); ok {
		lines = append(lines, "", labelStyleDefault.Render("📍 "+loc.Address))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s · %d", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
