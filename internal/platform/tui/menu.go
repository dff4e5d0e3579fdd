package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
	"github.com/vovakirdan/sweep-arcade/internal/registry"
	"github.com/vovakirdan/sweep-arcade/internal/storage"
)

// previewSeed fixes the opening world shown in the menu.
const previewSeed = 1

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

// WorldPreview is a game's opening world as the broad phase sees it,
// one tick after reset.
type WorldPreview struct {
	Bodies [physics.LayerCount]int // Bodies per layer
	Pairs  int                     // Pairs reported on that tick
}

// Total returns the number of bodies across all layers.
func (p WorldPreview) Total() int {
	n := 0
	for _, c := range p.Bodies {
		n += c
	}
	return n
}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Plays     int
	Preview   *WorldPreview // nil when the game does not expose its world
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	matrix         *physics.LayerMatrix
	parallel       bool
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu listing every registered game.
// matrix and opts are the broad-phase settings games will run with;
// a nil matrix means the default design table.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, matrix *physics.LayerMatrix, opts ...physics.Option) MenuModel {
	if matrix == nil {
		matrix = physics.DefaultLayerMatrix()
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{
			GameID:  g.ID,
			Title:   g.Title,
			Preview: previewWorld(g.ID, cfg, matrix, opts),
		}
		if store != nil {
			if stats, err := store.GetGameStats(g.ID); err == nil {
				item.HighScore = stats.HighScore
				item.Plays = stats.GamesCount
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		matrix:    matrix,
		parallel:  physics.NewBroadPhase(matrix, opts...).Parallel(),
		keyMapper: NewKeyMapper(),
	}
}

// previewWorld runs one tick of a fresh game with a fixed seed.
func previewWorld(gameID string, cfg core.RuntimeConfig, matrix *physics.LayerMatrix, opts []physics.Option) *WorldPreview {
	game, err := registry.CreateObservable(gameID)
	if err != nil {
		return nil
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = 80, 24
	}
	cfg.Seed = previewSeed

	game.SetPhysics(matrix, opts...)
	game.Reset(cfg)
	game.Step(core.NewInputFrame())
	snap := game.Snapshot()

	p := &WorldPreview{Pairs: len(snap.Pairs)}
	for _, b := range snap.Bodies {
		if l, err := physics.ParseLayer(b.Layer); err == nil {
			p.Bodies[l]++
		}
	}
	return p
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

// handleKey moves the cursor with wrap-around and resolves choices.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}

	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case MenuActionSelect:
		if n > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the game list and a detail panel for the highlighted game.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("S W E E P   A R C A D E"),
		menuDimStyle.Render(fmt.Sprintf("%d games, %s", len(m.items), m.sweepMode())),
		"",
	}
	for i, item := range m.items {
		lines = append(lines, m.itemLine(i, item))
	}
	if len(m.items) > 0 {
		lines = append(lines, "", menuPanelStyle.Render(m.details(m.items[m.cursor])))
	}
	lines = append(lines, "", menuDimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
}

func (m MenuModel) itemLine(i int, item MenuItem) string {
	record := "no plays yet"
	if item.Plays > 0 {
		record = fmt.Sprintf("best %d in %d plays", item.HighScore, item.Plays)
	}
	line := fmt.Sprintf("%-22s %s", item.Title, menuDimStyle.Render(record))
	if i == m.cursor {
		return menuCursorStyle.Render("> ") + line
	}
	return "  " + line
}

// details describes the opening world of item and which of its layers
// the current matrix lets collide.
func (m MenuModel) details(item MenuItem) string {
	p := item.Preview
	if p == nil {
		return "World preview not available"
	}

	var present []physics.Layer
	var counts []string
	for l := physics.Layer(0); l < physics.LayerCount; l++ {
		if p.Bodies[l] > 0 {
			present = append(present, l)
			counts = append(counts, fmt.Sprintf("%s %d", l, p.Bodies[l]))
		}
	}

	var pairs []string
	for i, a := range present {
		for _, b := range present[i:] {
			if m.matrix.Allowed(a, b) {
				pairs = append(pairs, a.String()+"/"+b.String())
			}
		}
	}
	collides := "nothing"
	if len(pairs) > 0 {
		collides = strings.Join(pairs, "  ")
	}

	return strings.Join([]string{
		fmt.Sprintf("bodies    %d (%s)", p.Total(), strings.Join(counts, ", ")),
		fmt.Sprintf("pairs     %d on the first tick", p.Pairs),
		fmt.Sprintf("collides  %s", collides),
	}, "\n")
}

func (m MenuModel) sweepMode() string {
	if m.parallel {
		return "parallel axis sweeps"
	}
	return "sequential sweeps"
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, matrix *physics.LayerMatrix, opts ...physics.Option) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, matrix, opts...), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
