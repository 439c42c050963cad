// Package dashboard is the terminal user interface: a map plus the three
// analyses, one per tab.
package dashboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/validation"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

type tab int

const (
	mapTab tab = iota
	pathTab
	strategicTab
	regionsTab
	tabCount
)

var tabNames = []string{"Map", "Path Finder", "Strategic", "Regions"}

// Slider bounds
const (
	MinTopN        = 3
	MaxTopN        = 10
	MinResolution  = 0.1
	MaxResolution  = 5.0
	ResolutionStep = 0.1
)

// Default journey endpoints, used when the dataset has them
const (
	defaultStart = "Bree"
	defaultEnd   = "Mount_Doom"
)

// Options configures the dashboard
type Options struct {
	Title      string
	TopN       int
	Resolution float64
	Map        visualization.MapOptions
}

// Model is the bubbletea model of the dashboard
type Model struct {
	engine *analysis.Engine
	opts   Options
	names  []string

	tab        tab
	start      int
	end        int
	editingEnd bool
	topN       int
	resolution float64

	path      *analysis.PathResult
	strategic table.Model
	ranked    bool
	regions   []analysis.CommunityStat

	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
}

// New creates the dashboard model
func New(engine *analysis.Engine, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "Realm Atlas"
	}

	names := engine.Graph().LocationNames()
	sort.Strings(names)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Location", Width: 18},
			{Title: "Score", Width: 8},
			{Title: "Paths", Width: 6},
			{Title: "Avg Danger", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(MaxTopN+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#90EE90")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#8B0000")).
		Bold(false)
	t.SetStyles(s)

	m := Model{
		engine:     engine,
		opts:       opts,
		names:      names,
		end:        len(names) - 1,
		topN:       validation.ClampInt(validation.DefaultOr(opts.TopN, 5), MinTopN, MaxTopN),
		resolution: validation.ClampFloat(validation.DefaultOr(opts.Resolution, 1.0), MinResolution, MaxResolution),
		strategic:  t,
		help:       help.New(),
		keys:       keys,
	}
	if i := sort.SearchStrings(names, defaultStart); i < len(names) && names[i] == defaultStart {
		m.start = i
	}
	if i := sort.SearchStrings(names, defaultEnd); i < len(names) && names[i] == defaultEnd {
		m.end = i
	}
	return m
}

// Run starts the dashboard on the terminal's alternate screen
func Run(engine *analysis.Engine, opts Options) error {
	p := tea.NewProgram(New(engine, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tabCount
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			m.run()
			return m, nil

		case key.Matches(msg, m.keys.Left):
			m.adjust(-1)
			return m, nil

		case key.Matches(msg, m.keys.Right):
			m.adjust(1)
			return m, nil

		case m.tab == pathTab && key.Matches(msg, m.keys.Swap):
			m.editingEnd = !m.editingEnd
			return m, nil

		case m.tab == pathTab && key.Matches(msg, m.keys.Up):
			m.move(-1)
			return m, nil

		case m.tab == pathTab && key.Matches(msg, m.keys.Down):
			m.move(1)
			return m, nil
		}
	}

	if m.tab == strategicTab {
		m.strategic, cmd = m.strategic.Update(msg)
	}
	return m, cmd
}

// adjust moves the active tab's slider one step
func (m *Model) adjust(dir int) {
	switch m.tab {
	case pathTab:
		m.editingEnd = !m.editingEnd
	case strategicTab:
		m.topN = validation.ClampInt(m.topN+dir, MinTopN, MaxTopN)
	case regionsTab:
		r := m.resolution + float64(dir)*ResolutionStep
		m.resolution = validation.ClampFloat(math.Round(r*10)/10, MinResolution, MaxResolution)
	}
}

// move changes the selected start or end location, wrapping around
func (m *Model) move(dir int) {
	n := len(m.names)
	if n == 0 {
		return
	}
	if m.editingEnd {
		m.end = (m.end + dir + n) % n
	} else {
		m.start = (m.start + dir + n) % n
	}
}

// run executes the active tab's query
func (m *Model) run() {
	switch m.tab {
	case mapTab:
		m.path = nil
		m.setMessage("Path highlight cleared", false)

	case pathTab:
		if len(m.names) == 0 {
			return
		}
		from, to := m.names[m.start], m.names[m.end]
		result, err := m.engine.SafestPath(from, to)
		if err != nil {
			m.path = nil
			if analysis.IsNoPath(err) {
				m.setMessage("No safe path found! Maybe try taking the eagles?", true)
			} else {
				m.setMessage(err.Error(), true)
			}
			return
		}
		m.path = result
		m.setMessage(fmt.Sprintf("Safest path found: %d legs, danger %d", len(result.Steps), result.TotalDanger), false)

	case strategicTab:
		stats, err := m.engine.StrategicLocations(m.topN)
		if err != nil {
			m.setMessage(err.Error(), true)
			return
		}
		rows := make([]table.Row, len(stats))
		for i, s := range stats {
			rows[i] = table.Row{
				fmt.Sprintf("%d", i+1),
				visualization.DisplayName(s.Name),
				fmt.Sprintf("%.2f%%", s.Score),
				fmt.Sprintf("%d", s.Connections),
				fmt.Sprintf("%.2f/10", s.AverageDanger),
			}
		}
		m.strategic.SetRows(rows)
		m.strategic.GotoTop()
		m.ranked = true
		m.setMessage(fmt.Sprintf("Ranked %d strategic locations", len(stats)), false)

	case regionsTab:
		regions, err := m.engine.Regions(m.resolution)
		if err != nil {
			m.setMessage(err.Error(), true)
			return
		}
		m.regions = regions
		m.setMessage(fmt.Sprintf("Found %d regions at resolution %.1f", len(regions), m.resolution), false)
	}
}

func (m *Model) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}
