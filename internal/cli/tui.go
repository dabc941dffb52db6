package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/labels"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

const frameInterval = 33 * time.Millisecond

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("178")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	stylePage    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	styleCaption = lipgloss.NewStyle().Italic(true)
)

var pageColors = map[router.Visibility]lipgloss.Color{
	router.Hidden:  colorDim,
	router.Visible: colorWhite,
	router.Showing: colorCyan,
	router.Hiding:  colorYellow,
}

type (
	frameMsg         time.Time
	transitionEndMsg uint64
	backMsg          struct{}
	navResultMsg     struct {
		action string
		err    error
	}
)

// navModel renders the router's visible pages. Each frame commits the
// version drawn by the previous frame, so navigation futures complete only
// after their page has been on screen.
type navModel struct {
	ctx    context.Context
	setup  *pagenav.Setup
	labels *labels.Labels
	anim   time.Duration
	start  *router.Future

	drawn  uint64
	pages  []router.VisiblePage
	info   router.PageInfo
	status string
	failed bool
	timers map[uint64]bool
}

func newNavModel(ctx context.Context, setup *pagenav.Setup, start *router.Future) navModel {
	return navModel{
		ctx:    ctx,
		setup:  setup,
		labels: labels.New(setup.Config.Locale),
		anim:   setup.Config.Transition.Duration,
		start:  start,
		timers: make(map[uint64]bool),
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m navModel) Init() tea.Cmd {
	cmds := []tea.Cmd{nextFrame()}
	if m.start != nil {
		cmds = append(cmds, m.wait("start", m.start))
	}
	return tea.Batch(cmds...)
}

func (m navModel) wait(action string, f *router.Future) tea.Cmd {
	return func() tea.Msg {
		return navResultMsg{action: action, err: f.Wait(m.ctx)}
	}
}

func (m navModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	r := m.setup.Router

	switch msg := msg.(type) {
	case frameMsg:
		r.Commit(m.drawn)
		var cmds []tea.Cmd
		if v := r.Version(); v != m.drawn {
			m.drawn = v
			cmds = m.refresh()
		}
		return m, tea.Batch(append(cmds, nextFrame())...)

	case transitionEndMsg:
		delete(m.timers, uint64(msg))
		r.OnPageTransitionEnd(uint64(msg))
		return m, tea.Batch(m.refresh()...)

	case navResultMsg:
		m.failed = msg.err != nil
		if m.failed {
			m.status = fmt.Sprintf("%s: %v", msg.action, msg.err)
		} else {
			m.status = msg.action
		}
		return m, nil

	case backMsg:
		return m, m.wait("back", r.Back(m.ctx, "", nil))

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m navModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.setup.Router

	switch s := msg.String(); s {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "b", "esc", "backspace":
		return m, m.wait("back", r.Back(m.ctx, "", nil))
	case "h":
		home := m.setup.Config.InitialRoute
		return m, m.wait("back "+home, r.Back(m.ctx, home, nil))
	case "r":
		home := m.setup.Config.InitialRoute
		return m, m.wait("replace "+home, r.Replace(m.ctx, home, nil))
	case "c":
		m.setup.Clear()
		m.status = string(m.setup.Config.ClearMode)
		m.failed = false
		return m, tea.Batch(m.refresh()...)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(s[0] - '1')
		if i >= len(demoRoutes) {
			return m, nil
		}
		route := demoRoutes[i]
		params := router.Params{"from": m.info.Route}
		return m, m.wait("push "+route, r.Push(m.ctx, route, params))
	}
	return m, nil
}

// refresh reloads the pages and schedules the end of any transition that
// has no timer yet.
func (m *navModel) refresh() []tea.Cmd {
	r := m.setup.Router
	m.pages = r.VisiblePages()
	m.info = r.PageInfo()

	var cmds []tea.Cmd
	for _, p := range m.pages {
		v := p.Transition.Visibility
		if (v != router.Showing && v != router.Hiding) || m.timers[p.Version] {
			continue
		}
		m.timers[p.Version] = true
		version := p.Version
		cmds = append(cmds, tea.Tick(m.anim, func(time.Time) tea.Msg { return transitionEndMsg(version) }))
	}
	return cmds
}

func (m navModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("pagenav"))
	b.WriteString("  ")
	b.WriteString(styleDim.Render(m.labels.Depth(m.info.Depth)))
	b.WriteString("\n\n")

	for i := len(m.pages) - 1; i >= 0; i-- {
		b.WriteString(m.renderPage(m.pages[i]))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.failed {
			b.WriteString(styleError.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render(m.labels.Help()))
	b.WriteString("\n")
	return b.String()
}

func (m navModel) renderPage(p router.VisiblePage) string {
	color := pageColors[p.Transition.Visibility]
	caption := fmt.Sprintf("%s #%d  %s · %s", p.Route, p.Version,
		m.labels.Visibility(p.Transition.Visibility), m.labels.Kind(p.Transition.Kind))

	body := fmt.Sprint(p.Builder(p.Params))
	content := lipgloss.JoinVertical(lipgloss.Left, body, styleCaption.Render(caption))
	return stylePage.BorderForeground(color).Foreground(color).Render(content)
}
