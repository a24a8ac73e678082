package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/legalaid/caseprogress/internal/cli/formatter"
)

// browserChrome is the number of lines used by the header and footer.
const browserChrome = 3

type browserKeyMap struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// timelineBrowser is a full-screen scrollable view of a rendered timeline.
type timelineBrowser struct {
	title   string
	content string
	vp      viewport.Model
	keys    browserKeyMap
	ready   bool
}

func newTimelineBrowser(title, content string) *timelineBrowser {
	return &timelineBrowser{
		title:   title,
		content: content,
		keys:    defaultBrowserKeyMap(),
	}
}

func (m *timelineBrowser) Init() tea.Cmd { return nil }

func (m *timelineBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - browserChrome
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *timelineBrowser) View() string {
	if !m.ready {
		return "loading..."
	}
	header := formatter.StyleHeader.Render(strings.ToUpper(m.title))
	footer := lipgloss.JoinHorizontal(lipgloss.Top,
		scrollIndicator(m.vp),
		formatter.Dim(fmt.Sprintf("  %s  %s  %s",
			helpText(m.keys.Quit), helpText(m.keys.Top), helpText(m.keys.Bottom))),
	)
	return header + "\n\n" + m.vp.View() + "\n" + footer
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// scrollIndicator returns a dim scroll position string for the footer.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
