// Package app hosts the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/levels"
	sessionscreen "github.com/abhisek/lingua/internal/screens/session"
	"github.com/abhisek/lingua/internal/screens/welcome"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    screen.Services
	width  int
	height int
}

// RunOptions selects where the program starts. An empty Language shows
// the splash and home screen; a Level above zero opens that level's quiz.
type RunOptions struct {
	Language string
	Level    int
}

// newAppModel builds the initial screen stack.
func newAppModel(ctx context.Context, svc screen.Services, opts RunOptions) (AppModel, error) {
	m := AppModel{svc: svc}
	if opts.Language == "" {
		m.router = router.New(welcome.New(func() screen.Screen { return home.New(svc) }))
		return m, nil
	}

	if err := svc.Game.SetCurrentLanguage(ctx, opts.Language); err != nil {
		return m, err
	}
	m.router = router.New(home.New(svc))
	m.router.Push(levels.New(svc, opts.Language))
	if opts.Level > 0 {
		level, ok := svc.Game.GetLevel(opts.Language, opts.Level)
		if !ok {
			return m, fmt.Errorf("%s has no level %d", opts.Language, opts.Level)
		}
		s, err := sessionscreen.New(svc, opts.Language, level)
		if err != nil {
			return m, err
		}
		m.router.Push(s)
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.svc.Game.Progress().TotalScore, m.completed(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// completed counts completed levels across every language.
func (m AppModel) completed() int {
	n := 0
	for _, l := range m.svc.Game.Languages() {
		n += l.CompletedCount()
	}
	return n
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, svc screen.Services, opts RunOptions) error {
	m, err := newAppModel(ctx, svc, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
