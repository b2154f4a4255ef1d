package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"curriculumstudio/internal/studio"
)

type refreshMsg struct{}

type generateDoneMsg struct {
	err error
}

// Notifier coalesces studio state changes into refresh messages. Pass
// Notify as studio.Config.OnChange; it never blocks the writer.
type Notifier struct {
	ch chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

func (n *Notifier) Notify(studio.State) {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Notifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n.ch
		return refreshMsg{}
	}
}

type Model struct {
	ctx      context.Context
	studio   *studio.Studio
	notifier *Notifier
	state    studio.State

	topic    textinput.Model
	admin    textinput.Model
	spinner  spinner.Model
	progress progress.Model
	width    int
}

func New(ctx context.Context, s *studio.Studio, n *Notifier) Model {
	topic := textinput.New()
	topic.Placeholder = "e.g. Human-Centered AI Systems"
	topic.Prompt = "› "
	topic.CharLimit = 200
	topic.Focus()

	admin := textinput.New()
	admin.Placeholder = "Secret code"
	admin.Prompt = "› "
	admin.EchoMode = textinput.EchoPassword
	admin.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		ctx:      ctx,
		studio:   s,
		notifier: n,
		state:    s.Snapshot(),
		topic:    topic,
		admin:    admin,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.notifier != nil {
		cmds = append(cmds, m.notifier.wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) State() studio.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, msg.Width-8)
		return m, nil

	case refreshMsg:
		m.state = m.studio.Snapshot()
		if m.notifier == nil {
			return m, nil
		}
		return m, m.notifier.wait()

	case generateDoneMsg:
		m.state = m.studio.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.state.IsFullPageMode:
			return m.updateFullPage(msg)
		case m.state.IsAdminOpen:
			return m.updateAdmin(msg)
		default:
			return m.updateMain(msg)
		}
	}
	return m, nil
}

func (m Model) updateFullPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.String() == "x" {
		m.studio.ExitFullPage()
		m.state = m.studio.Snapshot()
		m.topic.Focus()
	}
	return m, nil
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.studio.CloseAdmin()
		m.admin.Blur()
		m.topic.Focus()
	case tea.KeyEnter:
		if m.studio.SubmitAdmin() {
			m.admin.SetValue("")
			m.admin.Blur()
		}
	default:
		var cmd tea.Cmd
		m.admin, cmd = m.admin.Update(msg)
		m.studio.SetAdminCode(m.admin.Value())
		m.state = m.studio.Snapshot()
		return m, cmd
	}
	m.state = m.studio.Snapshot()
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlA:
		m.studio.OpenAdmin()
		m.admin.SetValue(m.studio.Snapshot().AdminCode)
		m.admin.Focus()
		m.topic.Blur()
		m.state = m.studio.Snapshot()
		return m, textinput.Blink
	case tea.KeyEnter:
		if m.state.IsLoading {
			return m, nil
		}
		s, ctx := m.studio, m.ctx
		return m, func() tea.Msg {
			return generateDoneMsg{err: s.Generate(ctx)}
		}
	}

	if m.state.IsLoading {
		return m, nil
	}
	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	m.studio.SetTopic(m.topic.Value())
	m.state = m.studio.Snapshot()
	return m, cmd
}
