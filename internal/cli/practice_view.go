package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type practiceOutcome int

const (
	outcomeOpen practiceOutcome = iota
	outcomeEnded
	outcomeAbandoned
)

// Lines reserved below the transcript: prompt and help.
const practiceChromeHeight = 3

type replyMsg struct {
	ex  *service.Exchange
	err error
}

type endedMsg struct {
	review *service.SessionReview
	err    error
}

type abandonedMsg struct {
	err error
}

type practiceKeyMap struct {
	Send       key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func defaultPracticeKeys() practiceKeyMap {
	return practiceKeyMap{
		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abandon")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
	}
}

// practiceView is the interactive chat with the simulated patient.
// Patient replies and the final review run as commands so the UI stays
// responsive while a live model is thinking.
type practiceView struct {
	ctx      context.Context
	sessions service.PracticeSessionService
	session  *domain.PracticeSession
	keys     practiceKeyMap

	input    textinput.Model
	vp       viewport.Model
	messages []string
	width    int

	busy    bool
	outcome practiceOutcome
	review  *service.SessionReview
	err     error
}

func newPracticeView(ctx context.Context, sessions service.PracticeSessionService, session *domain.PracticeSession) *practiceView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "Say something to " + session.Profile.Name

	v := &practiceView{
		ctx:      ctx,
		sessions: sessions,
		session:  session,
		keys:     defaultPracticeKeys(),
		input:    ti,
		vp:       viewport.New(0, 0),
	}
	v.messages = append(v.messages, formatter.Dim("You are now with "+session.Profile.Name+". /end for feedback, /quit to abandon, /help for commands."))
	return v
}

func (v *practiceView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *practiceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.vp.Width = msg.Width
		v.vp.Height = max(msg.Height-practiceChromeHeight, 3)
		v.refresh()
		return v, nil

	case replyMsg:
		v.busy = false
		if msg.err != nil {
			v.appendError(msg.err)
			if errors.Is(msg.err, domain.ErrSessionNotActive) {
				return v, tea.Quit
			}
			return v, nil
		}
		v.append(formatter.FormatTurn(msg.ex.Patient, v.session.Profile.Name))
		return v, nil

	case endedMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
		} else {
			v.review = msg.review
			v.outcome = outcomeEnded
		}
		return v, tea.Quit

	case abandonedMsg:
		v.err = msg.err
		v.outcome = outcomeAbandoned
		return v, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, v.abandonCmd()
		case key.Matches(msg, v.keys.ScrollUp, v.keys.ScrollDown):
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		case key.Matches(msg, v.keys.Send):
			input := strings.TrimSpace(v.input.Value())
			if input == "" || v.busy {
				return v, nil
			}
			v.input.Reset()
			return v.handleInput(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *practiceView) View() string {
	var b strings.Builder

	if v.vp.Height > 0 {
		b.WriteString(v.vp.View())
	} else {
		b.WriteString(strings.Join(v.messages, "\n"))
	}
	b.WriteString("\n")

	if v.busy {
		b.WriteString(formatter.Dim(v.session.Profile.Name + " is thinking..."))
	} else {
		b.WriteString(formatter.StyleBlue.Render("you") + formatter.Dim("> ") + v.input.View())
	}
	b.WriteString("\n")
	b.WriteString(v.helpLine())

	return b.String()
}

func (v *practiceView) helpLine() string {
	bindings := []key.Binding{v.keys.Send, v.keys.Quit, v.keys.ScrollUp, v.keys.ScrollDown}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " • "))
}

func (v *practiceView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch command(input) {
	case cmdEnd:
		v.busy = true
		v.append(formatter.Dim("Ending the session..."))
		return v, v.endCmd()
	case cmdQuit:
		return v, v.abandonCmd()
	case cmdPatient:
		v.append(formatter.FormatPatientProfile(v.session.Profile))
		return v, nil
	case cmdHelp:
		v.append(formatter.Dim("/end  finish and get feedback\n/quit  abandon the session\n/patient  show the patient card"))
		return v, nil
	}

	v.append(formatter.FormatTurn(clinicianTurn(input), ""))
	v.busy = true
	return v, v.sayCmd(input)
}

func (v *practiceView) sayCmd(utterance string) tea.Cmd {
	ctx, sessions, id := v.ctx, v.sessions, v.session.ID
	return func() tea.Msg {
		ex, err := sessions.Say(ctx, id, utterance)
		return replyMsg{ex: ex, err: err}
	}
}

func (v *practiceView) endCmd() tea.Cmd {
	ctx, sessions, id := v.ctx, v.sessions, v.session.ID
	return func() tea.Msg {
		review, err := sessions.End(ctx, id)
		return endedMsg{review: review, err: err}
	}
}

func (v *practiceView) abandonCmd() tea.Cmd {
	ctx, sessions, id := v.ctx, v.sessions, v.session.ID
	return func() tea.Msg {
		return abandonedMsg{err: sessions.Abandon(ctx, id)}
	}
}

func (v *practiceView) append(line string) {
	v.messages = append(v.messages, line)
	v.refresh()
}

func (v *practiceView) appendError(err error) {
	v.append(formatter.StyleRed.Render("Error: " + err.Error()))
}

// refresh re-wraps the transcript to the window and scrolls to the end.
func (v *practiceView) refresh() {
	content := strings.Join(v.messages, "\n")
	if v.width > 0 {
		content = lipgloss.NewStyle().Width(v.width).Render(content)
	}
	v.vp.SetContent(content)
	v.vp.GotoBottom()
}
