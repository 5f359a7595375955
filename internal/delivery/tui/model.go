package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"portfolio-contact/internal/domain"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// messageLimit is shown in the counter only; the controller enforces it
const messageLimit = 1000

// focus positions: the four fields in form order, then the send button
const (
	focusName = iota
	focusEmail
	focusSubject
	focusMessage
	focusButton
	focusCount
)

var placeholders = map[domain.Field]string{
	domain.FieldName:    "Your name",
	domain.FieldEmail:   "your.email@example.com",
	domain.FieldSubject: "What is this about?",
	domain.FieldMessage: "Tell me about your project or just say hi...",
}

// submitDoneMsg carries the result of a Submit that ran off the update loop.
type submitDoneMsg struct {
	outcome domain.SubmissionOutcome
}

// Model is the interactive contact form. All form state lives in the
// controller; the model only mirrors it into input widgets.
type Model struct {
	ctx  context.Context
	ctrl domain.ContactController
	keys KeyMap

	inputs  []textinput.Model // name, email, subject
	message textarea.Model
	spinner spinner.Model
	help    help.Model

	focus    int
	sending  bool
	quitting bool // quit requested while sending; honoured once the send ends
	snap     domain.ContactSnapshot
	width    int

	// shared by every copy of the model
	inflight *sendTracker
}

// sendTracker counts Submit calls that have started and not yet returned.
type sendTracker struct {
	mu   sync.Mutex
	n    int
	idle *sync.Cond
}

func newSendTracker() *sendTracker {
	f := &sendTracker{}
	f.idle = sync.NewCond(&f.mu)
	return f
}

func (f *sendTracker) begin() {
	f.mu.Lock()
	f.n++
	f.mu.Unlock()
}

func (f *sendTracker) end() {
	f.mu.Lock()
	f.n--
	if f.n == 0 {
		f.idle.Broadcast()
	}
	f.mu.Unlock()
}

func (f *sendTracker) wait() {
	f.mu.Lock()
	for f.n > 0 {
		f.idle.Wait()
	}
	f.mu.Unlock()
}

// New builds a form bound to ctrl. ctx is handed to every Submit.
func New(ctx context.Context, ctrl domain.ContactController) Model {
	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    DefaultKeyMap,
		inputs:  make([]textinput.Model, focusMessage),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		snap:    ctrl.Snapshot(),

		inflight: newSendTracker(),
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = placeholders[domain.ContactFields[i]]
		in.CharLimit = 0
		in.SetValue(m.snap.Form.Get(domain.ContactFields[i]))
		m.inputs[i] = in
	}
	m.inputs[focusName].Focus()

	m.message = textarea.New()
	m.message.Placeholder = placeholders[domain.FieldMessage]
	m.message.CharLimit = 0
	m.message.ShowLineNumbers = false
	m.message.SetHeight(6)
	m.message.SetValue(m.snap.Form.Message)

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > 80 {
			w = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		m.message.SetWidth(w)
		m.help.Width = msg.Width
		return m, nil

	case submitDoneMsg:
		if msg.outcome == domain.OutcomeBusy {
			return m, nil
		}
		m.sending = false
		m.snap = m.ctrl.Snapshot()
		if msg.outcome == domain.OutcomeSent {
			m.syncInputs()
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.sending {
			m.quitting = true
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		if m.sending {
			return m, nil
		}
		if m.snap.Notice == nil {
			return m, tea.Quit
		}
		m.ctrl.Dismiss()
		m.snap = m.ctrl.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case msg.Type == tea.KeyEnter:
		switch {
		case m.focus == focusButton:
			return m.submit()
		case m.focus < focusMessage:
			return m, m.setFocus(m.focus + 1)
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused widget and reports any edit
// to the controller.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus < focusMessage:
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if v := m.inputs[m.focus].Value(); v != before {
			m.edit(domain.ContactFields[m.focus], v)
		}
	case m.focus == focusMessage:
		before := m.message.Value()
		m.message, cmd = m.message.Update(msg)
		if v := m.message.Value(); v != before {
			m.edit(domain.FieldMessage, v)
		}
	}
	return m, cmd
}

func (m *Model) edit(field domain.Field, value string) {
	m.ctrl.UpdateField(field, value)
	m.snap = m.ctrl.Snapshot()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	// The button is disabled while a submission is in flight.
	if m.sending {
		return m, nil
	}
	m.sending = true
	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m Model) submitCmd() tea.Cmd {
	ctrl, ctx, running := m.ctrl, m.ctx, m.inflight
	return func() tea.Msg {
		running.begin()
		defer running.end()
		return submitDoneMsg{outcome: ctrl.Submit(ctx)}
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.message.Blur()
	m.focus = i

	switch {
	case i < focusMessage:
		return m.inputs[i].Focus()
	case i == focusMessage:
		return m.message.Focus()
	}
	return nil
}

// syncInputs reloads the widgets from the controller's form.
func (m *Model) syncInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue(m.snap.Form.Get(domain.ContactFields[i]))
	}
	m.message.SetValue(m.snap.Form.Message)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Get In Touch"))
	b.WriteString("\n")

	labels := []string{"Name", "Email", "Subject", "Message"}
	for i, f := range domain.ContactFields {
		b.WriteString(labelStyle.Render(labels[i] + " *"))
		b.WriteString("\n")
		if i < focusMessage {
			b.WriteString(m.inputs[i].View())
		} else {
			b.WriteString(m.message.View())
			b.WriteString("\n")
			count := utf8.RuneCountInString(m.message.Value())
			b.WriteString(counterStyle.Render(fmt.Sprintf("%d/%d characters", count, messageLimit)))
		}
		b.WriteString("\n")
		if fe, ok := m.snap.Errors[f]; ok {
			b.WriteString(errorStyle.Render(fe.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.buttonView())
	b.WriteString("\n")

	if n := m.snap.Notice; n != nil {
		b.WriteString("\n")
		style := successNoticeStyle
		if n.Severity == domain.NoticeError {
			style = errorNoticeStyle
		}
		b.WriteString(style.Render(n.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) buttonView() string {
	style := buttonStyle
	if m.focus == focusButton {
		style = focusedButtonStyle
	}
	if m.sending {
		label := " Sending..."
		if m.quitting {
			label = " Sending... (will quit when done)"
		}
		return style.Render(m.spinner.View() + label)
	}
	return style.Render("Send Message")
}

// Run drives ctrl interactively until the user quits or ctx is cancelled.
// It returns only after an in-flight submission has completed.
func Run(ctx context.Context, ctrl domain.ContactController) error {
	m := New(ctx, ctrl)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	m.inflight.wait()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("contact form: %w", err)
	}
	return nil
}
