package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/domain"
	"docchat/internal/service"
)

// ChatPort is the TUI-facing subset of the RAG service.
type ChatPort interface {
	Ask(ctx context.Context, question string) (domain.Answer, error)
	History() []domain.Turn
	Stats() service.Stats
}

const summaryPrompt = "Summarize the documents."

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service     ChatPort
	input       textinput.Model
	viewport    viewport.Model
	status      string
	lastSources []string
	ready       bool
}

// New creates a new chat model. banner is shown until the first question,
// typically the ingestion report.
func New(svc ChatPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	vp.SetContent(banner)
	return Model{service: svc, input: ti, viewport: vp, status: "Ready. Ctrl+S summary, Ctrl+E export, Ctrl+C quit."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, qh := inputStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m.input.Reset()
				return m.ask(q), nil
			}
		case "ctrl+s":
			return m.ask(summaryPrompt), nil
		case "ctrl+e":
			m.status = m.exportChat()
			return m, nil
		case "up":
			m.viewport.LineUp(3)
			return m, nil
		case "down":
			m.viewport.LineDown(3)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("docchat")
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) ask(question string) Model {
	answer, err := m.service.Ask(context.Background(), question)
	if err != nil {
		m.status = "Error: " + err.Error()
	} else {
		m.lastSources = answer.Sources
		st := m.service.Stats()
		m.status = fmt.Sprintf("%d docs, %d chunks, %d queries | grounded on %d chunks | Ctrl+E export",
			st.Documents, st.Chunks, st.Queries, len(answer.Sources))
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m
}

func (m Model) renderTranscript() string {
	turns := m.service.History()
	if len(turns) == 0 {
		return "No conversation yet."
	}
	var b strings.Builder
	for _, t := range turns {
		if t.Role == domain.RoleUser {
			b.WriteString(userStyle.Render("You: ") + t.Text + "\n\n")
		} else {
			b.WriteString(assistantStyle.Render("Assistant: ") + t.Text + "\n\n")
		}
	}
	if len(m.lastSources) > 0 {
		b.WriteString(sourceStyle.Render("sources: " + strings.Join(m.lastSources, ", ")))
	}
	return b.String()
}

// exportChat writes the full transcript to a timestamped file in the
// working directory.
func (m Model) exportChat() string {
	turns := m.service.History()
	if len(turns) == 0 {
		return "Nothing to export yet."
	}
	var b strings.Builder
	for _, t := range turns {
		if t.Role == domain.RoleUser {
			b.WriteString("You: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(t.Text)
		b.WriteString("\n\n")
	}
	name := fmt.Sprintf("docchat_chat_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Chat exported to " + name
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
