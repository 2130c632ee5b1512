// Command playground is an interactive REPL for trying out templates:
// each line is expanded with the stock block set and the result is
// printed, along with any actions the blocks emitted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tagscript "github.com/japandotorg/TagScriptEngine"
	"github.com/japandotorg/TagScriptEngine/adapter"
	"github.com/japandotorg/TagScriptEngine/block"
)

const (
	prompt       = "tag> "
	inputLimit   = 2048
	defaultWidth = 80

	hintText      = "Type a template and press Enter (Ctrl+C or Ctrl+D to quit)"
	truncatedMark = " [truncated]"
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	seeds, err := parseSeedArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid seed: %v\n", err)
		os.Exit(2)
	}

	engine := tagscript.MustNew(block.Defaults(), nil)

	p := tea.NewProgram(newModel(engine, seeds))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "playground failed: %v\n", err)
		os.Exit(1)
	}
}

// parseSeedArgs turns repeated -seed key=value flags into adapters.
func parseSeedArgs(args []string) (map[string]tagscript.Adapter, error) {
	var pairs seedList
	fs := flag.NewFlagSet("playground", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&pairs, "seed", "")
	fs.Var(&pairs, "s", "")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if len(pairs) == 0 {
		return nil, nil
	}
	seeds := make(map[string]tagscript.Adapter, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("want key=value, got %q", pair)
		}
		seeds[key] = adapter.NewString(value)
	}
	return seeds, nil
}

// seedList collects repeated -seed flags
type seedList []string

func (s *seedList) String() string { return strings.Join(*s, ",") }

func (s *seedList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// model is the Bubble Tea model for the playground.
type model struct {
	engine   *tagscript.Engine
	seeds    map[string]tagscript.Adapter
	input    textinput.Model
	quitting bool
}

func newModel(engine *tagscript.Engine, seeds map[string]tagscript.Adapter) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = inputLimit
	ti.Width = defaultWidth

	return model{
		engine: engine,
		seeds:  seeds,
		input:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.expandInput()
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(prompt) - 2
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(hintStyle.Render(hintText))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) expandInput() (model, tea.Cmd) {
	source := m.input.Value()
	if strings.TrimSpace(source) == "" {
		return m, nil
	}
	m.input.SetValue("")

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(source))
	response := m.engine.Process(
		context.Background(), source, tagscript.WithSeeds(m.seeds))

	lines := []tea.Cmd{echo, tea.Println(renderResponse(response))}
	if len(response.Actions) > 0 {
		lines = append(lines, tea.Println(renderActions(response.Actions)))
	}
	return m, tea.Sequence(lines...)
}

func renderResponse(response *tagscript.Response) string {
	out := resultStyle.Render(response.Body)
	if response.Truncated {
		out += errorStyle.Render(truncatedMark)
	}
	return out
}

func renderActions(actions map[string]any) string {
	data, err := json.Marshal(actions)
	if err != nil {
		return actionStyle.Render(fmt.Sprintf("actions: %v", actions))
	}
	return actionStyle.Render("actions: " + string(data))
}
