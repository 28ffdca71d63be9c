package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	duckdbvalue "github.com/wippyai/duckdb-value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	nullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateShowResult
)

type interactiveModel struct {
	err        error
	lib        duckdbvalue.Library
	engineName string
	rows       [][]string
	inputs     []textinput.Model
	focusIdx   int
	state      modelState
}

type builtMsg struct {
	err  error
	rows [][]string
}

func newInteractiveModel(lib duckdbvalue.Library, engineName string) *interactiveModel {
	typ := textinput.New()
	typ.Prompt = "type: "
	typ.Placeholder = "BIGINT"
	typ.Width = 20
	typ.Focus()

	lit := textinput.New()
	lit.Prompt = "value: "
	lit.Placeholder = "42, NULL or [1, 2, 3]"
	lit.Width = 40

	return &interactiveModel{
		lib:        lib,
		engineName: engineName,
		inputs:     []textinput.Model{typ, lit},
		state:      stateInput,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInput:
				return m, m.build
			case stateShowResult:
				m.state = stateInput
				m.rows = nil
				m.err = nil
			}
			return m, nil

		case "tab", "shift+tab":
			if m.state == stateInput {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInput
				m.rows = nil
				m.err = nil
			}
			return m, nil
		}

	case builtMsg:
		m.rows = msg.rows
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// build creates the value, describes it and releases it before returning.
func (m *interactiveModel) build() tea.Msg {
	typeName := m.inputs[0].Value()
	if strings.TrimSpace(typeName) == "" {
		typeName = m.inputs[0].Placeholder
	}

	v, err := parseInput(m.lib, typeName, m.inputs[1].Value())
	if err != nil {
		return builtMsg{err: err}
	}
	defer v.Close()

	return builtMsg{rows: describe("value", v)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DuckDB Values"))
	b.WriteString(" ")
	b.WriteString(m.engineName)
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter build • ctrl+c quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			for _, r := range m.rows {
				b.WriteString(m.formatRow(r))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

// formatRow renders one describe row: name, type, null, text.
func (m *interactiveModel) formatRow(r []string) string {
	depth := strings.Count(r[0], "[")
	line := strings.Repeat("  ", depth) + nameStyle.Render(r[0]) + " " + typeStyle.Render(r[1])
	if r[2] == "true" {
		return line + " " + nullStyle.Render("NULL")
	}
	return line + " = " + resultStyle.Render(r[3])
}

func runInteractive(lib duckdbvalue.Library, engineName string) error {
	p := tea.NewProgram(newInteractiveModel(lib, engineName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
