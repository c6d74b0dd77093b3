package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kungfusheep/tuicore/teacompat"
)

// promptModel is a plain bubbletea model around a bubbles text input.
type promptModel struct {
	input  textinput.Model
	done   bool
	answer string
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Placeholder = "type something, enter to finish"
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-4, 1)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			m.answer = m.input.Value()
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	return "What's on your mind?\n\n" + m.input.View() + "\n\n(esc to quit)"
}

func teaCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tea",
		Short: "Run a bubbles text input through the bubbletea compatibility layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			final, err := run(cmd.Context(), cfg, teacompat.Program(newPromptModel(), cfg.options()))
			if err != nil {
				return err
			}
			if m, ok := final.(promptModel); ok && m.done {
				printResult(cmd.OutOrStdout(), "%s\n", m.answer)
			}
			return nil
		},
	}
}
