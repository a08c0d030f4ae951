package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrExitSilently is an error type that indicates that program should exit
// without printing any additional information with the given exit code.
// This is meant for cases where the command wants to manage its own error
// output but still needs to return a non-zero exit code (since returning
// nil from RunE would cause an exit with a zero code).
type ErrExitSilently struct {
	ExitCode int
}

func (e ErrExitSilently) Error() string {
	return "<exit silently>"
}

type BubbleTeaModelWithExitHandling interface {
	// ExitError is called after finish running the program (tea.Quit).
	//
	// This is used as a return value of RunBubbleTea.
	ExitError() error

	tea.Model
}

func RunBubbleTea(model BubbleTeaModelWithExitHandling) error {
	var opts []tea.ProgramOption
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		opts = []tea.ProgramOption{
			tea.WithInput(nil),
		}
	}
	p := tea.NewProgram(model, opts...)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if err := finalModel.(BubbleTeaModelWithExitHandling).ExitError(); err != nil {
		return err
	}
	return nil
}
