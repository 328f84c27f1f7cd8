package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pycheck/internal/diag"
	"pycheck/internal/driver"
	"pycheck/internal/source"
	"pycheck/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type checkOutcome struct {
	bag *diag.Bag
	err error
}

// runCheckWithUI drives the checker behind a progress display and hands the
// merged bag back once both the run and the UI have finished.
func runCheckWithUI(cmd *cobra.Command, fs *source.FileSet, opts driver.Options, paths []string) (*diag.Bag, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Events = events
		d := driver.New(fs, opts)
		bag, err := d.Check(cmd.Context(), paths)
		outcomeCh <- checkOutcome{bag: bag, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("pycheck", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.bag, uiErr
	}
	return outcome.bag, outcome.err
}
