package main

import (
	"flag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/soochol/ralphflow/internal/tui"
)

func runTUI(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	loadChart := chartFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := loadChart()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.New(c, nil), tea.WithAltScreen()).Run()
	return err
}
