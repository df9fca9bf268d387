package main

import (
	"fmt"
	"log/slog"
	"os"
)

const usage = `ralphflow v0.1.0

Usage:
  ralphflow serve                      start the web viewer
  ralphflow tui [--chart file]         step through a chart in the terminal
  ralphflow render [flags]             render one step as mermaid, svg, png or dot
  ralphflow export [flags]             write every step of a walkthrough to a directory
  ralphflow validate <file>...         check chart documents
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		return
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve()
	case "tui":
		err = runTUI(os.Args[2:])
	case "render":
		err = render(os.Args[2:], os.Stdout)
	case "export":
		err = export(os.Args[2:], os.Stdout)
	case "validate":
		err = validate(os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error(os.Args[1]+" failed", "err", err)
		os.Exit(1)
	}
}
