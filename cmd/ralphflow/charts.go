package main

import (
	"flag"

	"github.com/soochol/ralphflow/internal/chart"
)

// chartFlag registers --chart on fs and returns a loader for it. An empty
// value selects the built-in chart.
func chartFlag(fs *flag.FlagSet) func() (*chart.Chart, error) {
	path := fs.String("chart", "", "chart document (YAML or JSON); defaults to the built-in chart")
	return func() (*chart.Chart, error) {
		if *path == "" {
			return chart.Ralph(), nil
		}
		return chart.Load(*path)
	}
}
