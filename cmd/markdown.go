package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown prints a markdown report to stdout, styled for the terminal
// unless -plain is set.
func printMarkdown(md string) {
	if *plainOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
