package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	log "github.com/sirupsen/logrus"
)

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Debugf("could not render markdown: %v", err)
	fmt.Fprint(stdout, md)
}
