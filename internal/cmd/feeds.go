package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/fahrplan/feeds"
)

var FeedsCmd = cli.Command{
	Name:               "feeds",
	Usage:              "Lists the known conference feeds, use --help to see a human readable list",
	Action:             showFeeds,
	CustomHelpTemplate: showHelp(),
}

func writeHelpLabels(w io.StringWriter, labels ...string) {
	for _, lbl := range labels {
		w.WriteString("\t")
		w.WriteString(lbl)
		w.WriteString(": ")
		w.WriteString(feeds.Labels[lbl])
		w.WriteString("\n")
	}
}

func showHelp() string {
	h := strings.Builder{}
	h.WriteString("Known conference feeds:\n")
	writeHelpLabels(&h, feeds.ValidTypes[:]...)
	h.WriteString("\nLoaded by default:\n")
	writeHelpLabels(&h, feeds.DefaultFeeds...)
	return h.String()
}

func showFeeds(c *cli.Context) error {
	fmt.Printf("%s\n", strings.Join(feeds.GetTypes(nil), ", "))
	return nil
}
