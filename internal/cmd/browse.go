package cmd

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-ap/errors"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/fahrplan/feeds"
	"git.sr.ht/~mariusor/fahrplan/internal/browse"
	"git.sr.ht/~mariusor/fahrplan/schedule"
)

var BrowseCmd = cli.Command{
	Name:  "browse",
	Usage: "Browses the talks of one schedule in the terminal",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "The URL of a schedule document",
		},
		&cli.StringFlag{
			Name:  "feed",
			Usage: "A known conference, see the feeds command",
		},
		yearFlag,
		timezoneFlag,
		timeoutFlag,
	},
	Action: browseSchedule,
}

func browseSchedule(c *cli.Context) error {
	u, feed := c.String("url"), strings.ToLower(c.String("feed"))
	if (u == "") == (feed == "") {
		return errors.NotValidf("exactly one of --url or --feed is needed")
	}
	title := u
	if feed != "" {
		su, err := feeds.GetScheduleURL(feed, c.Int("year"))
		if err != nil {
			return err
		}
		u = su.String()
		title = feeds.Labels[feed]
	}

	loc, err := location(c.String("timezone"))
	if err != nil {
		return errors.Annotatef(err, "invalid timezone")
	}
	l := schedule.New(schedule.Config{
		Client:   &http.Client{Timeout: c.Duration("timeout")},
		Location: loc,
		Logger:   logger(c),
	})
	events, err := l.Load(context.Background(), u)
	if err != nil {
		return err
	}
	return browse.Run(title, events, loc)
}
