package cmd

import (
	"context"
	"net/http"
	"os"
	"strings"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-ap/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~mariusor/fahrplan/feeds"
	"git.sr.ht/~mariusor/fahrplan/internal/post"
	"git.sr.ht/~mariusor/fahrplan/schedule"
)

const maxConcurrentFetches = 4

var FetchCmd = cli.Command{
	Name:  "fetch",
	Usage: "Fetches conference schedules and prints their talks",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:   "url",
			Usage:  "The URL of a schedule document",
			EnvVar: "FAHRPLAN_URL",
		},
		&cli.StringSliceFlag{
			Name:  "feed",
			Usage: "Which known conferences to load, see the feeds command",
		},
		yearFlag,
		timezoneFlag,
		timeoutFlag,
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: " + strings.Join(post.Formats, ", "),
			Value: post.FormatText,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
	},
	Action: fetchSchedules,
}

type source struct {
	name string
	url  string
}

// sources collects the schedules requested with --url and --feed, falling
// back to the default feeds when neither is present.
func sources(c *cli.Context) ([]source, error) {
	result := make([]source, 0)
	for _, u := range stringSliceValues(c, "url") {
		result = append(result, source{name: u, url: u})
	}
	labels := stringSliceValues(c, "feed")
	if len(labels) == 0 && len(result) == 0 {
		labels = feeds.DefaultFeeds
	}
	for _, lbl := range labels {
		lbl = strings.ToLower(lbl)
		u, err := feeds.Resolve(lbl, c.Int("year"))
		if err != nil {
			return nil, err
		}
		result = append(result, source{name: lbl, url: u.String()})
	}
	return result, nil
}

type loaded struct {
	events schedule.Events
	err    error
}

// loadAll fetches every source concurrently. Each schedule succeeds or
// fails on its own, the results keep the order of srcs.
func loadAll(ctx context.Context, l *schedule.Loader, srcs []source) []loaded {
	res := make([]loaded, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, src := range srcs {
		g.Go(func() error {
			res[i].events, res[i].err = l.Load(gctx, src.url)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func fetchSchedules(c *cli.Context) error {
	log := logger(c)

	loc, err := location(c.String("timezone"))
	if err != nil {
		return errors.Annotatef(err, "invalid timezone")
	}
	format := c.String("format")
	srcs, err := sources(c)
	if err != nil {
		return err
	}

	l := schedule.New(schedule.Config{
		Client:   &http.Client{Timeout: c.Duration("timeout")},
		Location: loc,
		Logger:   log,
	})

	failed := 0
	for i, r := range loadAll(context.Background(), l, srcs) {
		src := srcs[i]
		if r.err != nil {
			failed++
			log.WithContext(diagnostic(src, r.err)).Errorf("Unable to load schedule: %s", r.err)
			continue
		}
		log.WithContext(lw.Ctx{"feed": src.name, "count": len(r.events)}).Debugf("Loaded schedule")
		if format == post.FormatText && len(srcs) > 1 {
			info("# %s", src.name)
		}
		if err := post.Write(os.Stdout, format, src.name, r.events, loc); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.Newf("unable to load %d out of %d schedules", failed, len(srcs))
	}
	return nil
}

func diagnostic(src source, err error) lw.Ctx {
	ctx := lw.Ctx{"feed": src.name, "url": src.url}
	if e, ok := err.(*schedule.Error); ok {
		ctx["stage"] = e.Stage
		if e.EventID != "" {
			ctx["event"] = e.EventID
		}
		if e.Field != "" {
			ctx["field"] = e.Field
		}
	}
	return ctx
}
