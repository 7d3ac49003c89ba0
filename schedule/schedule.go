// Package schedule loads Pentabarf/frab conference schedules and turns
// them into a flat list of talks ordered by start time.
package schedule

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"git.sr.ht/~mariusor/lw"
)

const (
	userAgent      = "fahrplan (+https://git.sr.ht/~mariusor/fahrplan)"
	defaultTimeout = 30 * time.Second
)

// Parse walks the schedule document in r, normalizes every event and
// returns them sorted by start time. The first malformed event fails the
// whole document, no partial list is returned.
// Start times without an offset are read in loc; with a nil loc they fail.
func Parse(r io.Reader, loc *time.Location) (Events, error) {
	events := make(Events, 0)
	err := Walk(r, func(raw RawEvent) error {
		ev, err := Normalize(raw, loc)
		if err != nil {
			return err
		}
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	events.Sort()
	return events, nil
}

// Config
type Config struct {
	// Client is used for fetching documents, a client with a 30s timeout
	// is used when nil.
	Client *http.Client
	// Location is used for start times that carry no UTC offset.
	Location *time.Location
	Logger   lw.Logger
}

// Loader fetches and parses schedules. It holds no state besides its
// configuration and can be shared between goroutines.
type Loader struct {
	c   *http.Client
	loc *time.Location
	l   lw.Logger
}

// New returns a new Loader
func New(c Config) *Loader {
	l := Loader{
		c:   c.Client,
		loc: c.Location,
		l:   c.Logger,
	}
	if l.c == nil {
		l.c = &http.Client{Timeout: defaultTimeout}
	}
	if l.l == nil {
		l.l = lw.Dev(lw.SetOutput(os.Stderr))
	}
	return &l
}

// Load fetches the document at url and parses it.
func (l *Loader) Load(ctx context.Context, url string) (Events, error) {
	l.l.WithContext(lw.Ctx{"url": url}).Debugf("Loading schedule")
	raw, err := fetch(ctx, l.c, url)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}
	events, err := Parse(bytes.NewReader(raw), l.loc)
	if err != nil {
		return nil, err
	}
	l.l.WithContext(lw.Ctx{"url": url, "count": len(events)}).Debugf("Loaded schedule")
	return events, nil
}

// GetSchedule loads the schedule at url. Any failure is logged and
// reported only as false, with no events.
func (l *Loader) GetSchedule(ctx context.Context, url string) (bool, Events) {
	events, err := l.Load(ctx, url)
	if err != nil {
		l.l.WithContext(diagnostic(url, err)).Errorf("Unable to load schedule: %s", err)
		return false, nil
	}
	return true, events
}

// GetSchedule loads the schedule at url with the default Loader.
func GetSchedule(url string) (bool, Events) {
	return New(Config{}).GetSchedule(context.Background(), url)
}

func diagnostic(url string, err error) lw.Ctx {
	ctx := lw.Ctx{"url": url}
	if e, ok := err.(*Error); ok {
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
