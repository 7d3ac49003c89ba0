package post

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-ap/errors"

	"git.sr.ht/~mariusor/fahrplan/ical"
	"git.sr.ht/~mariusor/fahrplan/schedule"
)

const dateFmt = "2006-01-02 Mon"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatICal = "ical"
)

var Formats = []string{FormatText, FormatJSON, FormatICal}

// GroupByDay splits events into the calendar days of loc they start on.
// The days are returned in order, the events keep their order.
func GroupByDay(events schedule.Events, loc *time.Location) ([]time.Time, map[time.Time]schedule.Events) {
	if loc == nil {
		loc = time.UTC
	}
	days := make([]time.Time, 0)
	groups := make(map[time.Time]schedule.Events)
	for _, ev := range events {
		st := ev.Start.In(loc)
		day := time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, loc)
		if _, ok := groups[day]; !ok {
			days = append(days, day)
		}
		groups[day] = append(groups[day], ev)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, groups
}

// ToText writes a human readable listing of events, one block per day.
func ToText(w io.Writer, events schedule.Events, loc *time.Location) error {
	days, groups := GroupByDay(events, loc)
	for i, day := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", day.Format(dateFmt))
		for _, ev := range groups[day] {
			line := fmt.Sprintf("  %s-%s  %s", ev.StartStr, ev.EndStr, ev.Title)
			if ev.Place != "" {
				line += fmt.Sprintf(" @%s", ev.Place)
			}
			if len(ev.Speakers) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(ev.Speakers, ", "))
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func ToJSON(w io.Writer, events schedule.Events) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

func ToICal(w io.Writer, name string, events schedule.Events, version string) error {
	return ical.Calendar(name, "", version, events).Encode(w)
}

// Write renders events in format.
func Write(w io.Writer, format string, name string, events schedule.Events, loc *time.Location) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return ToText(w, events, loc)
	case FormatJSON:
		return ToJSON(w, events)
	case FormatICal:
		return ToICal(w, name, events, "")
	}
	return errors.NotValidf("unknown output format %q, expected one of %s", format, strings.Join(Formats, ", "))
}
