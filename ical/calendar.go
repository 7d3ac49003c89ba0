package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/soh335/ical"

	"git.sr.ht/~mariusor/fahrplan/schedule"
)

// Calendar builds the iCalendar representation of events published as feed.
func Calendar(feed, label, version string, events schedule.Events) *ical.VCalendar {
	cal := ical.NewBasicVCalendar()
	cal.PRODID = "-//mariusor//FAHRPLAN//EN"
	if version != "" {
		cal.PRODID = fmt.Sprintf("%s/%s", cal.PRODID, version)
	}
	cal.VERSION = "2.0"

	name := "Fahrplan"
	desc := name
	if label != "" {
		name = fmt.Sprintf("Fahrplan %s", label)
		desc = fmt.Sprintf("Fahrplan, talks for %s", label)
	}
	cal.NAME = name
	cal.X_WR_CALNAME = name
	cal.DESCRIPTION = desc
	cal.X_WR_CALDESC = desc

	tz := time.UTC.String()
	cal.TIMEZONE_ID = tz
	cal.X_WR_TIMEZONE = tz

	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"
	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	stamp := time.Now().UTC()
	for _, ev := range events {
		cal.VComponent = append(cal.VComponent, &ical.VEvent{
			UID:         fmt.Sprintf("%s@%s", ev.ID, feed),
			DTSTAMP:     stamp,
			DTSTART:     ev.Start,
			DTEND:       ev.End(),
			SUMMARY:     summary(ev),
			DESCRIPTION: description(ev),
			TZID:        tz,
		})
	}
	return cal
}

func summary(ev schedule.Event) string {
	if ev.Place == "" {
		return ev.Title
	}
	return fmt.Sprintf("[%s] %s", ev.Place, ev.Title)
}

func description(ev schedule.Event) string {
	s := strings.Builder{}
	if len(ev.Speakers) > 0 {
		s.WriteString(strings.Join(ev.Speakers, ", "))
		s.WriteString("\n\n")
	}
	if ev.Abstract != "" {
		s.WriteString(ev.Abstract)
		s.WriteString("\n\n")
	}
	for _, l := range ev.Links {
		s.WriteString(l)
		s.WriteString("\n")
	}
	return strings.TrimSpace(s.String())
}
