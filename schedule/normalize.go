package schedule

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-ap/errors"
)

const displayFmt = "15:04"

// maxMinutes is the longest duration, in minutes, a time.Duration can hold.
const maxMinutes = math.MaxInt64 / int64(time.Minute)

// layouts carrying an explicit UTC offset
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
}

// layouts without offset, only accepted with a fallback location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Normalize converts one raw event into an Event. Offset-less start times
// are read in loc, and are an error when loc is nil.
func Normalize(raw RawEvent, loc *time.Location) (Event, error) {
	if !raw.ID.Valid {
		return Event{}, fieldErr("", "id", errors.NotValidf("missing event id"))
	}
	id := raw.ID.Value

	if raw.Date.Empty() {
		return Event{}, fieldErr(id, "date", errors.NotValidf("missing start date"))
	}
	start, err := parseStart(raw.Date.Trimmed(), loc)
	if err != nil {
		return Event{}, fieldErr(id, "date", err)
	}

	if raw.Duration.Empty() {
		return Event{}, fieldErr(id, "duration", errors.NotValidf("missing duration"))
	}
	dur, err := parseDuration(raw.Duration.Value)
	if err != nil {
		return Event{}, fieldErr(id, "duration", err)
	}
	end := start.Add(dur)

	speakers := make([]string, 0)
	if raw.Persons != nil {
		for _, p := range raw.Persons.Person {
			speakers = append(speakers, p.Trimmed())
		}
	}

	return Event{
		ID:              id,
		Title:           raw.Title.Or(""),
		Place:           raw.Room.Or(""),
		Lang:            raw.Language.Or(LangUnknown),
		Speakers:        speakers,
		Type:            TypeTalk,
		Start:           start.UTC(),
		StartStr:        start.Format(displayFmt),
		EndStr:          end.Format(displayFmt),
		StartUnix:       start.Unix(),
		EndUnix:         end.Unix(),
		DurationMinutes: int(dur / time.Minute),
		Track:           raw.Track.Or(""),
		Abstract:        plainText(raw.Abstract.Or(raw.Description.Or(""))),
		Links:           links(raw),
	}, nil
}

func parseStart(s string, loc *time.Location) (time.Time, error) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	for _, l := range localLayouts {
		t, err := time.ParseInLocation(l, s, time.UTC)
		if err != nil {
			continue
		}
		if loc == nil {
			return time.Time{}, errors.NotValidf("start date %q has no timezone offset", s)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
	}
	return time.Time{}, errors.NotValidf("unable to parse start date %q", s)
}

// parseDuration reads "H:MM" or "HH:MM".
func parseDuration(s string) (time.Duration, error) {
	pieces := strings.Split(strings.TrimSpace(s), ":")
	if len(pieces) != 2 {
		return 0, errors.NotValidf("duration %q is not in H:MM format", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(pieces[0]))
	if err != nil {
		return 0, errors.Annotatef(err, "invalid hours in duration %q", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(pieces[1]))
	if err != nil {
		return 0, errors.Annotatef(err, "invalid minutes in duration %q", s)
	}
	if h < 0 || m < 0 {
		return 0, errors.NotValidf("negative duration %q", s)
	}
	if int64(m) > maxMinutes || int64(h) > (maxMinutes-int64(m))/60 {
		return 0, errors.NotValidf("duration %q is too long", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// plainText strips any markup from s and drops blank lines.
func plainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		s = doc.Text()
	}
	lines := strings.Split(s, "\n")
	newLines := make([]string, 0)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			newLines = append(newLines, line)
		}
	}
	return strings.Join(newLines, "\n")
}

func links(raw RawEvent) []string {
	var all []string
	add := func(t Text) {
		l := t.Trimmed()
		if l == "" {
			return
		}
		for _, ex := range all {
			if ex == l {
				return
			}
		}
		all = append(all, l)
	}
	add(raw.URL)
	if raw.Links != nil {
		for _, l := range raw.Links.Link {
			add(l.Href)
		}
	}
	return all
}
