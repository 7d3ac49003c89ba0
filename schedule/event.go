package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TypeTalk is the only event type a frab feed produces.
const TypeTalk = "talk"

// LangUnknown replaces a missing or empty <language>.
const LangUnknown = "unk"

// Event is one normalized talk. It is built once by Normalize and handed
// out by value.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Place           string    `json:"place"`
	Lang            string    `json:"lang"`
	Speakers        []string  `json:"speakers"`
	Type            string    `json:"type"`
	Start           time.Time `json:"start"`
	StartStr        string    `json:"start_str"`
	EndStr          string    `json:"end_str"`
	StartUnix       int64     `json:"start_unix"`
	EndUnix         int64     `json:"end_unix"`
	DurationMinutes int       `json:"duration"`
	Track           string    `json:"track,omitempty"`
	Abstract        string    `json:"abstract,omitempty"`
	Links           []string  `json:"links,omitempty"`
}

type Events []Event

// Duration of the event.
func (e Event) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// End is the UTC end instant.
func (e Event) End() time.Time {
	return time.Unix(e.EndUnix, 0).UTC()
}

func (e Event) String() string {
	return e.GoString()
}

func (e Event) GoString() string {
	f := "<[%s] %s-%s"
	args := []interface{}{e.ID, e.StartStr, e.EndStr}
	if len(e.Place) > 0 {
		f += " @%s"
		args = append(args, e.Place)
	}
	f += " (%s) %q"
	args = append(args, e.Lang, e.Title)
	if len(e.Speakers) > 0 {
		f += " by %s"
		args = append(args, strings.Join(e.Speakers, ", "))
	}
	return fmt.Sprintf(f+">", args...)
}

func (e Events) String() string {
	return e.GoString()
}

func (e Events) GoString() string {
	ss := make([]string, len(e))
	for i, ev := range e {
		ss[i] = ev.GoString()
	}
	return fmt.Sprintf("Events[%d]:\n\t%s\n", len(e), strings.Join(ss, "\n\t"))
}

// Sort orders the events by their start, keeping the document order of
// events that start at the same second.
func (e Events) Sort() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].StartUnix < e[j].StartUnix
	})
}
