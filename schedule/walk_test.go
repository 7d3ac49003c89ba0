package schedule_test

import (
	"errors"
	"strings"
	"testing"

	"git.sr.ht/~mariusor/fahrplan/schedule"
)

func walkIDs(t *testing.T, doc string) ([]string, error) {
	t.Helper()
	ids := make([]string, 0)
	err := schedule.Walk(strings.NewReader(doc), func(raw schedule.RawEvent) error {
		ids = append(ids, raw.ID.Value)
		return nil
	})
	return ids, err
}

func TestWalkDocumentOrder(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<schedule>
  <version>1.0</version>
  <conference><title>Test</title></conference>
  <day index="1" date="2024-05-01">
    <room name="A">
      <event id="1"><title>one</title></event>
      <event id="2"><title>two</title></event>
    </room>
    <room name="B">
      <event id="3"><title>three</title></event>
    </room>
  </day>
  <day index="2" date="2024-05-02">
    <room name="A">
      <!-- comment -->
      <event id="4"><room>B</room></event>
    </room>
  </day>
</schedule>`
	ids, err := walkIDs(t, doc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if strings.Join(ids, ",") != "1,2,3,4" {
		t.Fatalf("expected events 1,2,3,4 got %v", ids)
	}
}

func TestWalkSkipsForeignElements(t *testing.T) {
	doc := `<schedule>
  <event id="top"/>
  <day>
    <event id="in-day"/>
    <room>
      <slot><event id="nested"/></slot>
      <event id="ok"/>
    </room>
  </day>
</schedule>`
	ids, err := walkIDs(t, doc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(ids) != 1 || ids[0] != "ok" {
		t.Fatalf("expected only the event inside a room, got %v", ids)
	}
}

func TestWalkEmpty(t *testing.T) {
	docs := map[string]string{
		"no days":      `<schedule><version>1</version></schedule>`,
		"no rooms":     `<schedule><day date="2024-05-01"></day></schedule>`,
		"self closing": `<schedule/>`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			ids, err := walkIDs(t, doc)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(ids) != 0 {
				t.Fatalf("expected no events, got %v", ids)
			}
		})
	}
}

func TestWalkErrors(t *testing.T) {
	tests := map[string]struct {
		doc   string
		stage schedule.Stage
	}{
		"wrong root":    {`<feed><day/></feed>`, schedule.StageWalk},
		"empty":         {``, schedule.StageParse},
		"only prolog":   {`<?xml version="1.0"?>`, schedule.StageParse},
		"unclosed":      {`<schedule><day><room><event id="1">`, schedule.StageParse},
		"mismatched":    {`<schedule><day></room></schedule>`, schedule.StageParse},
		"not xml":       {`this is not a schedule`, schedule.StageParse},
		"broken event":  {`<schedule><day><room><event id="1"><title>x</event></room></day></schedule>`, schedule.StageParse},
		"trailing tags": {`<schedule><day><room><event id="1"/></room></day></schedule><junk><unclosed>`, schedule.StageParse},
		"second root":   {`<schedule></schedule><schedule></schedule>`, schedule.StageParse},
		"trailing text": {`<schedule></schedule>garbage`, schedule.StageParse},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := walkIDs(t, tt.doc)
			if err == nil {
				t.Fatalf("expected error")
			}
			var serr *schedule.Error
			if !errors.As(err, &serr) {
				t.Fatalf("expected *schedule.Error, got %T: %s", err, err)
			}
			if serr.Stage != tt.stage {
				t.Fatalf("expected stage %s, got %s (%s)", tt.stage, serr.Stage, err)
			}
		})
	}
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	doc := `<schedule><day><room><event id="1"/><event id="2"/></room></day></schedule>`
	stop := errors.New("stop")
	seen := 0
	err := schedule.Walk(strings.NewReader(doc), func(raw schedule.RawEvent) error {
		seen++
		return stop
	})
	if err != stop {
		t.Fatalf("expected callback error to be returned unchanged, got %v", err)
	}
	if seen != 1 {
		t.Fatalf("expected walk to stop after first event, saw %d", seen)
	}
}

func TestWalkOptionalFields(t *testing.T) {
	doc := `<schedule><day><room>
<event id="1">
  <title></title>
  <language/>
  <persons><person> Jane Doe </person><person>John</person></persons>
  <links><link href="https://example.com/a">a</link></links>
</event>
<event><date>2024-05-01T09:00:00+02:00</date></event>
</room></day></schedule>`
	raws := make([]schedule.RawEvent, 0)
	err := schedule.Walk(strings.NewReader(doc), func(raw schedule.RawEvent) error {
		raws = append(raws, raw)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 events, got %d", len(raws))
	}
	first := raws[0]
	if !first.ID.Valid || first.ID.Value != "1" {
		t.Errorf("expected id 1, got %+v", first.ID)
	}
	if !first.Title.Valid || !first.Title.Empty() {
		t.Errorf("expected present but empty title, got %+v", first.Title)
	}
	if !first.Language.Valid || !first.Language.Empty() {
		t.Errorf("expected present but empty language, got %+v", first.Language)
	}
	if first.Room.Valid {
		t.Errorf("expected missing room, got %+v", first.Room)
	}
	if first.Persons == nil || len(first.Persons.Person) != 2 {
		t.Fatalf("expected two persons, got %+v", first.Persons)
	}
	if first.Links == nil || len(first.Links.Link) != 1 || first.Links.Link[0].Href.Value != "https://example.com/a" {
		t.Errorf("expected one link, got %+v", first.Links)
	}
	second := raws[1]
	if second.ID.Valid {
		t.Errorf("expected missing id, got %+v", second.ID)
	}
	if second.Persons != nil {
		t.Errorf("expected no persons element, got %+v", second.Persons)
	}
	if second.Date.Value != "2024-05-01T09:00:00+02:00" {
		t.Errorf("unexpected date %q", second.Date.Value)
	}
}
