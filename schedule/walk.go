package schedule

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/go-ap/errors"
	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

const (
	tagSchedule = "schedule"
	tagDay      = "day"
	tagRoom     = "room"
	tagEvent    = "event"
)

// RawEvent is one <event> element as found in the feed, before any
// conversion took place.
type RawEvent struct {
	ID          Text     `xml:"id,attr"`
	Date        Text     `xml:"date"`
	Duration    Text     `xml:"duration"`
	Title       Text     `xml:"title"`
	Room        Text     `xml:"room"`
	Language    Text     `xml:"language"`
	Track       Text     `xml:"track"`
	Abstract    Text     `xml:"abstract"`
	Description Text     `xml:"description"`
	URL         Text     `xml:"url"`
	Persons     *Persons `xml:"persons"`
	Links       *Links   `xml:"links"`
}

type Persons struct {
	Person []Text `xml:"person"`
}

type Links struct {
	Link []Link `xml:"link"`
}

type Link struct {
	Href Text `xml:"href,attr"`
}

// Walk streams the schedule document from r and calls fn for every event
// found under schedule/day/room, in document order. The day and room
// grouping is not passed along. An error returned by fn stops the walk and
// is returned as is.
func Walk(r io.Reader, fn func(RawEvent) error) error {
	p := xpp.NewXMLPullParser(r, true, charset.NewReaderLabel)

	if err := findRoot(p); err != nil {
		return err
	}
	if p.Name != tagSchedule {
		return stageErr(StageWalk, errors.NotValidf("root element %q, expected %q", p.Name, tagSchedule))
	}

	err := eachChild(p, tagDay, func() error {
		return eachChild(p, tagRoom, func() error {
			return eachChild(p, tagEvent, func() error {
				ev := RawEvent{}
				if err := p.DecodeElement(&ev); err != nil {
					return xmlErr(err)
				}
				return fn(ev)
			})
		})
	})
	if err != nil {
		return err
	}
	return findEnd(p)
}

// findEnd reads what follows the root element, only white space, comments
// and processing instructions are allowed before the end of the document.
func findEnd(p *xpp.XMLPullParser) error {
	for {
		tok, err := p.Next()
		if err != nil {
			return xmlErr(err)
		}
		switch tok {
		case xpp.EndDocument:
			return nil
		case xpp.StartTag, xpp.EndTag:
			return stageErr(StageParse, errors.Newf("unexpected element %q after the root element", p.Name))
		case xpp.Text:
			if strings.TrimSpace(p.Text) != "" {
				return stageErr(StageParse, errors.Newf("unexpected text after the root element"))
			}
		}
	}
}

func findRoot(p *xpp.XMLPullParser) error {
	for {
		tok, err := p.Next()
		if err != nil {
			return xmlErr(err)
		}
		switch tok {
		case xpp.StartTag:
			return nil
		case xpp.EndDocument:
			return stageErr(StageParse, errors.Newf("no root element found"))
		}
	}
}

func nextTag(p *xpp.XMLPullParser) (xpp.XMLEventType, error) {
	for {
		tok, err := p.Next()
		if err != nil {
			return tok, xmlErr(err)
		}
		switch tok {
		case xpp.StartTag, xpp.EndTag:
			return tok, nil
		case xpp.EndDocument:
			return tok, stageErr(StageParse, errors.Newf("unexpected end of document"))
		}
	}
}

// eachChild calls fn for each child of the current element that is named
// name, skipping over all other children. It returns once the end tag of the
// current element has been consumed. fn must consume the child it is called
// for, up to and including its end tag.
func eachChild(p *xpp.XMLPullParser, name string, fn func() error) error {
	for {
		tok, err := nextTag(p)
		if err != nil {
			return err
		}
		if tok == xpp.EndTag {
			return nil
		}
		if p.Name != name {
			if err := p.Skip(); err != nil {
				return xmlErr(err)
			}
			continue
		}
		if err := fn(); err != nil {
			return err
		}
	}
}

func xmlErr(err error) error {
	switch err.(type) {
	case *Error:
		return err
	case *xml.SyntaxError:
		return stageErr(StageParse, err)
	}
	return stageErr(StageParse, errors.Annotatef(err, "unable to read schedule document"))
}
