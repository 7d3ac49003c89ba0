package feeds

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-ap/errors"
)

const LabelCongress = "congress"
const LabelFOSDEM = "fosdem"
const LabelFrOSCon = "froscon"
const LabelCamp = "camp"

var ValidTypes = [...]string{
	LabelCongress,
	LabelFOSDEM,
	LabelFrOSCon,
	LabelCamp,
}

var baseURIs = map[string]string{
	LabelCongress: "https://fahrplan.events.ccc.de",
	LabelFOSDEM:   "https://fosdem.org",
	LabelFrOSCon:  "https://programm.froscon.org",
	LabelCamp:     "https://events.ccc.de",
}

// schedulePath holds a path template, %d is replaced by the year
var schedulePath = map[string]string{
	LabelCongress: "/congress/%d/fahrplan/schedule.xml",
	LabelFOSDEM:   "/%d/schedule/xml",
	LabelFrOSCon:  "/%d/schedule.xml",
	LabelCamp:     "/camp/%d/fahrplan/schedule.xml",
}

// Labels are human readable names of the known feeds.
var Labels = map[string]string{
	LabelCongress: "Chaos Communication Congress",
	LabelFOSDEM:   "FOSDEM",
	LabelFrOSCon:  "FrOSCon",
	LabelCamp:     "Chaos Communication Camp",
}

func ValidType(typ string) bool {
	for _, t := range ValidTypes {
		if strings.ToLower(typ) == t {
			return true
		}
	}
	return false
}

// GetScheduleURL returns the schedule document URL of feed typ for the
// edition held in year. A zero year means the current one.
func GetScheduleURL(typ string, year int) (*url.URL, error) {
	typ = strings.ToLower(typ)
	if !ValidType(typ) {
		return nil, errors.NotFoundf("unknown feed %s", typ)
	}
	base, ok := baseURIs[typ]
	if !ok {
		return nil, fmt.Errorf("unknown base URI for feed: %s", typ)
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("unable to parse base URI: %w", err)
	}
	path, ok := schedulePath[typ]
	if !ok {
		return nil, fmt.Errorf("unknown schedule path for feed: %s", typ)
	}
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 1970 || year > 9999 {
		return nil, errors.NotValidf("invalid year %s", strconv.Itoa(year))
	}
	u.Path = fmt.Sprintf(path, year)
	return u, nil
}
