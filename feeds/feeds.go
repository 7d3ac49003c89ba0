// Package feeds knows where the schedules of some recurring conferences
// are published.
package feeds

import (
	"net/url"
	"strings"

	"github.com/go-ap/errors"
)

var DefaultFeeds = []string{LabelCongress, LabelFOSDEM}

func inStringList(s string, list []string) bool {
	for _, lss := range list {
		if lss == s {
			return true
		}
	}
	return false
}

// GetTypes returns the valid, deduplicated labels out of strs, or all of
// the known ones if strs is empty.
func GetTypes(strs []string) []string {
	types := make([]string, 0)
	if len(strs) == 0 {
		return append(types, ValidTypes[:]...)
	}
	for _, typ := range strs {
		typ = strings.ToLower(typ)
		if !ValidType(typ) || inStringList(typ, types) {
			continue
		}
		types = append(types, typ)
	}
	return types
}

// Resolve turns s into a schedule URL: s is either an absolute URL, used
// as is, or a feed label.
func Resolve(s string, year int) (*url.URL, error) {
	if u, err := url.ParseRequestURI(s); err == nil && u.IsAbs() && u.Host != "" {
		return u, nil
	}
	if ValidType(s) {
		return GetScheduleURL(s, year)
	}
	return nil, errors.NotFoundf("%q is neither a URL nor a known feed", s)
}
