package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-ap/errors"
)

// fetch loads the raw schedule document found at u.
func fetch(ctx context.Context, cl *http.Client, u string) ([]byte, error) {
	if u == "" {
		return nil, errors.Newf("empty URL received")
	}
	if _, err := url.ParseRequestURI(u); err != nil {
		return nil, errors.Annotatef(err, "invalid URL %s", u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", userAgent)

	res, err := cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}
	raw := bytes.Buffer{}
	if _, err = raw.ReadFrom(res.Body); err != nil {
		return nil, errors.Annotatef(err, "unable to read body")
	}
	return raw.Bytes(), nil
}
