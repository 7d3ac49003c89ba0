package ical

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/go-ap/errors"
	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/fahrplan/feeds"
	"git.sr.ht/~mariusor/fahrplan/internal/config"
	"git.sr.ht/~mariusor/fahrplan/internal/metrics"
	"git.sr.ht/~mariusor/fahrplan/schedule"
)

const (
	extICal = ".ics"
	extJSON = ".json"
)

// Handler serves freshly fetched schedules. Nothing is kept between
// requests.
type Handler struct {
	Version string

	conf atomic.Pointer[settings]
	m    *metrics.Metrics
	l    lw.Logger
}

type settings struct {
	*config.Config
	client *http.Client
}

func NewHandler(conf *config.Config, m *metrics.Metrics, l lw.Logger) *Handler {
	if l == nil {
		l = lw.Nil()
	}
	h := Handler{Version: "(unknown)", m: m, l: l}
	h.Reload(conf)
	return &h
}

// Reload replaces the configuration for the requests that follow.
func (h *Handler) Reload(conf *config.Config) {
	if conf == nil {
		conf = config.Default()
	}
	h.conf.Store(&settings{Config: conf, client: &http.Client{Timeout: conf.Timeout}})
}

type source struct {
	name  string
	label string
	url   string
	loc   *time.Location
}

// resolve finds the schedule published as name, first among the configured
// feeds and then in the registry of known conferences.
func (h *Handler) resolve(conf *settings, name string, year int) (source, error) {
	if f, ok := conf.Feed(name); ok {
		loc, err := location(f.Timezone)
		if err != nil {
			return source{}, err
		}
		return source{name: f.Name, label: f.Name, url: f.URL, loc: loc}, nil
	}
	if !feeds.ValidType(name) {
		return source{}, errors.NotFoundf("feed %q", name)
	}
	u, err := feeds.GetScheduleURL(name, year)
	if err != nil {
		return source{}, err
	}
	loc, err := location(conf.Timezone)
	if err != nil {
		return source{}, err
	}
	return source{name: name, label: feeds.Labels[name], url: u.String(), loc: loc}, nil
}

func location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, nil
	}
	return time.LoadLocation(tz)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	name := strings.ToLower(strings.TrimSuffix(file, ext))
	if (ext != extICal && ext != extJSON) || name == "" {
		h.error(w, http.StatusNotFound, errors.NotFoundf("%s", r.URL.Path))
		return
	}

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		var err error
		if year, err = strconv.Atoi(y); err != nil {
			h.error(w, http.StatusBadRequest, errors.NotValidf("year %q", y))
			return
		}
	}

	conf := h.conf.Load()
	src, err := h.resolve(conf, name, year)
	if err != nil {
		status := http.StatusBadRequest
		if errors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		h.error(w, status, err)
		return
	}

	lctx := lw.Ctx{"feed": src.name, "url": src.url}
	loader := schedule.New(schedule.Config{Client: conf.client, Location: src.loc, Logger: h.l})

	start := time.Now()
	events, err := loader.Load(r.Context(), src.url)
	outcome := "ok"
	if err != nil {
		outcome = "unknown"
		if e, ok := err.(*schedule.Error); ok {
			outcome = string(e.Stage)
		}
	}
	h.m.Observe(src.name, outcome, time.Since(start), len(events))
	if err != nil {
		h.l.WithContext(lctx, lw.Ctx{"stage": outcome}).Errorf("Unable to load schedule: %s", err)
		h.error(w, http.StatusBadGateway, errors.Annotatef(err, "unable to load schedule %s", src.name))
		return
	}
	h.l.WithContext(lctx, lw.Ctx{"count": len(events)}).Debugf("Serving schedule")

	b := bytes.Buffer{}
	switch ext {
	case extICal:
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		err = Calendar(src.name, src.label, h.Version, events).Encode(&b)
	case extJSON:
		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(&b).Encode(events)
	}
	if err != nil {
		h.error(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b.Bytes())
}

func (h *Handler) error(w http.ResponseWriter, status int, err error) {
	h.l.WithContext(lw.Ctx{"status": status}).Debugf("%s", err)
	http.Error(w, err.Error(), status)
}
