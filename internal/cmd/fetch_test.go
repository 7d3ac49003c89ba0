package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.sr.ht/~mariusor/lw"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/fahrplan/schedule"
)

const testSchedule = `<schedule><day><room>
<event id="1"><date>2024-12-27T11:00:00+01:00</date><duration>00:30</duration><title>A</title></event>
</room></day></schedule>`

func runCommand(t *testing.T, cmd cli.Command, args ...string) error {
	t.Helper()
	app := cli.NewApp()
	app.Name = AppName
	app.Flags = []cli.Flag{&cli.BoolFlag{Name: "debug"}}
	app.Commands = []cli.Command{cmd}
	return app.Run(append([]string{AppName, cmd.Name}, args...))
}

func TestSources(t *testing.T) {
	var got []source
	cmd := cli.Command{
		Name:  "test",
		Flags: FetchCmd.Flags,
		Action: func(c *cli.Context) error {
			var err error
			got, err = sources(c)
			return err
		},
	}

	if err := runCommand(t, cmd, "--url", "https://example.com/a.xml,https://example.com/b.xml", "--feed", "fosdem", "--year", "2020"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"https://example.com/a.xml", "https://example.com/b.xml", "https://fosdem.org/2020/schedule/xml"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sources, got %v", len(want), got)
	}
	for i, u := range want {
		if got[i].url != u {
			t.Errorf("source %d: expected %s, got %s", i, u, got[i].url)
		}
	}

	if err := runCommand(t, cmd); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 2 || got[0].name != "congress" || got[1].name != "fosdem" {
		t.Errorf("expected the default feeds, got %v", got)
	}

	if err := runCommand(t, cmd, "--feed", "pycon"); err == nil {
		t.Errorf("expected error for unknown feed")
	}
}

func TestLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.xml" {
			w.Write([]byte(testSchedule))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	srcs := []source{
		{name: "ok", url: srv.URL + "/ok.xml"},
		{name: "missing", url: srv.URL + "/missing.xml"},
		{name: "ok again", url: srv.URL + "/ok.xml"},
	}
	l := schedule.New(schedule.Config{Logger: lw.Nil()})
	res := loadAll(context.Background(), l, srcs)
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	if res[0].err != nil || len(res[0].events) != 1 {
		t.Errorf("expected first schedule to load, got %v %v", res[0].events, res[0].err)
	}
	e, ok := res[1].err.(*schedule.Error)
	if !ok || e.Stage != schedule.StageFetch {
		t.Errorf("expected fetch error for the missing schedule, got %v", res[1].err)
	}
	if res[2].err != nil || len(res[2].events) != 1 {
		t.Errorf("expected a failure not to affect other schedules, got %v", res[2].err)
	}
}

func TestFetchSchedules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.xml" {
			w.Write([]byte(testSchedule))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if err := runCommand(t, FetchCmd, "--url", srv.URL+"/ok.xml", "--format", "json"); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if err := runCommand(t, FetchCmd, "--url", srv.URL+"/ok.xml", "--url", srv.URL+"/missing.xml"); err == nil {
		t.Errorf("expected error when one of the schedules fails")
	}
	if err := runCommand(t, FetchCmd, "--url", srv.URL+"/ok.xml", "--format", "yaml"); err == nil {
		t.Errorf("expected error for unknown format")
	}
	if err := runCommand(t, FetchCmd, "--url", srv.URL+"/ok.xml", "--timezone", "Mars/Olympus"); err == nil {
		t.Errorf("expected error for invalid timezone")
	}
}
