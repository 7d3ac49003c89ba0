package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/urfave/cli"
)

const (
	AppName    = "fahrplan"
	AppVersion = "(unknown)"
)

const defaultTimeout = 30 * time.Second

// ConfigPath is the default location of the server configuration, in the
// XDG config folder.
func ConfigPath() string {
	xdgConfigPath, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		xdgConfigPath = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(xdgConfigPath, AppName, "config.yaml")
}

var info = func(s string, args ...interface{}) {
	fmt.Printf(s+"\n", args...)
}

var errFn = func(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
}

func logger(c *cli.Context) lw.Logger {
	if c.Bool("debug") || c.GlobalBool("debug") {
		return lw.Dev(lw.SetOutput(os.Stderr), lw.SetLevel(lw.DebugLevel))
	}
	return lw.Dev(lw.SetOutput(os.Stderr))
}

// location loads the timezone named tz, nil when tz is empty.
func location(tz string) (*time.Location, error) {
	if tz = strings.TrimSpace(tz); tz == "" {
		return nil, nil
	}
	return time.LoadLocation(tz)
}

// stringSliceValues returns the values of the flag p from the closest
// context that sets it, with comma separated values split.
func stringSliceValues(c *cli.Context, p string) []string {
	values := make([]string, 0)
	for ; c != nil; c = c.Parent() {
		if !c.IsSet(p) {
			continue
		}
		for _, v := range c.StringSlice(p) {
			for _, vv := range strings.Split(v, ",") {
				if vv = strings.TrimSpace(vv); vv != "" {
					values = append(values, vv)
				}
			}
		}
		break
	}
	return values
}

var timezoneFlag = &cli.StringFlag{
	Name:   "timezone",
	Usage:  "Timezone for start times that carry no UTC offset, e.g. Europe/Berlin",
	EnvVar: "FAHRPLAN_TIMEZONE",
}

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Usage: "Time limit for fetching one schedule",
	Value: defaultTimeout,
}

var yearFlag = &cli.IntFlag{
	Name:  "year",
	Usage: "The edition of the known conferences to load, defaults to the current year",
}
