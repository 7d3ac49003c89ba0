package browse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"git.sr.ht/~mariusor/fahrplan/schedule"
)

const dayFmt = "Mon 02"

type model struct {
	title   string
	events  schedule.Events
	table   table.Model
	details bool
}

func columns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Day", Width: 6},
		{Title: "Time", Width: 11},
		{Title: "Room", Width: 16},
		{Title: "Title", Width: 48},
		{Title: "Lang", Width: 4},
	}
}

func rows(events schedule.Events, loc *time.Location) []table.Row {
	if loc == nil {
		loc = time.UTC
	}
	rr := make([]table.Row, 0, len(events))
	for i, ev := range events {
		rr = append(rr, table.Row{
			strconv.Itoa(i + 1),
			ev.Start.In(loc).Format(dayFmt),
			fmt.Sprintf("%s-%s", ev.StartStr, ev.EndStr),
			ev.Place,
			ev.Title,
			ev.Lang,
		})
	}
	return rr
}

// New returns the model listing events, with days computed in loc.
func New(title string, events schedule.Events, loc *time.Location) tea.Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithRows(rows(events, loc)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	return model{title: title, events: events, table: t}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) selected() (schedule.Event, bool) {
	if len(m.events) == 0 {
		return schedule.Event{}, false
	}
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return schedule.Event{}, false
	}
	i, err := strconv.Atoi(row[0])
	if err != nil || i < 1 || i > len(m.events) {
		return schedule.Event{}, false
	}
	return m.events[i-1], true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if !m.details {
				return m, tea.Quit
			}
			m.details = false
			return m, nil
		case tea.KeyEnter:
			m.details = !m.details
			return m, nil
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}

	if m.details {
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	s := strings.Builder{}
	s.WriteString(m.title)
	s.WriteString("\n\n")
	if ev, ok := m.selected(); ok && m.details {
		s.WriteString(detail(ev))
		s.WriteString("\n\nenter/esc: back")
	} else {
		s.WriteString(m.table.View())
		s.WriteString("\n\nenter: details, q: quit")
	}
	s.WriteString("\n")
	return s.String()
}

func detail(ev schedule.Event) string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s\n", ev.Title)
	fmt.Fprintf(&s, "%s %s-%s", ev.Start.Format("2006-01-02"), ev.StartStr, ev.EndStr)
	if ev.Place != "" {
		fmt.Fprintf(&s, " @%s", ev.Place)
	}
	s.WriteString("\n")
	if len(ev.Speakers) > 0 {
		fmt.Fprintf(&s, "%s\n", strings.Join(ev.Speakers, ", "))
	}
	if ev.Track != "" {
		fmt.Fprintf(&s, "Track: %s\n", ev.Track)
	}
	if ev.Abstract != "" {
		fmt.Fprintf(&s, "\n%s\n", ev.Abstract)
	}
	for _, l := range ev.Links {
		fmt.Fprintf(&s, "\n%s", l)
	}
	return strings.TrimRight(s.String(), "\n")
}

// Run opens the browser over events and blocks until it's closed.
func Run(title string, events schedule.Events, loc *time.Location) error {
	_, err := tea.NewProgram(New(title, events, loc)).Run()
	return err
}
