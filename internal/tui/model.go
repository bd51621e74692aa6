// Package tui is the interactive dashboard: today's goals and bonus actions
// with live XP/life/streak readouts, dispatching into the store on keypress.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

// entry is one selectable row: a goal or a catalog action.
type entry struct {
	goalKey   string
	actionKey string
	label     string
}

type dashboardModel struct {
	store *engine.Store

	width  int
	height int

	selected int
	lastLog  string
}

// NewProgram builds the dashboard tea.Program.
func NewProgram(store *engine.Store) *tea.Program {
	return tea.NewProgram(newDashboardModel(store), tea.WithAltScreen())
}

func newDashboardModel(store *engine.Store) dashboardModel {
	return dashboardModel{store: store, lastLog: "Ready."}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

type tickMsg time.Time

// tickCmd refreshes once a minute so a day rollover mid-session is picked up
// without a keypress.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m dashboardModel) entries() []entry {
	st := m.store.State()
	var out []entry
	for _, key := range sortedGoalKeys(st.Goals) {
		if st.Goals[key] <= 0 {
			continue
		}
		out = append(out, entry{goalKey: key, label: fmt.Sprintf("%s (target %g)", key, st.Goals[key])})
	}
	for _, group := range engine.GroupedByCategory() {
		for _, a := range group.Actions {
			out = append(out, entry{actionKey: a.Key, label: fmt.Sprintf("%s (+%d XP, %s)", a.Label, a.XP, a.Category)})
		}
	}
	return out
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.store.Dispatch(engine.Refresh{})
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.store.Dispatch(engine.Refresh{})
			m.lastLog = "Refreshed."
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.entries())-1 {
				m.selected++
			}
			return m, nil
		case "s":
			res := m.store.Dispatch(engine.Skip{})
			m.lastLog = skipLog(res)
			return m, nil
		case "enter", " ", "c":
			entries := m.entries()
			if m.selected < 0 || m.selected >= len(entries) {
				return m, nil
			}
			e := entries[m.selected]
			var res *engine.Result
			if e.goalKey != "" {
				res = m.store.Dispatch(engine.GoalComplete{Key: e.goalKey})
			} else {
				res = m.store.Dispatch(engine.DoAction{Key: e.actionKey})
			}
			m.lastLog = completeLog(e.label, res)
			return m, nil
		}
	}
	return m, nil
}

func skipLog(res *engine.Result) string {
	if res == nil {
		return "Nothing to skip."
	}
	if res.Failed() {
		return "Skip declined: " + string(res.Err)
	}
	return "Day skipped — streak protected."
}

func completeLog(label string, res *engine.Result) string {
	if res == nil {
		return "Nothing to do."
	}
	if res.Failed() {
		return "Declined: " + string(res.Err)
	}
	log := fmt.Sprintf("%s: +%d XP", label, res.XPGained)
	if len(res.LevelUps) > 0 {
		log += " " + ui.BadgeLevelUp
	}
	for _, a := range res.AchievementsEarned {
		log += fmt.Sprintf(" %s %s (+%d XP)", ui.IconTrophy, a.Title, a.XP)
	}
	return log
}

func (m dashboardModel) View() string {
	st := m.store.State()
	now := m.store.Now()

	header := m.renderHeader(st, now)
	body := m.renderBody(st)
	footer := "\n" + ui.Muted.Render("j/k move · enter complete · s skip · r refresh · q quit") + "\n" + m.lastLog

	return header + "\n\n" + body + footer
}

func (m dashboardModel) renderHeader(st *engine.State, now time.Time) string {
	level := st.Progress.Level
	xpBar := ui.Bar(st.Progress.XP, engine.XPNeeded(level), 24)
	lifeMax := engine.LifeForLevel(level)
	streak := engine.MissionStreak(st, now)

	parts := []string{
		ui.Heading(ui.IconSparkle, "LevelUp — "+st.User.Name),
		fmt.Sprintf("%s %d  XP %d/%d %s", ui.Key.Render("Level"), level, st.Progress.XP, engine.XPNeeded(level), xpBar),
		fmt.Sprintf("%s %s  %s %d  %s %d days", ui.IconHeart, ui.LifeText(st.Life.Current, lifeMax), ui.IconToken, st.Tokens, ui.IconFlame, streak),
	}
	if st.Defeated() {
		parts = append(parts, ui.BadgeDead+" "+ui.Muted.Render("run `levelup revive` to start over"))
	}
	return strings.Join(parts, "\n")
}

func (m dashboardModel) renderBody(st *engine.State) string {
	entries := m.entries()
	if len(entries) == 0 {
		return ui.Muted.Render("(no active goals — set targets with `levelup goals set`)")
	}

	var out []string
	out = append(out, ui.H2.Render(ui.IconTarget+" Today"))
	for i, e := range entries {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if e.goalKey != "" && st.Daily.GoalsDone[e.goalKey] {
			mark = "[x]"
		}
		if e.actionKey != "" && st.Daily.Actions[e.actionKey] {
			mark = "[x]"
		}
		line := cursor + mark + " " + e.label
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func sortedGoalKeys(goals map[string]float64) []string {
	keys := make([]string, 0, len(goals))
	for k := range goals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
