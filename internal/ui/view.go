package ui

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/nibzard/greenthumb/internal/plant"
	"github.com/nibzard/greenthumb/internal/reminder"
)

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.warning != "" {
		b.WriteString(warningStyle.Render(m.warning) + "\n\n")
	}

	switch m.mode {
	case modeHelp:
		m.writeHelp(&b)
		return b.String()
	case modeForm:
		b.WriteString(m.form.view() + "\n\n")
		m.writeStatusBar(&b)
		return b.String()
	}

	today := m.today()
	m.writeReminders(&b, reminder.DuePlants(m.garden.Plants(), today))
	m.writePlants(&b, today)

	if m.mode == modeConfirm {
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.confirm)) + "\n\n")
	}

	m.writeStatusBar(&b)
	b.WriteString("\n" + mutedStyle.Render(footer(m.mode)) + "\n")
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("GreenThumb") + "\n\n")
}

func (m *Model) writeReminders(b *strings.Builder, due []reminder.Reminder) {
	var body strings.Builder
	body.WriteString(sectionStyle.Render("Due today") + "\n")
	if len(due) == 0 {
		body.WriteString(mutedStyle.Render("All plants are happy."))
	} else {
		lines := make([]string, 0, len(due))
		for _, r := range due {
			lines = append(lines, fmt.Sprintf("%s %s: %s", dueStyle.Render("!"), r.Plant.Name, reminder.Describe(r.Flags)))
		}
		body.WriteString(strings.Join(lines, "\n"))
	}
	b.WriteString(panelStyle.Render(body.String()) + "\n\n")
}

func (m *Model) writePlants(b *strings.Builder, today civil.Date) {
	header := fmt.Sprintf("Plants (%d)", m.garden.Len())
	if q := m.search.Value(); q != "" || m.mode == modeSearch {
		header = fmt.Sprintf("Plants (%d of %d)", len(m.visible), m.garden.Len())
	}
	b.WriteString(sectionStyle.Render(header) + "\n")
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		if m.garden.Len() == 0 {
			b.WriteString(mutedStyle.Render("  No plants yet. Press a to add one.") + "\n\n")
		} else {
			b.WriteString(mutedStyle.Render("  No plants match.") + "\n\n")
		}
		return
	}

	width := 0
	for _, p := range m.visible {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	for i, p := range m.visible {
		b.WriteString(formatPlant(p, reminder.Evaluate(p, today), width, i == m.cursor) + "\n")
	}
	b.WriteString("\n")
}

func formatPlant(p plant.Plant, flags reminder.Flags, width int, selected bool) string {
	marker := " "
	if flags.Any() {
		marker = dueStyle.Render("!")
	}
	line := fmt.Sprintf("%-*s  every %dd/%dd  %s", width, p.Name, p.WaterIntervalDays, p.FertilizeIntervalDays, reminder.Schedule(p))
	if selected {
		return fmt.Sprintf("> %s %s", marker, selectedStyle.Render(line))
	}
	return fmt.Sprintf("  %s %s", marker, line)
}

func (m *Model) writeStatusBar(b *strings.Builder) {
	if m.status == "" {
		return
	}
	style := statusBarStyle
	if m.statusErr {
		style = statusErrStyle
	}
	b.WriteString(style.Render(m.status) + "\n")
}

func (m *Model) writeHelp(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  up/k, down/j  Move selection\n")
	b.WriteString("  /             Search by name (enter keeps filter, esc clears)\n")
	b.WriteString("  a             Add a plant\n")
	b.WriteString("  e             Edit care intervals\n")
	b.WriteString("  w             Record watering today\n")
	b.WriteString("  f             Record fertilizing today\n")
	b.WriteString("  b             Record both today\n")
	b.WriteString("  d             Delete (asks y/n)\n")
	b.WriteString("  ctrl+s        Retry a failed save\n")
	b.WriteString("  ?             Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")

	b.WriteString(sectionStyle.Render("About") + "\n\n")
	about := "  GreenThumb tracks watering and fertilizing schedules for house plants."
	if m.version != "" {
		about += fmt.Sprintf("\n  Version: %s", m.version)
	}
	if m.dataFile != "" {
		about += fmt.Sprintf("\n  Data file: %s", m.dataFile)
	}
	b.WriteString(about + "\n\n")
	b.WriteString(mutedStyle.Render("Press ? or esc to return") + "\n")
}

func footer(md mode) string {
	switch md {
	case modeSearch:
		return "type to filter • enter: keep filter • esc: clear"
	case modeConfirm:
		return "y: delete • n/esc: cancel"
	}
	return "a: add • e: edit • w/f/b: water/fertilize/both • d: delete • /: search • ?: help • q: quit"
}
