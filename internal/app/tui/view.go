package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/utils"
)

const labelWidth = 12

func (m Model) View() string {
	var body string

	switch m.state.Step {
	case booking.StepHome:
		body = m.viewHome()
	case booking.StepSearch:
		body = m.viewSearch()
	case booking.StepBook:
		body = m.viewBook()
	case booking.StepPayment:
		body = m.viewPayment()
	case booking.StepDone:
		body = m.viewDone()
	case booking.StepHistory:
		body = m.viewHistory()
	}

	sections := []string{m.viewNavBar(), m.theme.panel().Render(body)}

	if m.status != "" {
		sections = append(sections, m.theme.status(m.statusError).Render(m.status))
	}

	sections = append(sections, m.viewHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewNavBar() string {
	active := "Flights"

	switch m.state.Step {
	case booking.StepHome:
		active = "Home"
	case booking.StepHistory:
		active = "History"
	}

	items := []string{m.theme.title().Render("SkySwap")}
	for _, name := range []string{"Home", "Flights", "History"} {
		label := " " + name + " "
		if name == active {
			label = m.theme.selected().Render(label)
		}
		items = append(items, label)
	}

	return strings.Join(items, "  ")
}

func (m Model) viewHome() string {
	lines := []string{
		m.theme.title().Render("Book flights across India"),
		"Search by origin and destination, add your passengers and pay in one go.",
		"",
	}

	if m.loading || m.state.Loading {
		lines = append(lines, m.theme.faint().Render("Loading flights..."))
	} else {
		lines = append(lines, m.theme.faint().Render(fmt.Sprintf("%d flights available", len(m.state.Flights))))
	}

	lines = append(lines, "", "Press enter to search flights")

	return strings.Join(lines, "\n")
}

func (m Model) viewSearch() string {
	fields := m.fields()
	lines := []string{
		m.theme.title().Render("Search Flights"),
		m.renderField(0, fields[0]) + "   " + m.renderField(1, fields[1]),
		"",
	}

	switch {
	case m.loading || m.state.Loading:
		lines = append(lines, m.theme.faint().Render("Loading flights..."))
	case len(m.state.Results) == 0:
		lines = append(lines, m.theme.faint().Render("No flights match your search."))
	default:
		listFocused := m.onResultList()
		for i, f := range m.state.Results {
			row := flightRow(f)
			if listFocused && i == m.cursor {
				row = m.theme.selected().Render(row)
			}
			lines = append(lines, row)
		}
	}

	return strings.Join(lines, "\n")
}

func flightRow(f dto.Flight) string {
	duration := ""
	if minutes, ok := f.DurationMinutes(); ok {
		duration = utils.ConvertMinutesToDuration(minutes)
	}

	return fmt.Sprintf("%-8s %-16s %-11s %-7s %14s",
		f.FlightNumber,
		f.Airline.AirlineName,
		f.Route(),
		duration,
		utils.FormatRupees(f.BaseFare))
}

func (m Model) viewSelectedFlight() string {
	if m.state.Selected == nil {
		return ""
	}

	f := m.state.Selected

	return fmt.Sprintf("%s %s  %s  %s",
		f.Airline.AirlineName,
		f.FlightNumber,
		f.Route(),
		m.theme.fare().Render(utils.FormatRupees(f.BaseFare)))
}

func (m Model) viewBook() string {
	lines := []string{
		m.theme.title().Render("Passenger Details"),
		m.viewSelectedFlight(),
	}

	group := -1
	for i, f := range m.fields() {
		if f.group != group {
			group = f.group
			lines = append(lines, "", m.theme.faint().Render(fmt.Sprintf("Passenger %d", group+1)))
		}
		lines = append(lines, m.renderField(i, f))
	}

	return strings.Join(lines, "\n")
}

func (m Model) viewPayment() string {
	lines := []string{
		m.theme.title().Render("Payment"),
		m.viewSelectedFlight(),
		m.theme.faint().Render(fmt.Sprintf("%d passenger(s)", len(m.state.Passengers))),
		"",
	}

	for i, f := range m.fields() {
		lines = append(lines, m.renderField(i, f))
	}

	if m.submitting {
		lines = append(lines, "", m.theme.faint().Render("Confirming reservation..."))
	}

	return strings.Join(lines, "\n")
}

func (m Model) viewDone() string {
	lines := []string{
		m.theme.status(false).Bold(true).Render("Booking Confirmed!"),
		"PNR: " + m.theme.fare().Render(m.state.LastPNR),
		m.viewSelectedFlight(),
		"",
	}

	for i, p := range m.state.Passengers {
		lines = append(lines, fmt.Sprintf("%d. %s  %s  %s", i+1, p.Name, p.Age, p.Gender))
	}

	return strings.Join(lines, "\n")
}

func (m Model) viewHistory() string {
	lines := []string{m.theme.title().Render("Booking History")}

	if len(m.state.History) == 0 {
		return strings.Join(append(lines, m.theme.faint().Render("No bookings yet.")), "\n")
	}

	for _, record := range m.state.History {
		fare := ""
		if record.TotalFare != 0 {
			fare = utils.FormatRupees(record.TotalFare)
		}

		lines = append(lines, fmt.Sprintf("%-10s %-8s %-11s %-20s %-10s %s",
			record.BookingID,
			record.FlightNumber,
			record.Route,
			record.BookingDate,
			record.Status,
			fare))
	}

	return strings.Join(lines, "\n")
}

// renderField draws a form field; the focused text field shows the live
// text input.
func (m Model) renderField(i int, f field) string {
	label := fmt.Sprintf("%-*s", labelWidth, f.label)
	focused := i == m.focus

	var value string

	switch {
	case f.options != nil:
		value = "< " + f.value(m.state) + " >"
		if focused {
			value = m.theme.selected().Render(value)
		}
	case focused:
		value = m.input.View()
	default:
		value = f.value(m.state)
		if f.secret {
			value = strings.Repeat("•", len(value))
		}
		if value == "" {
			value = m.theme.faint().Render(f.placeholder)
		}
	}

	if focused {
		label = m.theme.title().Render(label)
	}

	return label + value
}

func (m Model) viewHelp() string {
	bindings := []key.Binding{m.keys.Home, m.keys.Flights, m.keys.History}

	switch m.state.Step {
	case booking.StepHome:
		bindings = append(bindings, m.keys.Reload)
	case booking.StepSearch:
		bindings = append(bindings, m.keys.Next, m.keys.Reload)
	case booking.StepBook:
		bindings = append(bindings, m.keys.Next, m.keys.AddPassenger)
	case booking.StepPayment:
		bindings = append(bindings, m.keys.Next)
	case booking.StepDone:
		bindings = append(bindings, m.keys.ExportReceipt)
	}

	bindings = append(bindings, m.keys.Submit, m.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}

	return m.theme.help().Render(strings.Join(parts, " · "))
}
