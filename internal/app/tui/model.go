package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
)

// Controller is the booking session the view drives.
type Controller interface {
	Snapshot() booking.State
	LoadCatalog(ctx context.Context) (booking.State, error)
	Navigate(ctx context.Context, step booking.Step) (booking.State, error)
	SetQuery(ctx context.Context, query dto.Query) (booking.State, error)
	Search(ctx context.Context, query dto.Query) (booking.State, error)
	StartBooking(ctx context.Context, flightID int) (booking.State, error)
	AddPassenger(ctx context.Context) (booking.State, error)
	UpdatePassenger(ctx context.Context, index int, passenger dto.Passenger) (booking.State, error)
	ContinueToPayment(ctx context.Context) (booking.State, error)
	SetPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error)
	SubmitPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error)
	BookAnother(ctx context.Context) (booking.State, error)
	ExportReceipt(ctx context.Context) (string, error)
}

// catalogMsg is sent when a catalog load finishes.
type catalogMsg struct {
	err error
}

// reservationMsg is sent when a reservation call finishes. On error the
// session is unchanged and the payment form stays open.
type reservationMsg struct {
	err error
}

// receiptMsg is sent when the receipt file has been written.
type receiptMsg struct {
	path string
	err  error
}

// field is one focusable form input of the current step.
type field struct {
	// group is the passenger index on the book step.
	group       int
	label       string
	placeholder string
	secret      bool
	// options turns the field into a select cycled with left/right.
	options []dto.Gender

	value func(state booking.State) string
	set   setter
}

// setter writes a field value into the session.
type setter func(ctx context.Context, ctl Controller, state booking.State, value string) (booking.State, error)

// Model is the bubbletea model of the booking terminal view. It renders
// snapshots of the controller's state and turns key presses into
// controller calls.
type Model struct {
	ctx   context.Context
	ctl   Controller
	keys  KeyMap
	theme Theme

	state booking.State
	input textinput.Model

	// focus indexes fields(); on the search step focus == len(fields)
	// is the result list.
	focus  int
	cursor int

	loading    bool
	submitting bool

	status      string
	statusError bool

	width  int
	height int
}

func NewModel(ctx context.Context, ctl Controller) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64

	model := Model{
		ctx:     ctx,
		ctl:     ctl,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		state:   ctl.Snapshot(),
		input:   input,
		loading: true,
	}

	return model.focusField(0)
}

// Init loads the flight catalog, like opening the app.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCatalog())
}

func (m Model) loadCatalog() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl

	return func() tea.Msg {
		_, err := ctl.LoadCatalog(ctx)
		return catalogMsg{err: err}
	}
}

func (m Model) submitPayment() tea.Cmd {
	ctx, ctl, payment := m.ctx, m.ctl, m.state.Payment

	return func() tea.Msg {
		_, err := ctl.SubmitPayment(ctx, payment)
		return reservationMsg{err: err}
	}
}

func (m Model) exportReceipt() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl

	return func() tea.Msg {
		path, err := ctl.ExportReceipt(ctx)
		return receiptMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogMsg:
		m.loading = false
		m = m.refresh()
		if msg.err != nil {
			m = m.setStatus("Could not load flights: "+errorMessage(msg.err), true)
		}
		return m, nil

	case reservationMsg:
		m.submitting = false
		m = m.refresh()
		if msg.err != nil {
			return m.setStatus("Reservation failed: "+errorMessage(msg.err), true), nil
		}
		return m.setStatus("Booking confirmed. PNR "+m.state.LastPNR, false), nil

	case receiptMsg:
		if msg.err != nil {
			return m.setStatus("Could not save receipt: "+errorMessage(msg.err), true), nil
		}
		return m.setStatus("Receipt saved to "+msg.path, false), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Home):
		return m.navigate(booking.StepHome), nil

	case key.Matches(msg, m.keys.Flights):
		return m.navigate(booking.StepSearch), nil

	case key.Matches(msg, m.keys.History):
		return m.navigate(booking.StepHistory), nil

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.loadCatalog()

	case key.Matches(msg, m.keys.Next):
		return m.focusField(m.focus + 1), nil

	case key.Matches(msg, m.keys.Prev):
		return m.focusField(m.focus - 1), nil

	case key.Matches(msg, m.keys.Up):
		if m.onResultList() {
			m.cursor = max(m.cursor-1, 0)
			return m, nil
		}
		return m.focusField(m.focus - 1), nil

	case key.Matches(msg, m.keys.Down):
		if m.onResultList() {
			m.cursor = min(m.cursor+1, len(m.state.Results)-1)
			return m, nil
		}
		return m.focusField(m.focus + 1), nil

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if f, ok := m.focusedField(); ok && f.options != nil {
			step := 1
			if key.Matches(msg, m.keys.Left) {
				step = -1
			}
			return m.cycleOption(f, step), nil
		}

	case key.Matches(msg, m.keys.AddPassenger):
		if m.state.Step == booking.StepBook {
			m = m.apply(m.ctl.AddPassenger(m.ctx))
		}
		return m, nil

	case key.Matches(msg, m.keys.ExportReceipt):
		if m.state.Step == booking.StepDone {
			return m, m.exportReceipt()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	return m.typeInto(msg)
}

// submit is enter: the primary button of the current step.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.state.Step {
	case booking.StepHome:
		return m.navigate(booking.StepSearch), nil

	case booking.StepSearch:
		if m.onResultList() {
			selected := m.state.Results[m.cursor]
			return m.apply(m.ctl.StartBooking(m.ctx, selected.FlightID)).focusField(0), nil
		}

		m = m.apply(m.ctl.Search(m.ctx, m.state.Query))
		m.cursor = 0
		return m, nil

	case booking.StepBook:
		return m.apply(m.ctl.ContinueToPayment(m.ctx)).focusField(0), nil

	case booking.StepPayment:
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m = m.setStatus("Confirming reservation...", false)
		return m, m.submitPayment()

	case booking.StepDone:
		return m.apply(m.ctl.BookAnother(m.ctx)).focusField(0), nil
	}

	return m, nil
}

// typeInto forwards a key to the focused text field and writes the new
// value into the session.
func (m Model) typeInto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.focusedField()
	if !ok || f.options != nil {
		return m, nil
	}

	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != before {
		state, err := f.set(m.ctx, m.ctl, m.state, value)
		m = m.apply(state, err)
	}

	return m, cmd
}

func (m Model) cycleOption(f field, step int) Model {
	current := slices.Index(f.options, dto.Gender(f.value(m.state)))
	next := (current + step + len(f.options)) % len(f.options)

	return m.apply(f.set(m.ctx, m.ctl, m.state, string(f.options[next])))
}

func (m Model) navigate(step booking.Step) Model {
	m = m.apply(m.ctl.Navigate(m.ctx, step))
	m.cursor = 0

	return m.focusField(0)
}

// apply takes the result of a controller call. Rejected actions keep the
// previous snapshot and show the reason.
func (m Model) apply(state booking.State, err error) Model {
	if err != nil {
		return m.setStatus(errorMessage(err), true)
	}

	m.state = state
	if m.statusError {
		m = m.setStatus("", false)
	}

	return m.clampCursor()
}

// refresh reloads the snapshot after an asynchronous call.
func (m Model) refresh() Model {
	m.state = m.ctl.Snapshot()
	m = m.clampCursor()

	return m.focusField(m.focus)
}

func (m Model) clampCursor() Model {
	if m.cursor >= len(m.state.Results) {
		m.cursor = max(len(m.state.Results)-1, 0)
	}

	return m
}

func (m Model) setStatus(status string, isError bool) Model {
	m.status = status
	m.statusError = isError

	return m
}

// focusCount is the number of focus stops on the current step.
func (m Model) focusCount() int {
	count := len(m.fields())
	if m.state.Step == booking.StepSearch && len(m.state.Results) > 0 {
		count++
	}

	return count
}

func (m Model) onResultList() bool {
	return m.state.Step == booking.StepSearch &&
		len(m.state.Results) > 0 &&
		m.focus == len(m.fields())
}

func (m Model) focusedField() (field, bool) {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return field{}, false
	}

	return fields[m.focus], true
}

// focusField moves focus to index i, wrapping around, and loads the
// field's value into the text input.
func (m Model) focusField(i int) Model {
	count := m.focusCount()
	if count == 0 {
		m.focus = 0
		m.input.Blur()
		return m
	}

	m.focus = ((i % count) + count) % count

	f, ok := m.focusedField()
	if !ok || f.options != nil {
		m.input.Blur()
		return m
	}

	m.input.SetValue(f.value(m.state))
	m.input.Placeholder = f.placeholder
	m.input.EchoMode = textinput.EchoNormal
	if f.secret {
		m.input.EchoMode = textinput.EchoPassword
	}
	m.input.CursorEnd()
	m.input.Focus()

	return m
}

// fields lists the form inputs of the current step.
func (m Model) fields() []field {
	switch m.state.Step {
	case booking.StepSearch:
		return searchFields()
	case booking.StepBook:
		return passengerFields(len(m.state.Passengers))
	case booking.StepPayment:
		return paymentFields()
	}

	return nil
}

func searchFields() []field {
	return []field{
		{
			label:       "From",
			placeholder: "DEL",
			value:       func(s booking.State) string { return s.Query.From },
			set: func(ctx context.Context, ctl Controller, s booking.State, v string) (booking.State, error) {
				query := s.Query
				query.From = v
				return ctl.SetQuery(ctx, query)
			},
		},
		{
			label:       "To",
			placeholder: "BOM",
			value:       func(s booking.State) string { return s.Query.To },
			set: func(ctx context.Context, ctl Controller, s booking.State, v string) (booking.State, error) {
				query := s.Query
				query.To = v
				return ctl.SetQuery(ctx, query)
			},
		},
	}
}

func passengerFields(count int) []field {
	fields := make([]field, 0, count*3)

	for i := range count {
		fields = append(fields,
			field{
				group:       i,
				label:       "Name",
				placeholder: "Full name",
				value:       func(s booking.State) string { return passengerAt(s, i).Name },
				set:         setPassenger(i, func(p *dto.Passenger, v string) { p.Name = v }),
			},
			field{
				group:       i,
				label:       "Age",
				placeholder: "Age",
				value:       func(s booking.State) string { return passengerAt(s, i).Age },
				set:         setPassenger(i, func(p *dto.Passenger, v string) { p.Age = v }),
			},
			field{
				group:   i,
				label:   "Gender",
				options: dto.Genders,
				value:   func(s booking.State) string { return string(passengerAt(s, i).Gender) },
				set:     setPassenger(i, func(p *dto.Passenger, v string) { p.Gender = dto.Gender(v) }),
			},
		)
	}

	return fields
}

func passengerAt(s booking.State, i int) dto.Passenger {
	if i < 0 || i >= len(s.Passengers) {
		return dto.BlankPassenger()
	}

	return s.Passengers[i]
}

func setPassenger(i int, change func(p *dto.Passenger, v string)) setter {
	return func(ctx context.Context, ctl Controller, s booking.State, v string) (booking.State, error) {
		p := passengerAt(s, i)
		change(&p, v)

		return ctl.UpdatePassenger(ctx, i, p)
	}
}

func setPayment(change func(p *dto.PaymentData, v string)) setter {
	return func(ctx context.Context, ctl Controller, s booking.State, v string) (booking.State, error) {
		p := s.Payment
		change(&p, v)

		return ctl.SetPayment(ctx, p)
	}
}

func paymentFields() []field {
	return []field{
		{
			label:       "Card Number",
			placeholder: "4111 1111 1111 1111",
			value:       func(s booking.State) string { return s.Payment.CardNumber },
			set:         setPayment(func(p *dto.PaymentData, v string) { p.CardNumber = v }),
		},
		{
			label:       "Expiry",
			placeholder: "MM/YY",
			value:       func(s booking.State) string { return s.Payment.Expiry },
			set:         setPayment(func(p *dto.PaymentData, v string) { p.Expiry = v }),
		},
		{
			label:       "CVV",
			placeholder: "123",
			secret:      true,
			value:       func(s booking.State) string { return s.Payment.CVV },
			set:         setPayment(func(p *dto.PaymentData, v string) { p.CVV = v }),
		},
	}
}

// errorMessage prefers the user-facing message of an application error.
func errorMessage(err error) string {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil && appErr.StatusCode >= 500 {
			return fmt.Sprintf("%s (%v)", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}

	return err.Error()
}
