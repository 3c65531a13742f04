package receipt

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
	"github.com/spf13/afero"
)

var ErrInvalidPNR = exception.ApplicationError{
	Message:    "booking id cannot be used as a receipt file name",
	StatusCode: http.StatusBadGateway,
}

// TimeLayout renders the receipt time like a US-locale date string.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// Receipt is the downloadable summary of the last confirmed booking.
type Receipt struct {
	BookingID  string          `json:"BookingID"`
	Flight     string          `json:"Flight"`
	Airline    string          `json:"Airline"`
	Passengers []dto.Passenger `json:"Passengers"`
	Time       string          `json:"Time"`
}

// Build derives the receipt from the session state. It needs a confirmed
// booking; the flight fields are taken from the currently selected flight.
func Build(state booking.State, now time.Time) (Receipt, error) {
	if state.LastPNR == "" {
		return Receipt{}, booking.ErrNoConfirmedBooking
	}

	if err := ValidatePNR(state.LastPNR); err != nil {
		return Receipt{}, err
	}

	r := Receipt{
		BookingID:  state.LastPNR,
		Passengers: slices.Clone(state.Passengers),
		Time:       now.Format(TimeLayout),
	}

	if r.Passengers == nil {
		r.Passengers = []dto.Passenger{}
	}

	if state.Selected != nil {
		r.Flight = state.Selected.FlightNumber
		r.Airline = state.Selected.Airline.AirlineName
	}

	return r, nil
}

// ValidatePNR reports whether pnr is safe to use as a single file name
// component.
func ValidatePNR(pnr string) error {
	if pnr == "" || pnr == "." || strings.Contains(pnr, "..") ||
		strings.ContainsAny(pnr, `/\"`) ||
		strings.ContainsFunc(pnr, unicode.IsControl) {
		return ErrInvalidPNR.WithCause(fmt.Errorf("booking id %q", pnr))
	}

	return nil
}

// FileName is the download name of a receipt.
func FileName(pnr string) string {
	return fmt.Sprintf("%s_receipt.json", pnr)
}

// Marshal encodes the receipt with two-space indentation.
func (r Receipt) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}

	return data, nil
}

// Exporter writes receipts into a directory.
type Exporter struct {
	fs  afero.Fs
	dir string
}

func NewExporter(fs afero.Fs, dir string) *Exporter {
	if dir == "" {
		dir = "."
	}

	return &Exporter{
		fs:  fs,
		dir: dir,
	}
}

// Export writes r as {PNR}_receipt.json and returns the file path.
func (e *Exporter) Export(r Receipt) (string, error) {
	if err := ValidatePNR(r.BookingID); err != nil {
		return "", err
	}

	data, err := r.Marshal()
	if err != nil {
		return "", err
	}

	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipt dir: %w", err)
	}

	path := filepath.Join(e.dir, FileName(r.BookingID))
	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}

	return path, nil
}
