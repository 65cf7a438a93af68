package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
	"traintrek/internal/repositories"
	"traintrek/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders an e-ticket PDF for a booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.DB}
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	b, err := s.bookings().GetJoinedByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if b.Status == domain.StatusCancelled {
		return nil, "", domain.ValidationError{Msg: "cancelled bookings have no e-ticket"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(b)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAINTREK E-TICKET")
	pdf.Ln(12)

	seatLabel := string(b.Status)
	if b.Coach != nil && b.SeatNumber != nil {
		seatLabel = fmt.Sprintf("%s / %d", *b.Coach, *b.SeatNumber)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR        : %s", b.PNR),
		fmt.Sprintf("Passenger  : %s", safe(b.UserName, "Guest")),
		fmt.Sprintf("Train      : %s", safe(b.TrainName, "-")),
		fmt.Sprintf("Route      : %s -> %s", safe(b.Source, "-"), safe(b.Destination, "-")),
		fmt.Sprintf("Departure  : %s", safe(b.DepartureTime, "-")),
		fmt.Sprintf("Arrival    : %s", safe(b.ArrivalTime, "-")),
		fmt.Sprintf("Journey    : %s", safe(b.JourneyDate, "-")),
		fmt.Sprintf("Status     : %s", b.Status),
		fmt.Sprintf("Coach/Seat : %s", seatLabel),
		fmt.Sprintf("Fare       : %d", b.Fare),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: RAC and Waitlisted tickets have no seat assigned until upgraded. Keep your PNR for status checks.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(b.PNR))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return repl.Replace(s)
}
