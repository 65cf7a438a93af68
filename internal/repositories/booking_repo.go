package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `b.id, b.train_id, b.user_name,
			COALESCE(b.user_email, ''), COALESCE(b.user_phone, ''),
			COALESCE(DATE_FORMAT(b.journey_date, '%Y-%m-%d'), ''),
			b.status, b.coach, b.seat_number, b.pnr,
			COALESCE(DATE_FORMAT(b.booking_time, '%Y-%m-%d %H:%i:%s'), '')`

const joinedColumns = bookingColumns + `,
			t.name, t.source, t.destination, t.departure_time, t.arrival_time, t.fare`

type bookingScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingScanner, joined bool, extra ...any) (models.Booking, error) {
	var (
		b      models.Booking
		status string
		coach  sql.NullString
		seat   sql.NullInt64
	)
	dest := []any{
		&b.ID, &b.TrainID, &b.UserName,
		&b.UserEmail, &b.UserPhone,
		&b.JourneyDate,
		&status, &coach, &seat, &b.PNR,
		&b.BookingTime,
	}
	if joined {
		dest = append(dest, &b.TrainName, &b.Source, &b.Destination, &b.DepartureTime, &b.ArrivalTime, &b.Fare)
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	if coach.Valid {
		c := coach.String
		b.Coach = &c
	}
	if seat.Valid {
		n := int(seat.Int64)
		b.SeatNumber = &n
	}
	return b, nil
}

// GetByID fetches the raw booking row without the train join.
func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings b WHERE b.id=? LIMIT 1`, id)
	b, err := scanBooking(row, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// GetJoinedByID fetches a booking together with its train details.
func (r BookingRepo) GetJoinedByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`
		SELECT `+joinedColumns+`
		FROM bookings b
		JOIN trains t ON b.train_id = t.id
		WHERE b.id=? LIMIT 1`, id)
	b, err := scanBooking(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// ListAll returns every booking joined with its train, newest first.
func (r BookingRepo) ListAll() ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT ` + joinedColumns + `
		FROM bookings b
		JOIN trains t ON b.train_id = t.id
		ORDER BY b.booking_time DESC, b.id DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows, true)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListByContact returns bookings matching the given email or phone, with an
// upgrade_count per booking. Blank values do not act as filters, so blank
// stored values can never be matched by a blank query.
func (r BookingRepo) ListByContact(email, phone string) ([]models.Booking, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, domain.ValidationError{Field: "contact", Msg: "email or phone is required"}
	}

	conds := []string{}
	args := []any{}
	if email != "" {
		conds = append(conds, "b.user_email = ?")
		args = append(args, email)
	}
	if phone != "" {
		conds = append(conds, "b.user_phone = ?")
		args = append(args, phone)
	}

	rows, err := r.db().Query(`
		SELECT `+joinedColumns+`,
			(SELECT COUNT(*) FROM upgrade_history u WHERE u.booking_id = b.id)
		FROM bookings b
		JOIN trains t ON b.train_id = t.id
		WHERE `+strings.Join(conds, " OR ")+`
		ORDER BY b.booking_time DESC, b.id DESC`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var count int
		b, err := scanBooking(rows, true, &count)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		b.UpgradeCount = count
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
