package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intconfig "traintrek/internal/config"
	intdb "traintrek/internal/db"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
	"traintrek/internal/monitoring"
	"traintrek/internal/repositories"
	"traintrek/internal/utils"
)

const (
	pnrRandomLen   = 9
	pnrMaxAttempts = 5
)

// BookingService allocates new bookings: seat-backed CONFIRMED when the
// train has room, otherwise a coin flip between RAC and WL.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	Rand        utils.Rand
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) rand() utils.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return utils.DefaultRand
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// drawSeat assigns a coach label A1..A5 and a seat number 1..50. Seat
// numbers are not checked for collisions against other bookings.
func drawSeat(r utils.Rand) (string, int) {
	return "A" + strconv.Itoa(r.Intn(5)+1), r.Intn(50) + 1
}

// Create persists a new booking for the given train. The seat decision,
// seat-count decrement and insert run in one transaction with the train
// row locked, so available_seats and CONFIRMED bookings cannot drift.
func (s BookingService) Create(req models.BookingRequest) (models.Booking, error) {
	if req.TrainID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "trainId", Msg: "Train ID is required"}
	}
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = "Guest"
	}

	db := s.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "db not available"}
	}

	tx, err := db.Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var available int
	err = tx.QueryRow(`SELECT available_seats FROM trains WHERE id=? FOR UPDATE`, req.TrainID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "train", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	rng := s.rand()
	status := domain.StatusWL
	var coach any
	var seat any
	if available > 0 {
		status = domain.StatusConfirmed
		c, n := drawSeat(rng)
		coach, seat = c, n
		res, err := tx.Exec(`UPDATE trains SET available_seats = available_seats - 1 WHERE id=? AND available_seats > 0`, req.TrainID)
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.Booking{}, domain.InternalError{Msg: "seat decrement lost"}
		}
	} else if rng.Bool() {
		status = domain.StatusRAC
	}

	var bookingID int64
	for attempt := 0; ; attempt++ {
		pnr, err := utils.GeneratePNR(pnrRandomLen)
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
		res, err := tx.Exec(`INSERT INTO bookings
			(train_id, user_name, user_email, user_phone, journey_date, status, coach, seat_number, pnr)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			req.TrainID,
			userName,
			intdb.NullIfEmpty(strings.TrimSpace(req.UserEmail)),
			intdb.NullIfEmpty(strings.TrimSpace(req.UserPhone)),
			intdb.NullIfEmpty(strings.TrimSpace(req.JourneyDate)),
			string(status),
			coach,
			seat,
			pnr,
		)
		if err == nil {
			bookingID, _ = res.LastInsertId()
			break
		}
		if intdb.IsDuplicateKey(err) && attempt+1 < pnrMaxAttempts {
			continue
		}
		if intdb.IsDuplicateKey(err) {
			return models.Booking{}, domain.ConflictError{Resource: "pnr", Msg: "could not allocate a unique PNR", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	monitoring.TrackBookingCreated(string(status))
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d train_id=%d status=%s", bookingID, req.TrainID, status))

	return s.bookings().GetJoinedByID(bookingID)
}
