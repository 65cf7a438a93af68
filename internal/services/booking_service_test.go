package services

import (
	"database/sql"
	"testing"

	"traintrek/internal/domain"
	"traintrek/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func joinedBookingRow(id int64, status string, coach any, seat any) *sqlmock.Rows {
	return sqlmock.NewRows(joinedCols).AddRow(
		id, int64(1), "Guest", "", "", "",
		status, coach, seat, "PNRTEST12345", "2025-06-01 10:00:00",
		"Rajdhani Express", "New Delhi", "Mumbai", "16:30", "08:45", int64(2845),
	)
}

func TestCreateBookingConfirmedDecrementsSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats FROM trains").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats - 1").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), "Guest", nil, nil, nil, "CONFIRMED", "A3", 8, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(10)).
		WillReturnRows(joinedBookingRow(10, "CONFIRMED", "A3", 8))

	svc := BookingService{DB: db, Rand: &stubRand{ints: []int{2, 7}}}
	booking, err := svc.Create(models.BookingRequest{TrainID: 1})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if booking.Status != domain.StatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", booking.Status)
	}
	if booking.Coach == nil || booking.SeatNumber == nil {
		t.Fatalf("confirmed booking must have coach and seat")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingFullTrainRAC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats FROM trains").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(3), "Bob", nil, nil, nil, "RAC", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(11)).
		WillReturnRows(joinedBookingRow(11, "RAC", nil, nil))

	svc := BookingService{DB: db, Rand: &stubRand{bools: []bool{true}}}
	booking, err := svc.Create(models.BookingRequest{TrainID: 3, UserName: "Bob"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if booking.Status != domain.StatusRAC {
		t.Fatalf("status = %s, want RAC", booking.Status)
	}
	if booking.Coach != nil || booking.SeatNumber != nil {
		t.Fatalf("RAC booking must not have coach or seat")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingFullTrainWL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats FROM trains").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(3), "Guest", nil, nil, nil, "WL", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(12)).
		WillReturnRows(joinedBookingRow(12, "WL", nil, nil))

	svc := BookingService{DB: db, Rand: &stubRand{bools: []bool{false}}}
	booking, err := svc.Create(models.BookingRequest{TrainID: 3})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if booking.Status != domain.StatusWL {
		t.Fatalf("status = %s, want WL", booking.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingTrainNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats FROM trains").WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	svc := BookingService{DB: db, Rand: &stubRand{}}
	_, err = svc.Create(models.BookingRequest{TrainID: 99})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingMissingTrainID(t *testing.T) {
	svc := BookingService{Rand: &stubRand{}}
	_, err := svc.Create(models.BookingRequest{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateBookingRetriesPNRCollision(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats FROM trains").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(1))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats - 1").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(13)).
		WillReturnRows(joinedBookingRow(13, "CONFIRMED", "A1", 4))

	svc := BookingService{DB: db, Rand: &stubRand{ints: []int{0, 3}}}
	booking, err := svc.Create(models.BookingRequest{TrainID: 1})
	if err != nil {
		t.Fatalf("create error after retry: %v", err)
	}
	if booking.ID != 13 {
		t.Fatalf("booking id = %d, want 13", booking.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
