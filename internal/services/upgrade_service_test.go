package services

import (
	"database/sql"
	"testing"

	"traintrek/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRow(id int64, trainID int64, status string, coach any, seat any) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).AddRow(
		id, trainID, "Guest", "", "", "",
		status, coach, seat, "PNRTEST12345", "2025-06-01 10:00:00",
	)
}

func TestLuckyConfirmWLHeadsUpgradesToRAC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("WL", int64(3)))
	mock.ExpectExec("UPDATE bookings SET status=").WithArgs("RAC", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO upgrade_history").
		WithArgs(int64(5), "WL", "RAC", "lucky_confirm").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(joinedBookingRow(5, "RAC", nil, nil))

	svc := UpgradeService{DB: db, Rand: &stubRand{bools: []bool{true}}}
	result, err := svc.LuckyConfirm(5)
	if err != nil {
		t.Fatalf("lucky confirm error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if result.NewStatus != domain.StatusRAC {
		t.Fatalf("newStatus = %s, want RAC", result.NewStatus)
	}
	if result.CoinResult != domain.CoinHeads {
		t.Fatalf("coinResult = %s, want HEADS", result.CoinResult)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLuckyConfirmRACHeadsConsumesSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("RAC", int64(3)))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats - 1").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status=").WithArgs("CONFIRMED", "A5", 42, int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO upgrade_history").
		WithArgs(int64(6), "RAC", "CONFIRMED", "lucky_confirm").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(6)).
		WillReturnRows(joinedBookingRow(6, "CONFIRMED", "A5", 42))

	svc := UpgradeService{DB: db, Rand: &stubRand{bools: []bool{true}, ints: []int{4, 41}}}
	result, err := svc.LuckyConfirm(6)
	if err != nil {
		t.Fatalf("lucky confirm error: %v", err)
	}
	if !result.Success || result.NewStatus != domain.StatusConfirmed {
		t.Fatalf("expected RAC -> CONFIRMED, got success=%v status=%s", result.Success, result.NewStatus)
	}
	if result.Booking.Coach == nil || result.Booking.SeatNumber == nil {
		t.Fatalf("confirmed booking must have coach and seat")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLuckyConfirmRACHeadsNoFreeSeatStaysRAC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("RAC", int64(3)))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats - 1").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(6)).
		WillReturnRows(joinedBookingRow(6, "RAC", nil, nil))

	svc := UpgradeService{DB: db, Rand: &stubRand{bools: []bool{true}}}
	result, err := svc.LuckyConfirm(6)
	if err != nil {
		t.Fatalf("lucky confirm error: %v", err)
	}
	if result.Success {
		t.Fatalf("promotion without a free seat must not succeed")
	}
	if result.NewStatus != domain.StatusRAC {
		t.Fatalf("newStatus = %s, want RAC", result.NewStatus)
	}
	if result.CoinResult != domain.CoinHeads {
		t.Fatalf("coinResult = %s, want HEADS", result.CoinResult)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLuckyConfirmTailsLeavesStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("WL", int64(3)))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(joinedBookingRow(5, "WL", nil, nil))

	svc := UpgradeService{DB: db, Rand: &stubRand{bools: []bool{false}}}
	result, err := svc.LuckyConfirm(5)
	if err != nil {
		t.Fatalf("lucky confirm error: %v", err)
	}
	if result.Success {
		t.Fatalf("tails must not succeed")
	}
	if result.NewStatus != domain.StatusWL {
		t.Fatalf("newStatus = %s, want WL", result.NewStatus)
	}
	if result.CoinResult != domain.CoinTails {
		t.Fatalf("coinResult = %s, want TAILS", result.CoinResult)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLuckyConfirmIneligibleBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	svc := UpgradeService{DB: db, Rand: &stubRand{}}
	_, err = svc.LuckyConfirm(7)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelConfirmedRunsFullChain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Snapshot read before the transaction.
	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(9)).
		WillReturnRows(bookingRow(9, 3, "CONFIRMED", "A2", 11))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("CONFIRMED", int64(3)))
	mock.ExpectExec("UPDATE bookings SET status=(.+), coach=NULL, seat_number=NULL").
		WithArgs("CANCELLED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trains SET available_seats = available_seats \+ 1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3), "RAC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats - 1").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status=").WithArgs("CONFIRMED", "A4", 17, int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO upgrade_history").
		WithArgs(int64(20), "RAC", "CONFIRMED", "cancellation_upgrade").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3), "WL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
	mock.ExpectExec("UPDATE bookings SET status=").WithArgs("RAC", int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO upgrade_history").
		WithArgs(int64(30), "WL", "RAC", "cancellation_upgrade").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	svc := UpgradeService{DB: db, Rand: &stubRand{ints: []int{3, 16}}}
	result, err := svc.Cancel(9)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if result.CancelledBooking.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", result.CancelledBooking.Status)
	}
	if result.CancelledBooking.Coach != nil || result.CancelledBooking.SeatNumber != nil {
		t.Fatalf("cancelled booking must not keep coach or seat")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelNonConfirmedSkipsChain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(8)).
		WillReturnRows(bookingRow(8, 3, "WL", nil, nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, train_id FROM bookings").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "train_id"}).AddRow("WL", int64(3)))
	mock.ExpectExec("UPDATE bookings SET status=(.+), coach=NULL, seat_number=NULL").
		WithArgs("CANCELLED", int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := UpgradeService{DB: db, Rand: &stubRand{}}
	result, err := svc.Cancel(8)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if result.CancelledBooking.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", result.CancelledBooking.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelAlreadyCancelledIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(4)).
		WillReturnRows(bookingRow(4, 3, "CANCELLED", nil, nil))

	svc := UpgradeService{DB: db, Rand: &stubRand{}}
	result, err := svc.Cancel(4)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if !result.Success {
		t.Fatalf("re-cancel should still report success")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	svc := UpgradeService{DB: db, Rand: &stubRand{}}
	_, err = svc.Cancel(404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
