package services

import (
	"database/sql"
	"fmt"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
	"traintrek/internal/monitoring"
	"traintrek/internal/repositories"
	"traintrek/internal/utils"
)

const notEligibleMsg = "Booking not found or not eligible for Lucky Confirm (must be Waitlisted or RAC)"

// UpgradeService runs the lucky-confirm coin flip and the cancellation
// upgrade chain. Every observed transition is recorded in upgrade_history
// inside the same transaction as the status change.
type UpgradeService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	Rand        utils.Rand
	RequestID   string
}

func (s UpgradeService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UpgradeService) rand() utils.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return utils.DefaultRand
}

func (s UpgradeService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func recordUpgrade(tx *sql.Tx, bookingID int64, oldStatus, newStatus domain.BookingStatus, kind domain.UpgradeType) error {
	_, err := tx.Exec(`INSERT INTO upgrade_history (booking_id, old_status, new_status, upgrade_type) VALUES (?,?,?,?)`,
		bookingID, string(oldStatus), string(newStatus), string(kind))
	return err
}

// LuckyConfirm flips one fair coin for a RAC or WL booking. Heads moves
// WL to RAC, or RAC to CONFIRMED when a seat is free; tails changes
// nothing. A RAC promotion consumes a train seat, keeping the
// seat-accounting invariant that every CONFIRMED booking holds a seat.
func (s UpgradeService) LuckyConfirm(bookingID int64) (models.LuckyConfirmResult, error) {
	if bookingID <= 0 {
		return models.LuckyConfirmResult{}, domain.ValidationError{Field: "bookingId", Msg: "Booking ID is required"}
	}
	db := s.db()
	if db == nil {
		return models.LuckyConfirmResult{}, domain.InternalError{Msg: "db not available"}
	}

	tx, err := db.Begin()
	if err != nil {
		return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var (
		curStatus string
		trainID   int64
	)
	err = tx.QueryRow(`SELECT status, train_id FROM bookings WHERE id=? AND status IN ('WL','RAC') FOR UPDATE`, bookingID).
		Scan(&curStatus, &trainID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.LuckyConfirmResult{}, domain.ValidationError{Msg: notEligibleMsg}
		}
		return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
	}

	cur := domain.BookingStatus(curStatus)
	heads := s.rand().Bool()

	result := models.LuckyConfirmResult{
		NewStatus:  cur,
		CoinResult: domain.CoinTails,
	}
	if heads {
		result.CoinResult = domain.CoinHeads
	}

	switch {
	case heads && cur == domain.StatusWL:
		if _, err := tx.Exec(`UPDATE bookings SET status=? WHERE id=?`, string(domain.StatusRAC), bookingID); err != nil {
			return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
		}
		if err := recordUpgrade(tx, bookingID, domain.StatusWL, domain.StatusRAC, domain.UpgradeLuckyConfirm); err != nil {
			return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
		}
		result.Success = true
		result.NewStatus = domain.StatusRAC
		result.Message = "Congratulations! You got lucky! Your ticket has been upgraded from Waitlist to RAC!"

	case heads && cur == domain.StatusRAC:
		res, err := tx.Exec(`UPDATE trains SET available_seats = available_seats - 1 WHERE id=? AND available_seats > 0`, trainID)
		if err != nil {
			return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Heads, but the train is full: no seat to back a CONFIRMED
			// booking, so the status stays RAC.
			result.Message = "Heads! But there are no free seats right now. Your ticket remains RAC."
			break
		}
		coach, seat := drawSeat(s.rand())
		if _, err := tx.Exec(`UPDATE bookings SET status=?, coach=?, seat_number=? WHERE id=?`,
			string(domain.StatusConfirmed), coach, seat, bookingID); err != nil {
			return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
		}
		if err := recordUpgrade(tx, bookingID, domain.StatusRAC, domain.StatusConfirmed, domain.UpgradeLuckyConfirm); err != nil {
			return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
		}
		result.Success = true
		result.NewStatus = domain.StatusConfirmed
		result.Message = "Amazing! You got lucky! Your ticket has been upgraded from RAC to CONFIRMED!"

	case cur == domain.StatusWL:
		result.Message = "Better luck next time! Your ticket remains Waitlisted."

	default:
		result.Message = "Better luck next time! Your ticket remains RAC."
	}

	if err := tx.Commit(); err != nil {
		return models.LuckyConfirmResult{}, domain.InternalError{Err: err}
	}

	monitoring.TrackCoinFlip(string(result.CoinResult))
	utils.LogEvent(s.RequestID, "upgrade", "lucky_confirm",
		fmt.Sprintf("booking_id=%d coin=%s status=%s", bookingID, result.CoinResult, result.NewStatus))

	booking, err := s.bookings().GetJoinedByID(bookingID)
	if err != nil {
		return models.LuckyConfirmResult{}, err
	}
	result.Booking = booking
	return result, nil
}

// Cancel sets a booking to CANCELLED. When the booking held a seat, the
// seat is released and at most one RAC booking on the same train is
// promoted to CONFIRMED (oldest first), followed by at most one WL
// booking to RAC. Re-cancelling is a no-op.
func (s UpgradeService) Cancel(bookingID int64) (models.CancelResult, error) {
	if bookingID <= 0 {
		return models.CancelResult{}, domain.ValidationError{Field: "bookingId", Msg: "Booking ID is required"}
	}

	snapshot, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.CancelResult{}, err
	}
	if snapshot.Status == domain.StatusCancelled {
		return models.CancelResult{
			Success:          true,
			Message:          "Booking was already cancelled.",
			CancelledBooking: snapshot,
		}, nil
	}

	db := s.db()
	tx, err := db.Begin()
	if err != nil {
		return models.CancelResult{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var (
		curStatus string
		trainID   int64
	)
	err = tx.QueryRow(`SELECT status, train_id FROM bookings WHERE id=? FOR UPDATE`, bookingID).Scan(&curStatus, &trainID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CancelResult{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.CancelResult{}, domain.InternalError{Err: err}
	}

	if _, err := tx.Exec(`UPDATE bookings SET status=?, coach=NULL, seat_number=NULL WHERE id=?`,
		string(domain.StatusCancelled), bookingID); err != nil {
		return models.CancelResult{}, domain.InternalError{Err: err}
	}

	if domain.BookingStatus(curStatus) == domain.StatusConfirmed {
		if _, err := tx.Exec(`UPDATE trains SET available_seats = available_seats + 1 WHERE id=?`, trainID); err != nil {
			return models.CancelResult{}, domain.InternalError{Err: err}
		}
		if err := s.runUpgradeChain(tx, trainID); err != nil {
			return models.CancelResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.CancelResult{}, domain.InternalError{Err: err}
	}

	monitoring.TrackCancellation()
	utils.LogEvent(s.RequestID, "upgrade", "cancel",
		fmt.Sprintf("booking_id=%d previous_status=%s", bookingID, curStatus))

	snapshot.Status = domain.StatusCancelled
	snapshot.Coach = nil
	snapshot.SeatNumber = nil
	return models.CancelResult{
		Success:          true,
		Message:          "Booking cancelled successfully. Waitlisted passengers got upgrade chances!",
		CancelledBooking: snapshot,
	}, nil
}

// runUpgradeChain promotes the oldest RAC booking on the train to
// CONFIRMED, consuming the freed seat, and only then moves the oldest WL
// booking to RAC. Oldest-first keeps the chain reproducible.
func (s UpgradeService) runUpgradeChain(tx *sql.Tx, trainID int64) error {
	racID, err := oldestByStatus(tx, trainID, domain.StatusRAC)
	if err != nil {
		return err
	}
	if racID == 0 {
		return nil
	}

	res, err := tx.Exec(`UPDATE trains SET available_seats = available_seats - 1 WHERE id=? AND available_seats > 0`, trainID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	coach, seat := drawSeat(s.rand())
	if _, err := tx.Exec(`UPDATE bookings SET status=?, coach=?, seat_number=? WHERE id=?`,
		string(domain.StatusConfirmed), coach, seat, racID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := recordUpgrade(tx, racID, domain.StatusRAC, domain.StatusConfirmed, domain.UpgradeCancellation); err != nil {
		return domain.InternalError{Err: err}
	}
	monitoring.TrackChainPromotion("RAC_CONFIRMED")

	wlID, err := oldestByStatus(tx, trainID, domain.StatusWL)
	if err != nil {
		return err
	}
	if wlID == 0 {
		return nil
	}
	if _, err := tx.Exec(`UPDATE bookings SET status=? WHERE id=?`, string(domain.StatusRAC), wlID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := recordUpgrade(tx, wlID, domain.StatusWL, domain.StatusRAC, domain.UpgradeCancellation); err != nil {
		return domain.InternalError{Err: err}
	}
	monitoring.TrackChainPromotion("WL_RAC")
	return nil
}

func oldestByStatus(tx *sql.Tx, trainID int64, status domain.BookingStatus) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM bookings WHERE train_id=? AND status=? ORDER BY booking_time ASC, id ASC LIMIT 1 FOR UPDATE`,
		trainID, string(status)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}
