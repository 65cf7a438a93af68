package repositories

import (
	"database/sql"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
)

type UpgradeHistoryRepo struct {
	DB *sql.DB
}

func (r UpgradeHistoryRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByBooking returns a booking's upgrade trail, newest entry first.
func (r UpgradeHistoryRepo) ListByBooking(bookingID int64) ([]models.UpgradeHistoryEntry, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	rows, err := r.db().Query(`
		SELECT id, booking_id, old_status, new_status, upgrade_type,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM upgrade_history
		WHERE booking_id=?
		ORDER BY created_at DESC, id DESC`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.UpgradeHistoryEntry{}
	for rows.Next() {
		var (
			e                    models.UpgradeHistoryEntry
			oldStatus, newStatus string
			upgradeType          string
		)
		if err := rows.Scan(&e.ID, &e.BookingID, &oldStatus, &newStatus, &upgradeType, &e.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		e.OldStatus = domain.BookingStatus(oldStatus)
		e.NewStatus = domain.BookingStatus(newStatus)
		e.UpgradeType = domain.UpgradeType(upgradeType)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
