package services

import (
	"database/sql"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain/models"
	"traintrek/internal/repositories"
)

// HistoryService exposes a passenger's bookings and a booking's upgrade
// trail. Read-only.
type HistoryService struct {
	BookingRepo repositories.BookingRepo
	HistoryRepo repositories.UpgradeHistoryRepo
	DB          *sql.DB
}

func (s HistoryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s HistoryService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s HistoryService) history() repositories.UpgradeHistoryRepo {
	if s.HistoryRepo.DB != nil {
		return s.HistoryRepo
	}
	return repositories.UpgradeHistoryRepo{DB: s.db()}
}

// ByContact finds bookings by stored email or phone. Blank query values
// are not filters, so they never match blank stored values.
func (s HistoryService) ByContact(email, phone string) ([]models.Booking, error) {
	return s.bookings().ListByContact(email, phone)
}

// UpgradeTrail lists a booking's recorded transitions, newest first.
func (s HistoryService) UpgradeTrail(bookingID int64) ([]models.UpgradeHistoryEntry, error) {
	if _, err := s.bookings().GetByID(bookingID); err != nil {
		return nil, err
	}
	return s.history().ListByBooking(bookingID)
}

func (s HistoryService) ListAll() ([]models.Booking, error) {
	return s.bookings().ListAll()
}

func (s HistoryService) GetByID(bookingID int64) (models.Booking, error) {
	return s.bookings().GetJoinedByID(bookingID)
}
