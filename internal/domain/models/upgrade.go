package models

import "traintrek/internal/domain"

// UpgradeHistoryEntry is one recorded status transition. Append-only.
type UpgradeHistoryEntry struct {
	ID          int64                `json:"id"`
	BookingID   int64                `json:"booking_id"`
	OldStatus   domain.BookingStatus `json:"old_status"`
	NewStatus   domain.BookingStatus `json:"new_status"`
	UpgradeType domain.UpgradeType   `json:"upgrade_type"`
	CreatedAt   string               `json:"created_at"`
}

// CancelResult is the response of a cancellation, carrying the pre-cancel
// snapshot with its status already flipped to CANCELLED.
type CancelResult struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	CancelledBooking Booking `json:"cancelledBooking"`
}

// LuckyConfirmResult is the response of one coin flip attempt.
type LuckyConfirmResult struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Booking    Booking              `json:"booking"`
	NewStatus  domain.BookingStatus `json:"newStatus"`
	CoinResult domain.CoinResult    `json:"coinResult"`
}
