package models

import "traintrek/internal/domain"

// Booking mirrors the bookings row plus the joined train columns the API
// responses carry. Coach and SeatNumber are nil unless the booking is
// CONFIRMED.
type Booking struct {
	ID          int64                `json:"id"`
	TrainID     int64                `json:"train_id"`
	UserName    string               `json:"user_name"`
	UserEmail   string               `json:"user_email,omitempty"`
	UserPhone   string               `json:"user_phone,omitempty"`
	JourneyDate string               `json:"journey_date,omitempty"`
	Status      domain.BookingStatus `json:"status"`
	Coach       *string              `json:"coach"`
	SeatNumber  *int                 `json:"seat_number"`
	PNR         string               `json:"pnr"`
	BookingTime string               `json:"booking_time,omitempty"`

	// Joined train fields, present on detail views.
	TrainName     string `json:"train_name,omitempty"`
	Source        string `json:"source,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	Fare          int64  `json:"fare,omitempty"`

	// UpgradeCount is filled by the history lookup only.
	UpgradeCount int `json:"upgrade_count,omitempty"`
}

// BookingRequest is the create-booking payload.
type BookingRequest struct {
	TrainID     int64  `json:"trainId"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	UserPhone   string `json:"userPhone"`
	JourneyDate string `json:"journeyDate"`
}
