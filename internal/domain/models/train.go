package models

// Train is a catalog entry. available_seats counts seats not held by a
// CONFIRMED booking.
type Train struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Duration       string `json:"duration"`
	Fare           int64  `json:"fare"`
	CreatedAt      string `json:"created_at,omitempty"`
}
