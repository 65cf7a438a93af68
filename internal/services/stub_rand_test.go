package services

// stubRand feeds scripted values into coin flips and seat draws.
type stubRand struct {
	ints  []int
	bools []bool
}

func (s *stubRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *stubRand) Bool() bool {
	v := s.bools[0]
	s.bools = s.bools[1:]
	return v
}

var bookingCols = []string{
	"id", "train_id", "user_name", "user_email", "user_phone", "journey_date",
	"status", "coach", "seat_number", "pnr", "booking_time",
}

var joinedCols = append(append([]string{}, bookingCols...),
	"name", "source", "destination", "departure_time", "arrival_time", "fare")
