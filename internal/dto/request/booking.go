package request

type CreateBookingRequest struct {
	TripID         string   `json:"trip_id" validate:"required,uuid"`
	SeatNumbers    []string `json:"seat_numbers" validate:"required,min=1,max=10,unique,dive,seatnumber"`
	PassengerName  string   `json:"passenger_name" validate:"required,min=2,max=200"`
	PassengerPhone string   `json:"passenger_phone" validate:"required,numeric,min=8,max=20"`
	HoldToken      string   `json:"hold_token" validate:"omitempty,uuid"`
}
