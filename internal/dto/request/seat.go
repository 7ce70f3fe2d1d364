package request

type HoldSeatsRequest struct {
	SeatNumbers []string `json:"seat_numbers" validate:"required,min=1,max=10,unique,dive,seatnumber"`
}

type ReleaseSeatsRequest struct {
	SeatNumbers []string `json:"seat_numbers" validate:"required,min=1,max=10,unique,dive,seatnumber"`
	HoldToken   string   `json:"hold_token" validate:"omitempty,uuid"`
}
