package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type SeatResponse struct {
	Number     string            `json:"number"`
	Row        int               `json:"row"`
	Column     int               `json:"column"`
	Status     entity.SeatStatus `json:"status"`
	HoldExpiry *time.Time        `json:"hold_expiry,omitempty"`
}

type SeatMapResponse struct {
	TripID    string         `json:"trip_id"`
	Available int            `json:"available"`
	Seats     []SeatResponse `json:"seats"`
}

type HoldResponse struct {
	TripID    string    `json:"trip_id"`
	Seats     []string  `json:"seats"`
	Expiry    time.Time `json:"expiry"`
	HoldToken string    `json:"hold_token"`
}

type ReleaseResponse struct {
	TripID   string   `json:"trip_id"`
	Released []string `json:"released"`
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		Number:     seat.Number,
		Row:        seat.Row,
		Column:     seat.Column,
		Status:     seat.Status,
		HoldExpiry: seat.HoldUntil,
	}
}
