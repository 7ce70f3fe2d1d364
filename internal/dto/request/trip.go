package request

import "time"

type CreateTripRequest struct {
	FromCity      string    `json:"from_city" validate:"required,max=100"`
	ToCity        string    `json:"to_city" validate:"required,max=100,nefield=FromCity"`
	OperatorName  string    `json:"operator_name" validate:"required,max=100"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required,gtfield=DepartureTime"`
	Price         int64     `json:"price" validate:"required,gt=0"`
	BusType       string    `json:"bus_type" validate:"omitempty,max=100"`

	// Seat grid, defaults to 10 rows of A-D
	Rows    int `json:"rows" validate:"omitempty,min=1,max=20"`
	Columns int `json:"columns" validate:"omitempty,min=1,max=6"`
}
