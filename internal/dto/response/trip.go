package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type TripResponse struct {
	ID            string    `json:"id"`
	FromCity      string    `json:"from_city"`
	ToCity        string    `json:"to_city"`
	OperatorName  string    `json:"operator_name"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Price         int64     `json:"price"`
	BusType       string    `json:"bus_type"`

	// Filled on the detail view when the catalog knows the road and operator.
	Route   *RouteResponse   `json:"route,omitempty"`
	Company *CompanyResponse `json:"company,omitempty"`
}

func TripToResponse(trip *entity.Trip) TripResponse {
	return TripResponse{
		ID:            trip.ID.String(),
		FromCity:      trip.FromCity,
		ToCity:        trip.ToCity,
		OperatorName:  trip.OperatorName,
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   trip.ArrivalTime,
		Price:         trip.Price,
		BusType:       trip.BusType,
	}
}
