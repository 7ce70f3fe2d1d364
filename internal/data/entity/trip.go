package entity

import (
	"time"
)

// Trip is a scheduled departure on a route by one operator at a fixed price.
type Trip struct {
	BaseSimple
	FromCity      string    `db:"from_city"`
	ToCity        string    `db:"to_city"`
	OperatorName  string    `db:"operator_name"`
	DepartureTime time.Time `db:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time"`
	Price         int64     `db:"price"` // FCFA per seat
	BusType       string    `db:"bus_type"`
}
