package entity

import "github.com/google/uuid"

type Region struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	ChefLieu string    `db:"chef_lieu"`
}

// Route is the reference road between two cities. Durations are in minutes.
type Route struct {
	ID          uuid.UUID `db:"id"`
	FromCity    string    `db:"from_city"`
	ToCity      string    `db:"to_city"`
	Duration    string    `db:"duration"`
	DurationMin int       `db:"duration_min"`
	DurationMax int       `db:"duration_max"`
	Axis        string    `db:"axis"`
	Distance    int       `db:"distance"` // km
	Region      Region
}

// Reversed returns the same road travelled the other way.
func (r Route) Reversed() Route {
	r.FromCity, r.ToCity = r.ToCity, r.FromCity
	return r
}

type Stop struct {
	ID      uuid.UUID `db:"id"`
	RouteID uuid.UUID `db:"route_id"`
	Name    string    `db:"name"`
	Order   int       `db:"stop_order"`
	IsPause bool      `db:"is_pause"`
}

// Company is a bus operator. Trips refer to it by name.
type Company struct {
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
	Logo   string    `db:"logo"`
	Rating float64   `db:"rating"`
}
