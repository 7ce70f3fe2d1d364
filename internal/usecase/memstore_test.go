package usecase

import (
	"context"
	"sync"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memStore mirrors the compare-and-set semantics of the SQL repositories.
// A single mutex plays the role of the row locks, and every multi-seat
// transition checks all seats before mutating any of them. The SQL path
// differs: it updates, compares the returned seat numbers and rolls back on
// a shortfall. That path runs against Postgres in
// internal/data/repository/postgres_integration_test.go (TEST_DATABASE_URL).
type memStore struct {
	mu       sync.Mutex
	trips    map[uuid.UUID]*entity.Trip
	seats    map[uuid.UUID][]*entity.Seat
	bookings map[uuid.UUID]*entity.Booking
	codes    map[string]uuid.UUID
	payments map[uuid.UUID]*entity.Payment
	released map[uuid.UUID]bool

	routes    []*entity.Route
	stops     map[uuid.UUID][]*entity.Stop
	companies []*entity.Company

	// catalogFault, when set, fails every route and company lookup.
	catalogFault error

	// insertFault, when set, fails the booking insert after seats were claimed.
	insertFault error
}

func newMemStore() *memStore {
	return &memStore{
		trips:    make(map[uuid.UUID]*entity.Trip),
		seats:    make(map[uuid.UUID][]*entity.Seat),
		bookings: make(map[uuid.UUID]*entity.Booking),
		codes:    make(map[string]uuid.UUID),
		payments: make(map[uuid.UUID]*entity.Payment),
		released: make(map[uuid.UUID]bool),
		stops:    make(map[uuid.UUID][]*entity.Stop),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Trip:    &memTrips{m},
		Seat:    &memSeats{m},
		Booking: &memBookings{m},
		Payment: &memPayments{m},
		Route:   &memRoutes{m},
		Company: &memCompanies{m},
	}
}

func (m *memStore) seat(tripID uuid.UUID, number string) *entity.Seat {
	for _, s := range m.seats[tripID] {
		if s.Number == number {
			return s
		}
	}
	return nil
}

// seatStatus is a test helper reading one seat under the lock.
func (m *memStore) seatStatus(tripID uuid.UUID, number string) entity.SeatStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.seat(tripID, number); s != nil {
		return s.Status
	}
	return ""
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

func (m *memStore) expire(tripID uuid.UUID, now time.Time) int64 {
	var n int64
	for _, s := range m.seats[tripID] {
		if s.HoldExpired(now) {
			s.Status = entity.SeatStatusAvailable
			s.HoldUntil = nil
			s.HoldToken = nil
			s.UpdatedAt = now
			n++
		}
	}
	return n
}

func conflicts(requested []string, ok func(string) bool) []string {
	var out []string
	for _, number := range requested {
		if !ok(number) {
			out = append(out, number)
		}
	}
	return out
}

type memTrips struct{ m *memStore }

func (r *memTrips) CreateWithSeats(ctx context.Context, trip *entity.Trip, seats []*entity.Seat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t := *trip
	r.m.trips[trip.ID] = &t
	for _, s := range seats {
		c := *s
		r.m.seats[trip.ID] = append(r.m.seats[trip.ID], &c)
	}
	return nil
}

func (r *memTrips) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.trips[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

type memSeats struct{ m *memStore }

func (r *memSeats) FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Seat
	for _, s := range r.m.seats[tripID] {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *memSeats) Hold(ctx context.Context, tripID uuid.UUID, numbers []string, token uuid.UUID, now, until time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	missing := conflicts(numbers, func(number string) bool {
		s := r.m.seat(tripID, number)
		return s != nil && (s.Status == entity.SeatStatusAvailable || s.HoldExpired(now))
	})
	if len(missing) > 0 {
		return &repository.SeatConflictError{Seats: missing}
	}

	r.m.expire(tripID, now)
	for _, number := range numbers {
		s := r.m.seat(tripID, number)
		expiry, tok := until, token
		s.Status = entity.SeatStatusHeld
		s.HoldUntil = &expiry
		s.HoldToken = &tok
		s.UpdatedAt = now
	}
	return nil
}

func (r *memSeats) Release(ctx context.Context, tripID uuid.UUID, numbers []string, token *uuid.UUID, now time.Time) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var released []string
	for _, number := range numbers {
		s := r.m.seat(tripID, number)
		if s == nil || s.Status != entity.SeatStatusHeld {
			continue
		}
		if token != nil && (s.HoldToken == nil || *s.HoldToken != *token) {
			continue
		}
		s.Status = entity.SeatStatusAvailable
		s.HoldUntil = nil
		s.HoldToken = nil
		s.UpdatedAt = now
		released = append(released, number)
	}
	return released, nil
}

func (r *memSeats) ExpireStaleHolds(ctx context.Context, tripID uuid.UUID, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.expire(tripID, now), nil
}

func (r *memSeats) ExpireAllStaleHolds(ctx context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for tripID := range r.m.seats {
		n += r.m.expire(tripID, now)
	}
	return n, nil
}

type memBookings struct{ m *memStore }

func (r *memBookings) CreateOccupying(ctx context.Context, booking *entity.Booking, opts repository.OccupyOptions) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	missing := conflicts(booking.Seats, func(number string) bool {
		s := r.m.seat(booking.TripID, number)
		if s == nil {
			return false
		}
		if opts.HoldToken != nil {
			return s.Status == entity.SeatStatusHeld && s.HoldToken != nil &&
				*s.HoldToken == *opts.HoldToken && s.HoldUntil.After(opts.Now)
		}
		return s.Status == entity.SeatStatusAvailable || s.Status == entity.SeatStatusHeld
	})
	if len(missing) > 0 {
		return &repository.SeatConflictError{Seats: missing}
	}

	code := ""
	for attempt := 0; attempt < opts.MaxCodeAttempts; attempt++ {
		candidate := opts.NextCode()
		if _, taken := r.m.codes[candidate]; !taken {
			code = candidate
			break
		}
	}
	if code == "" {
		return repository.ErrCodeSpaceExhausted
	}
	if r.m.insertFault != nil {
		return r.m.insertFault
	}

	for _, number := range booking.Seats {
		s := r.m.seat(booking.TripID, number)
		s.Status = entity.SeatStatusOccupied
		s.HoldUntil = nil
		s.HoldToken = nil
		s.UpdatedAt = opts.Now
	}
	booking.Code = code
	c := *booking
	c.Seats = append([]string(nil), booking.Seats...)
	r.m.bookings[booking.ID] = &c
	r.m.codes[code] = booking.ID
	return nil
}

func (r *memBookings) Cancel(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.bookings[bookingID]
	if !ok || r.m.released[bookingID] {
		return repository.ErrStateChanged
	}
	r.m.released[bookingID] = true
	b.Status = entity.BookingStatusCancelled
	b.UpdatedAt = now
	for _, number := range b.Seats {
		if s := r.m.seat(b.TripID, number); s != nil && s.Status == entity.SeatStatusOccupied {
			s.Status = entity.SeatStatusAvailable
			s.UpdatedAt = now
		}
	}
	return nil
}

func (r *memBookings) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *memBookings) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	r.m.mu.Lock()
	id, ok := r.m.codes[code]
	r.m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *memBookings) FindByTripID(ctx context.Context, tripID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*entity.Booking
	for _, b := range r.m.bookings {
		if b.TripID == tripID {
			c := *b
			all = append(all, &c)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *memBookings) CountByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, b := range r.m.bookings {
		if b.TripID == tripID {
			n++
		}
	}
	return n, nil
}

type memPayments struct{ m *memStore }

func (r *memPayments) RecordOutcome(ctx context.Context, payment *entity.Payment, bookingStatus entity.BookingStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.bookings[payment.BookingID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.Status != entity.BookingStatusPending {
		return repository.ErrStateChanged
	}

	if prev, ok := r.m.payments[payment.BookingID]; ok {
		payment.ID = prev.ID
		payment.CreatedAt = prev.CreatedAt
	}
	c := *payment
	r.m.payments[payment.BookingID] = &c
	b.Status = bookingStatus
	b.UpdatedAt = payment.UpdatedAt
	return nil
}

func (r *memPayments) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.payments[bookingID]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memPayments) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.payments {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

type memRoutes struct{ m *memStore }

func (r *memRoutes) FindAll(ctx context.Context) ([]*entity.Route, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	out := make([]*entity.Route, 0, len(r.m.routes))
	for _, route := range r.m.routes {
		c := *route
		out = append(out, &c)
	}
	return out, nil
}

func (r *memRoutes) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	for _, route := range r.m.routes {
		if route.ID == id {
			c := *route
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRoutes) FindByCities(ctx context.Context, fromCity, toCity string) (*entity.Route, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	for _, route := range r.m.routes {
		switch {
		case route.FromCity == fromCity && route.ToCity == toCity:
			c := *route
			return &c, nil
		case route.FromCity == toCity && route.ToCity == fromCity:
			c := route.Reversed()
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRoutes) FindStops(ctx context.Context, routeID uuid.UUID) ([]*entity.Stop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	out := make([]*entity.Stop, 0, len(r.m.stops[routeID]))
	for _, stop := range r.m.stops[routeID] {
		c := *stop
		out = append(out, &c)
	}
	return out, nil
}

type memCompanies struct{ m *memStore }

func (r *memCompanies) FindAll(ctx context.Context) ([]*entity.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	out := make([]*entity.Company, 0, len(r.m.companies))
	for _, company := range r.m.companies {
		c := *company
		out = append(out, &c)
	}
	return out, nil
}

func (r *memCompanies) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.catalogFault != nil {
		return nil, r.m.catalogFault
	}
	for _, company := range r.m.companies {
		if company.Name == name {
			c := *company
			return &c, nil
		}
	}
	return nil, nil
}
