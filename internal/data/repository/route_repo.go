package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const routeColumns = `
	r.id, r.from_city, r.to_city, r.duration, r.duration_min, r.duration_max, r.axis, r.distance,
	reg.id, reg.name, reg.chef_lieu
`

type RouteRepository interface {
	FindAll(ctx context.Context) ([]*entity.Route, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindByCities(ctx context.Context, fromCity, toCity string) (*entity.Route, error)
	FindStops(ctx context.Context, routeID uuid.UUID) ([]*entity.Stop, error)
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

func scanRoute(row pgx.Row) (*entity.Route, error) {
	var route entity.Route
	err := row.Scan(
		&route.ID,
		&route.FromCity,
		&route.ToCity,
		&route.Duration,
		&route.DurationMin,
		&route.DurationMax,
		&route.Axis,
		&route.Distance,
		&route.Region.ID,
		&route.Region.Name,
		&route.Region.ChefLieu,
	)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// FindAll lists every route, shortest first.
func (r *routeRepository) FindAll(ctx context.Context) ([]*entity.Route, error) {
	query := `SELECT ` + routeColumns + `
		FROM routes r
		JOIN regions reg ON r.region_id = reg.id
		ORDER BY r.distance, r.to_city
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list routes", zap.Error(err))
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var routes []*entity.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}

	return routes, nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	query := `SELECT ` + routeColumns + `
		FROM routes r
		JOIN regions reg ON r.region_id = reg.id
		WHERE r.id = $1
	`

	route, err := scanRoute(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return nil, fmt.Errorf("find route by ID %s: %w", id.String(), err)
	}

	return route, nil
}

// FindByCities matches the road in either direction. A route stored the
// other way round comes back reversed so FromCity is always fromCity.
func (r *routeRepository) FindByCities(ctx context.Context, fromCity, toCity string) (*entity.Route, error) {
	query := `SELECT ` + routeColumns + `
		FROM routes r
		JOIN regions reg ON r.region_id = reg.id
		WHERE (r.from_city = $1 AND r.to_city = $2)
		   OR (r.from_city = $2 AND r.to_city = $1)
		ORDER BY (r.from_city = $1) DESC
		LIMIT 1
	`

	route, err := scanRoute(r.db.QueryRow(ctx, query, fromCity, toCity))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by cities",
			zap.Error(err),
			zap.String("from_city", fromCity),
			zap.String("to_city", toCity),
		)
		return nil, fmt.Errorf("find route %s - %s: %w", fromCity, toCity, err)
	}

	if route.FromCity != fromCity {
		reversed := route.Reversed()
		route = &reversed
	}
	return route, nil
}

func (r *routeRepository) FindStops(ctx context.Context, routeID uuid.UUID) ([]*entity.Stop, error) {
	query := `
		SELECT id, route_id, name, stop_order, is_pause
		FROM stops
		WHERE route_id = $1
		ORDER BY stop_order
	`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		r.log.Error("Failed to list stops",
			zap.Error(err),
			zap.String("route_id", routeID.String()),
		)
		return nil, fmt.Errorf("list stops for route %s: %w", routeID.String(), err)
	}
	defer rows.Close()

	var stops []*entity.Stop
	for rows.Next() {
		var stop entity.Stop
		if err := rows.Scan(&stop.ID, &stop.RouteID, &stop.Name, &stop.Order, &stop.IsPause); err != nil {
			return nil, fmt.Errorf("scan stop: %w", err)
		}
		stops = append(stops, &stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stops: %w", err)
	}

	return stops, nil
}
