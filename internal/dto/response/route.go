package response

import "bus-booking/internal/data/entity"

type RegionResponse struct {
	Name     string `json:"name"`
	ChefLieu string `json:"chef_lieu"`
}

type RouteResponse struct {
	ID          string          `json:"id"`
	FromCity    string          `json:"from_city"`
	ToCity      string          `json:"to_city"`
	Duration    string          `json:"duration"`
	DurationMin int             `json:"duration_min"`
	DurationMax int             `json:"duration_max"`
	Axis        string          `json:"axis"`
	Distance    int             `json:"distance"`
	Region      *RegionResponse `json:"region,omitempty"`
}

type StopResponse struct {
	ID      string `json:"id"`
	RouteID string `json:"route_id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	IsPause bool   `json:"is_pause"`
}

type CompanyResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Logo   string  `json:"logo"`
	Rating float64 `json:"rating"`
}

func RouteToResponse(route *entity.Route) RouteResponse {
	resp := RouteResponse{
		ID:          route.ID.String(),
		FromCity:    route.FromCity,
		ToCity:      route.ToCity,
		Duration:    route.Duration,
		DurationMin: route.DurationMin,
		DurationMax: route.DurationMax,
		Axis:        route.Axis,
		Distance:    route.Distance,
	}
	if route.Region.Name != "" {
		resp.Region = &RegionResponse{Name: route.Region.Name, ChefLieu: route.Region.ChefLieu}
	}
	return resp
}

func StopToResponse(stop *entity.Stop) StopResponse {
	return StopResponse{
		ID:      stop.ID.String(),
		RouteID: stop.RouteID.String(),
		Name:    stop.Name,
		Order:   stop.Order,
		IsPause: stop.IsPause,
	}
}

func CompanyToResponse(company *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:     company.ID.String(),
		Name:   company.Name,
		Logo:   company.Logo,
		Rating: company.Rating,
	}
}
