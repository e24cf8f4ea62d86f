package route

type StopSpec struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type RouteCreateRequest struct {
	OrgID          uint       `json:"org_id" validate:"required"`
	RegistrationID uint       `json:"registration_id" validate:"required"`
	Name           string     `json:"name" validate:"required,min=1,max=200"`
	TotalKm        *float64   `json:"total_km" validate:"omitempty,gt=0"`
	Stops          []StopSpec `json:"stops" validate:"omitempty,dive"`
}

type StopCreateRequest struct {
	RouteID uint   `json:"route_id" validate:"required"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
}

// MoveStopRequest moves a stop to another route; every non-terminated ticket
// boarding at the stop is reassigned onto buses serving the destination route.
type MoveStopRequest struct {
	NewRouteID uint `json:"new_route_id" validate:"required"`
}
