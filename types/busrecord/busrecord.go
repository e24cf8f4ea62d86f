package busrecord

// TripSpec declares one trip a bus record will serve: a schedule on a route.
type TripSpec struct {
	ScheduleID uint `json:"schedule_id" validate:"required"`
	RouteID    uint `json:"route_id" validate:"required"`
}

type BusRecordCreateRequest struct {
	OrgID          uint       `json:"org_id" validate:"required"`
	RegistrationID uint       `json:"registration_id" validate:"required"`
	BusID          *uint      `json:"bus_id"`
	Label          string     `json:"label" validate:"required,min=1,max=20"`
	Trips          []TripSpec `json:"trips" validate:"required,min=1,dive"`
}

type TripCreateRequest struct {
	RecordID   uint `json:"record_id" validate:"required"`
	ScheduleID uint `json:"schedule_id" validate:"required"`
	RouteID    uint `json:"route_id" validate:"required"`
}

// BusRecordReplaceBusRequest swaps the physical bus on a record. The new bus
// must seat the record's current minimum required capacity.
type BusRecordReplaceBusRequest struct {
	BusID *uint `json:"bus_id"`
}

type TripAvailability struct {
	TripID           uint    `json:"trip_id"`
	ScheduleID       uint    `json:"schedule_id"`
	ScheduleName     string  `json:"schedule_name"`
	RouteID          uint    `json:"route_id"`
	RouteName        string  `json:"route_name"`
	BookingCount     int     `json:"booking_count"`
	Capacity         int     `json:"capacity"`
	FilledPercentage float64 `json:"filled_percentage"`
	AvailableSeats   int     `json:"available_seats"`
}
