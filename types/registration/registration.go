package registration

type RegistrationCreateRequest struct {
	OrgID        uint   `json:"org_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Instructions string `json:"instructions" validate:"omitempty"`
}

type ScheduleCreateRequest struct {
	RegistrationID uint   `json:"registration_id" validate:"required"`
	Name           string `json:"name" validate:"required,min=1,max=50"`
	StartTime      string `json:"start_time" validate:"required"` // HH:MM, 24h
	EndTime        string `json:"end_time" validate:"required"`
}

type ScheduleGroupCreateRequest struct {
	RegistrationID   uint   `json:"registration_id" validate:"required"`
	PickupScheduleID uint   `json:"pickup_schedule_id" validate:"required"`
	DropScheduleID   uint   `json:"drop_schedule_id" validate:"required"`
	AllowOneWay      bool   `json:"allow_one_way"`
	Description      string `json:"description" validate:"omitempty,max=500"`
}
