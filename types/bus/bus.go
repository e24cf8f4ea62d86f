package bus

type BusCreateRequest struct {
	OrgID          uint   `json:"org_id" validate:"required"`
	RegistrationNo string `json:"registration_no" validate:"required,min=1,max=100"`
	Capacity       int    `json:"capacity" validate:"required,gt=0"`
}

type BusUpdateRequest struct {
	RegistrationNo string `json:"registration_no" validate:"omitempty,min=1,max=100"`
	Capacity       *int   `json:"capacity" validate:"omitempty,gt=0"`
	IsAvailable    *bool  `json:"is_available"`
}
