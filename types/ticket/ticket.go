package ticket

type StudentGroupCreateRequest struct {
	OrgID         uint   `json:"org_id" validate:"required"`
	InstitutionID uint   `json:"institution_id" validate:"required"`
	Name          string `json:"name" validate:"required,min=1,max=20"`
}

type ReceiptCreateRequest struct {
	OrgID          uint   `json:"org_id" validate:"required"`
	InstitutionID  uint   `json:"institution_id" validate:"required"`
	RegistrationID uint   `json:"registration_id" validate:"required"`
	ReceiptID      string `json:"receipt_id" validate:"required,min=1,max=500"`
	StudentID      string `json:"student_id" validate:"required,min=1,max=20"`
	StudentGroupID uint   `json:"student_group_id" validate:"required"`
}

// TicketBookRequest books a seat for a student. Each leg (pickup/drop) is
// optional but must be complete when present: record, stop and schedule
// together. One-way tickets carry exactly one leg.
type TicketBookRequest struct {
	RegistrationID uint   `json:"registration_id" validate:"required"`
	InstitutionID  uint   `json:"institution_id" validate:"required"`
	ReceiptSlug    string `json:"receipt_slug" validate:"required"`

	StudentName  string `json:"student_name" validate:"required,min=1,max=200"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	ContactNo    string `json:"contact_no" validate:"omitempty,min=10,max=12"`
	AltContactNo string `json:"alternative_contact_no" validate:"omitempty,min=10,max=12"`

	PickupBusRecordID *uint `json:"pickup_bus_record_id"`
	PickupPointID     *uint `json:"pickup_point_id"`
	PickupScheduleID  *uint `json:"pickup_schedule_id"`

	DropBusRecordID *uint `json:"drop_bus_record_id"`
	DropPointID     *uint `json:"drop_point_id"`
	DropScheduleID  *uint `json:"drop_schedule_id"`
}
