package payment

type InstallmentDateCreateRequest struct {
	OrgID          uint   `json:"org_id" validate:"required"`
	RegistrationID uint   `json:"registration_id" validate:"required"`
	Title          string `json:"title" validate:"required,min=1,max=100"`
	DueDate        string `json:"due_date" validate:"required"` // YYYY-MM-DD
	Description    string `json:"description" validate:"omitempty,max=255"`
}

type PaymentCreateRequest struct {
	TicketSlug        string  `json:"ticket_slug" validate:"required"`
	InstallmentDateID *uint   `json:"installment_date_id"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate       string  `json:"payment_date" validate:"required"` // YYYY-MM-DD
	PaymentMode       string  `json:"payment_mode" validate:"required,oneof=cash cheque online upi card other"`

	TransactionReference string `json:"transaction_reference" validate:"omitempty,max=255"`
	Notes                string `json:"notes" validate:"omitempty"`
}
