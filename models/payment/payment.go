package payment

import (
	"time"

	"bus-registration/models/organisation"
	"bus-registration/models/registration"
	ticketModel "bus-registration/models/ticket"
)

// Payment modes
const (
	ModeCash   = "cash"
	ModeCheque = "cheque"
	ModeOnline = "online"
	ModeUPI    = "upi"
	ModeCard   = "card"
	ModeOther  = "other"
)

// InstallmentDate represents an installment due date within a registration cycle.
type InstallmentDate struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID          uint                      `gorm:"not null" json:"org_id"`
	RegistrationID uint                      `gorm:"not null;index" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	Title       string    `gorm:"type:varchar(100);not null;default:'Installment'" json:"title"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	Description string    `gorm:"type:varchar(255)" json:"description"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Payment represents a payment recorded against a ticket, optionally tied to
// one installment date (at most one payment per ticket per installment).
type Payment struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID          uint                      `gorm:"not null" json:"org_id"`
	RegistrationID uint                      `gorm:"not null" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	TicketRowID uint               `gorm:"not null;index;uniqueIndex:idx_payments_ticket_installment" json:"ticket_row_id"`
	Ticket      ticketModel.Ticket `gorm:"foreignKey:TicketRowID" json:"-"`

	InstitutionID uint                     `gorm:"not null" json:"institution_id"`
	Institution   organisation.Institution `gorm:"foreignKey:InstitutionID" json:"-"`

	InstallmentDateID *uint            `gorm:"uniqueIndex:idx_payments_ticket_installment" json:"installment_date_id,omitempty"`
	InstallmentDate   *InstallmentDate `gorm:"foreignKey:InstallmentDateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"installment_date,omitempty"`

	PaymentID            string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"payment_id"`
	Amount               float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate          time.Time `gorm:"not null" json:"payment_date"`
	PaymentMode          string    `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_mode"`
	TransactionReference string    `gorm:"type:varchar(255)" json:"transaction_reference"`
	Notes                string    `gorm:"type:text" json:"notes"`

	RecordedByID *uint `json:"recorded_by_id,omitempty"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
