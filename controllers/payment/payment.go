package payment

import (
	"fmt"
	"time"

	"bus-registration/logger"
	paymentModel "bus-registration/models/payment"
	ticketModel "bus-registration/models/ticket"
	"bus-registration/types"
	paymentTypes "bus-registration/types/payment"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentController handles installment dates and ticket payments
type PaymentController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// StoreInstallmentDate adds an installment due date to a registration.
func (pc *PaymentController) StoreInstallmentDate(c *fiber.Ctx) error {
	var req paymentTypes.InstallmentDateCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "due_date must be YYYY-MM-DD",
			Data:    nil,
		})
	}

	installment := paymentModel.InstallmentDate{
		OrgID:          req.OrgID,
		RegistrationID: req.RegistrationID,
		Title:          req.Title,
		DueDate:        dueDate,
		Description:    req.Description,
		Slug:           utils.GenerateUniqueSlug(pc.DB, &paymentModel.InstallmentDate{}, req.Title),
	}
	if err := pc.DB.Create(&installment).Error; err != nil {
		logger.Error("Failed to create installment date", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Installment date created",
		Data:    installment,
	})
}

// Store records a payment against a ticket, at most one per installment.
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "payment_date must be YYYY-MM-DD",
			Data:    nil,
		})
	}

	var t ticketModel.Ticket
	if err := pc.DB.Where("slug = ?", req.TicketSlug).First(&t).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Ticket not found",
			Data:    nil,
		})
	}
	if t.IsTerminated {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Cannot record payment on a terminated ticket",
			Data:    nil,
		})
	}

	payment := paymentModel.Payment{
		OrgID:             t.OrgID,
		RegistrationID:    t.RegistrationID,
		TicketRowID:       t.ID,
		InstitutionID:     t.InstitutionID,
		InstallmentDateID: req.InstallmentDateID,

		PaymentID:            uuid.NewString(),
		Amount:               req.Amount,
		PaymentDate:          paymentDate,
		PaymentMode:          req.PaymentMode,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,

		Slug: utils.GenerateUniqueSlug(pc.DB, &paymentModel.Payment{}, t.TicketID+" payment"),
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		logger.Error("Failed to record payment", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Payment already recorded for this installment",
			Data:    nil,
		})
	}

	logger.Info(fmt.Sprintf("Payment %s of %.2f recorded for ticket %s", payment.PaymentID, payment.Amount, t.TicketID))
	err = c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment recorded",
		Data:    payment,
	})
	pc.Logger.Log(utils.CreateLogEntry(c))
	return err
}

// PendingInstallments lists the installment dates due up to the end of today
// that have no payment recorded against the ticket yet.
func (pc *PaymentController) PendingInstallments(c *fiber.Ctx) error {
	ticketSlug := c.Params("slug")

	var t ticketModel.Ticket
	if err := pc.DB.Where("slug = ?", ticketSlug).First(&t).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Ticket not found",
			Data:    nil,
		})
	}

	var pending []paymentModel.InstallmentDate
	err := pc.DB.Where("registration_id = ? AND due_date <= ?", t.RegistrationID, utils.EndOfToday()).
		Where("id NOT IN (?)", pc.DB.Model(&paymentModel.Payment{}).
			Select("installment_date_id").
			Where("ticket_row_id = ? AND installment_date_id IS NOT NULL", t.ID)).
		Order("due_date").Find(&pending).Error
	if err != nil {
		logger.Error("Failed to list pending installments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending installments fetched",
		Data:    pending,
	})
}

// IndexByTicket lists every payment recorded against a ticket.
func (pc *PaymentController) IndexByTicket(c *fiber.Ctx) error {
	ticketSlug := c.Params("slug")

	var t ticketModel.Ticket
	if err := pc.DB.Where("slug = ?", ticketSlug).First(&t).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Ticket not found",
			Data:    nil,
		})
	}

	var payments []paymentModel.Payment
	err := pc.DB.Preload("InstallmentDate").
		Where("ticket_row_id = ?", t.ID).Order("payment_date").Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments fetched",
		Data:    payments,
	})
}
