package ticket

import (
	"fmt"
	"strings"

	"bus-registration/logger"
	ticketModel "bus-registration/models/ticket"
	"bus-registration/services/allocation"
	"bus-registration/types"
	ticketTypes "bus-registration/types/ticket"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// TicketController handles receipts, booking and termination
type TicketController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewTicketController creates a new ticket controller
func NewTicketController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TicketController {
	return &TicketController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// StoreStudentGroup creates a class/group inside an institution.
func (tc *TicketController) StoreStudentGroup(c *fiber.Ctx) error {
	var req ticketTypes.StudentGroupCreateRequest
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

	group := ticketModel.StudentGroup{
		OrgID:         req.OrgID,
		InstitutionID: req.InstitutionID,
		Name:          strings.ToUpper(req.Name),
		Slug:          utils.GenerateUniqueSlug(tc.DB, &ticketModel.StudentGroup{}, req.Name),
	}
	if err := tc.DB.Create(&group).Error; err != nil {
		logger.Error("Failed to create student group", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Student group created",
		Data:    group,
	})
}

// StoreReceipt registers a fee receipt entitling one student to book.
func (tc *TicketController) StoreReceipt(c *fiber.Ctx) error {
	var req ticketTypes.ReceiptCreateRequest
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

	receipt := ticketModel.Receipt{
		OrgID:          req.OrgID,
		InstitutionID:  req.InstitutionID,
		RegistrationID: req.RegistrationID,
		ReceiptID:      req.ReceiptID,
		StudentID:      strings.ToUpper(req.StudentID),
		StudentGroupID: req.StudentGroupID,
		Slug:           utils.GenerateUniqueSlug(tc.DB, &ticketModel.Receipt{}, req.ReceiptID+" "+req.StudentID),
	}
	if err := tc.DB.Create(&receipt).Error; err != nil {
		logger.Error("Failed to create receipt", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Receipt already exists for this student and registration",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Receipt created",
		Data:    receipt,
	})
}

// Book creates a ticket against a receipt and claims its trip seats.
func (tc *TicketController) Book(c *fiber.Ctx) error {
	var req ticketTypes.TicketBookRequest
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
	if msg := validateLegs(&req); msg != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: msg,
			Data:    nil,
		})
	}

	var receipt ticketModel.Receipt
	err := tc.DB.Where("slug = ? AND registration_id = ?", req.ReceiptSlug, req.RegistrationID).
		First(&receipt).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Receipt not found",
			Data:    nil,
		})
	}
	if receipt.IsExpired {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Receipt has expired",
			Data:    nil,
		})
	}

	var used int64
	if err := tc.DB.Model(&ticketModel.Ticket{}).Where("receipt_id = ?", receipt.ID).Count(&used).Error; err != nil {
		logger.Error("Receipt usage check failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if used > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "A ticket is already booked against this receipt",
			Data:    nil,
		})
	}

	ticketType := ticketModel.TicketTypeTwoWay
	if req.PickupPointID == nil || req.DropPointID == nil {
		ticketType = ticketModel.TicketTypeOneWay
	}

	t := &ticketModel.Ticket{}
	if err := copier.Copy(t, &req); err != nil {
		logger.Error("Failed to map booking request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking failed",
			Data:    nil,
		})
	}
	t.OrgID = receipt.OrgID
	t.StudentGroupID = receipt.StudentGroupID
	t.ReceiptID = receipt.ID
	t.StudentID = receipt.StudentID
	t.TicketType = ticketType
	t.Status = true

	createdBy := utils.UsernameFromClaims(c)
	if err := allocation.BookTicket(tc.DB, t, createdBy); err != nil {
		logger.Error("Failed to book ticket", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking failed",
			Data:    nil,
		})
	}

	logger.Info(fmt.Sprintf("Ticket %s booked for student %s", t.TicketID, t.StudentID))
	err = c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Ticket booked",
		Data:    t,
	})
	tc.Logger.Log(utils.CreateLogEntry(c))
	return err
}

// Index lists a registration's tickets, optionally narrowed to one
// institution via ?institution_id=.
func (tc *TicketController) Index(c *fiber.Ctx) error {
	registrationID, err := c.ParamsInt("registrationID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid registration id",
			Data:    nil,
		})
	}

	query := tc.DB.Where("registration_id = ?", registrationID)
	if institutionID := c.QueryInt("institution_id"); institutionID > 0 {
		query = query.Where("institution_id = ?", institutionID)
	}

	var tickets []ticketModel.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		logger.Error("Failed to list tickets", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tickets fetched",
		Data:    tickets,
	})
}

// Show fetches a ticket by slug with its seat assignments.
func (tc *TicketController) Show(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var t ticketModel.Ticket
	err := tc.DB.Preload("PickupBusRecord").Preload("PickupBusRecord.Bus").
		Preload("DropBusRecord").Preload("DropBusRecord.Bus").
		Preload("PickupPoint").Preload("DropPoint").
		Preload("PickupSchedule").Preload("DropSchedule").
		Where("slug = ?", slug).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Ticket not found",
				Data:    nil,
			})
		}
		logger.Error("Ticket lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket fetched",
		Data:    t,
	})
}

// Terminate releases a ticket's seats and marks it terminated. Terminating
// twice is a no-op and still returns success.
func (tc *TicketController) Terminate(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var t ticketModel.Ticket
	if err := tc.DB.Where("slug = ?", slug).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Ticket not found",
				Data:    nil,
			})
		}
		logger.Error("Ticket lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	updatedBy := utils.UsernameFromClaims(c)
	if err := allocation.TerminateTicket(tc.DB, &t, updatedBy); err != nil {
		logger.Error(fmt.Sprintf("Failed to terminate ticket %s", t.TicketID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Termination failed",
			Data:    nil,
		})
	}

	err := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket terminated",
		Data:    t,
	})
	tc.Logger.Log(utils.CreateLogEntry(c))
	return err
}

// validateLegs checks that each present leg is complete and at least one leg
// exists; returns an error message or empty string.
func validateLegs(req *ticketTypes.TicketBookRequest) string {
	pickupFields := 0
	if req.PickupBusRecordID != nil {
		pickupFields++
	}
	if req.PickupPointID != nil {
		pickupFields++
	}
	if req.PickupScheduleID != nil {
		pickupFields++
	}
	dropFields := 0
	if req.DropBusRecordID != nil {
		dropFields++
	}
	if req.DropPointID != nil {
		dropFields++
	}
	if req.DropScheduleID != nil {
		dropFields++
	}

	if pickupFields != 0 && pickupFields != 3 {
		return "Pickup leg needs bus record, point and schedule together"
	}
	if dropFields != 0 && dropFields != 3 {
		return "Drop leg needs bus record, point and schedule together"
	}
	if pickupFields == 0 && dropFields == 0 {
		return "At least one leg (pickup or drop) is required"
	}
	return ""
}
