package registration

import (
	"fmt"
	"time"

	"bus-registration/logger"
	registrationModel "bus-registration/models/registration"
	"bus-registration/types"
	registrationTypes "bus-registration/types/registration"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegistrationController handles registration-cycle HTTP requests
type RegistrationController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewRegistrationController creates a new registration controller
func NewRegistrationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RegistrationController {
	return &RegistrationController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates a new registration cycle with a unique join code.
func (rc *RegistrationController) Store(c *fiber.Ctx) error {
	var req registrationTypes.RegistrationCreateRequest
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

	var reg registrationModel.Registration
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueCode(tx, &registrationModel.Registration{}, "code", 8)
		if err != nil {
			return err
		}
		reg = registrationModel.Registration{
			OrgID:        req.OrgID,
			Name:         req.Name,
			Instructions: req.Instructions,
			Code:         code,
			Slug:         utils.GenerateUniqueSlug(tx, &registrationModel.Registration{}, req.Name),
		}
		return tx.Create(&reg).Error
	})
	if err != nil {
		logger.Error("Failed to create registration", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Registration created",
		Data:    reg,
	})
}

// Index lists an organisation's registrations, newest first.
func (rc *RegistrationController) Index(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid organisation id",
			Data:    nil,
		})
	}

	var regs []registrationModel.Registration
	if err := rc.DB.Where("org_id = ?", orgID).Order("created_at DESC").Find(&regs).Error; err != nil {
		logger.Error("Failed to list registrations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Registrations fetched",
		Data:    regs,
	})
}

// Activate marks one registration active; any other active registration of
// the organisation is deactivated in the same transaction.
func (rc *RegistrationController) Activate(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var reg registrationModel.Registration
	if err := rc.DB.Where("slug = ?", slug).First(&reg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Registration not found",
				Data:    nil,
			})
		}
		logger.Error("Registration lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		return reg.Activate(tx)
	})
	if err != nil {
		logger.Error("Failed to activate registration", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	logger.Info(fmt.Sprintf("Registration %s activated for org %d", reg.Code, reg.OrgID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Registration activated",
		Data:    reg,
	})
}

// StoreSchedule adds a named time window to a registration.
func (rc *RegistrationController) StoreSchedule(c *fiber.Ctx) error {
	var req registrationTypes.ScheduleCreateRequest
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

	startTime, err1 := time.Parse("15:04", req.StartTime)
	endTime, err2 := time.Parse("15:04", req.EndTime)
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "start_time and end_time must be HH:MM",
			Data:    nil,
		})
	}

	var reg registrationModel.Registration
	if err := rc.DB.First(&reg, req.RegistrationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Registration not found",
			Data:    nil,
		})
	}

	schedule := registrationModel.Schedule{
		OrgID:          reg.OrgID,
		RegistrationID: reg.ID,
		Name:           utils.TitleCase(req.Name),
		StartTime:      startTime,
		EndTime:        endTime,
		Slug:           utils.GenerateUniqueSlug(rc.DB, &registrationModel.Schedule{}, reg.Code+" "+req.Name),
	}
	if err := rc.DB.Create(&schedule).Error; err != nil {
		logger.Error("Failed to create schedule", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Schedule created",
		Data:    schedule,
	})
}

// StoreScheduleGroup pairs a pickup and a drop schedule for booking.
func (rc *RegistrationController) StoreScheduleGroup(c *fiber.Ctx) error {
	var req registrationTypes.ScheduleGroupCreateRequest
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
	if req.PickupScheduleID == req.DropScheduleID {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Pickup and drop schedules must differ",
			Data:    nil,
		})
	}

	group := registrationModel.ScheduleGroup{
		RegistrationID:   req.RegistrationID,
		PickupScheduleID: req.PickupScheduleID,
		DropScheduleID:   req.DropScheduleID,
		AllowOneWay:      req.AllowOneWay,
		Description:      req.Description,
	}
	if err := rc.DB.Create(&group).Error; err != nil {
		logger.Error("Failed to create schedule group", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Schedule group created",
		Data:    group,
	})
}
