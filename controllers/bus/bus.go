package bus

import (
	"bus-registration/logger"
	busModel "bus-registration/models/bus"
	"bus-registration/types"
	busTypes "bus-registration/types/bus"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BusController handles bus fleet HTTP requests
type BusController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewBusController creates a new bus controller
func NewBusController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BusController {
	return &BusController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store adds a bus to the organisation's fleet.
func (bc *BusController) Store(c *fiber.Ctx) error {
	var req busTypes.BusCreateRequest
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

	b := busModel.Bus{
		OrgID:          req.OrgID,
		RegistrationNo: req.RegistrationNo,
		Capacity:       req.Capacity,
		IsAvailable:    true,
		Slug:           utils.GenerateUniqueSlug(bc.DB, &busModel.Bus{}, req.RegistrationNo),
	}
	if err := bc.DB.Create(&b).Error; err != nil {
		logger.Error("Failed to create bus", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Bus created",
		Data:    b,
	})
}

// Index lists an organisation's buses.
func (bc *BusController) Index(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid organisation id",
			Data:    nil,
		})
	}

	var buses []busModel.Bus
	if err := bc.DB.Where("org_id = ?", orgID).Order("registration_no").Find(&buses).Error; err != nil {
		logger.Error("Failed to list buses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Buses fetched",
		Data:    buses,
	})
}

// Update edits a bus's registration number, capacity or availability.
func (bc *BusController) Update(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var req busTypes.BusUpdateRequest
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

	var b busModel.Bus
	if err := bc.DB.Where("slug = ?", slug).First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Bus not found",
				Data:    nil,
			})
		}
		logger.Error("Bus lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	updates := map[string]interface{}{}
	if req.RegistrationNo != "" {
		updates["registration_no"] = req.RegistrationNo
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if len(updates) > 0 {
		if err := bc.DB.Model(&b).Updates(updates).Error; err != nil {
			logger.Error("Failed to update bus", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
				Data:    nil,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bus updated",
		Data:    b,
	})
}
