package route

import (
	"fmt"

	"bus-registration/logger"
	routeModel "bus-registration/models/route"
	"bus-registration/services/allocation"
	"bus-registration/types"
	routeTypes "bus-registration/types/route"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RouteController handles route and stop HTTP requests
type RouteController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewRouteController creates a new route controller
func NewRouteController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RouteController {
	return &RouteController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates a route, optionally with its initial stops.
func (rc *RouteController) Store(c *fiber.Ctx) error {
	var req routeTypes.RouteCreateRequest
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

	var route routeModel.Route
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		route = routeModel.Route{
			OrgID:          req.OrgID,
			RegistrationID: req.RegistrationID,
			Name:           req.Name,
			TotalKm:        req.TotalKm,
			Slug:           utils.GenerateUniqueSlug(tx, &routeModel.Route{}, req.Name),
		}
		if err := tx.Create(&route).Error; err != nil {
			return err
		}
		for _, spec := range req.Stops {
			stop := routeModel.Stop{
				OrgID:          req.OrgID,
				RegistrationID: req.RegistrationID,
				RouteID:        route.ID,
				Name:           spec.Name,
				Slug:           utils.GenerateUniqueSlug(tx, &routeModel.Stop{}, req.Name+" "+spec.Name),
			}
			if err := tx.Create(&stop).Error; err != nil {
				return err
			}
			route.Stops = append(route.Stops, stop)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create route", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Route created",
		Data:    route,
	})
}

// Index lists a registration's routes with their stops.
func (rc *RouteController) Index(c *fiber.Ctx) error {
	registrationID, err := c.ParamsInt("registrationID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid registration id",
			Data:    nil,
		})
	}

	var routes []routeModel.Route
	err = rc.DB.Preload("Stops").
		Where("registration_id = ?", registrationID).Order("name").Find(&routes).Error
	if err != nil {
		logger.Error("Failed to list routes", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Routes fetched",
		Data:    routes,
	})
}

// StoreStop adds a stop to an existing route.
func (rc *RouteController) StoreStop(c *fiber.Ctx) error {
	var req routeTypes.StopCreateRequest
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

	var route routeModel.Route
	if err := rc.DB.First(&route, req.RouteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Route not found",
			Data:    nil,
		})
	}

	stop := routeModel.Stop{
		OrgID:          route.OrgID,
		RegistrationID: route.RegistrationID,
		RouteID:        route.ID,
		Name:           req.Name,
		Slug:           utils.GenerateUniqueSlug(rc.DB, &routeModel.Stop{}, route.Name+" "+req.Name),
	}
	if err := rc.DB.Create(&stop).Error; err != nil {
		logger.Error("Failed to create stop", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Stop created",
		Data:    stop,
	})
}

// MoveStop transfers a stop to another route, reassigning every
// non-terminated ticket boarding at the stop onto buses that serve the
// destination route. Nothing changes when any ticket cannot be seated.
func (rc *RouteController) MoveStop(c *fiber.Ctx) error {
	stopID, err := c.ParamsInt("stopID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid stop id",
			Data:    nil,
		})
	}

	var req routeTypes.MoveStopRequest
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

	updatedBy := utils.UsernameFromClaims(c)
	plan, err := allocation.MoveStopAndUpdateTickets(rc.DB, uint(stopID), req.NewRouteID, updatedBy)
	if err != nil {
		logger.Error(fmt.Sprintf("Stop transfer failed for stop %d", stopID), err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: err.Error(),
			Data:    nil,
		})
	}

	logger.Info(fmt.Sprintf("Stop %d moved to route %d, %d tickets reassigned",
		stopID, req.NewRouteID, len(plan.Assignments)))
	err = c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Stop moved, %d tickets reassigned", len(plan.Assignments)),
		Data:    plan,
	})
	rc.Logger.Log(utils.CreateLogEntry(c))
	return err
}
