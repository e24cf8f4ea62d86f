package busrecord

import (
	"fmt"
	"strconv"
	"strings"

	"bus-registration/logger"
	busModel "bus-registration/models/bus"
	busrecordModel "bus-registration/models/busrecord"
	"bus-registration/services/allocation"
	"bus-registration/types"
	busrecordTypes "bus-registration/types/busrecord"
	"bus-registration/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BusRecordController handles bus assignment and seat availability requests
type BusRecordController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewBusRecordController creates a new bus record controller
func NewBusRecordController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BusRecordController {
	return &BusRecordController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store assigns a bus to a registration and creates the trips it will serve.
func (brc *BusRecordController) Store(c *fiber.Ctx) error {
	var req busrecordTypes.BusRecordCreateRequest
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

	var record busrecordModel.BusRecord
	err := brc.DB.Transaction(func(tx *gorm.DB) error {
		record = busrecordModel.BusRecord{
			OrgID:          req.OrgID,
			BusID:          req.BusID,
			RegistrationID: req.RegistrationID,
			Label:          utils.TitleCase(req.Label),
			Slug:           utils.GenerateUniqueSlug(tx, &busrecordModel.BusRecord{}, req.Label),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, spec := range req.Trips {
			trip := busrecordModel.Trip{
				RegistrationID: req.RegistrationID,
				RecordID:       record.ID,
				ScheduleID:     spec.ScheduleID,
				RouteID:        spec.RouteID,
			}
			if err := tx.Create(&trip).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create bus record", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Bus record created",
		Data:    record,
	})
}

// StoreTrip adds a (schedule, route) trip to an existing record. Duplicate
// trips are rejected by the unique index on
// (registration, record, schedule, route).
func (brc *BusRecordController) StoreTrip(c *fiber.Ctx) error {
	var req busrecordTypes.TripCreateRequest
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

	var record busrecordModel.BusRecord
	if err := brc.DB.First(&record, req.RecordID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Bus record not found",
			Data:    nil,
		})
	}

	trip := busrecordModel.Trip{
		RegistrationID: record.RegistrationID,
		RecordID:       record.ID,
		ScheduleID:     req.ScheduleID,
		RouteID:        req.RouteID,
	}
	if err := brc.DB.Create(&trip).Error; err != nil {
		logger.Error("Failed to create trip", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Trip already exists for this record, schedule and route",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Trip created",
		Data:    trip,
	})
}

// Search returns the bus records able to take one more booking at a stop for
// every requested schedule. schedule_ids is a comma-separated list.
func (brc *BusRecordController) Search(c *fiber.Ctx) error {
	scheduleIDs, err := parseIDList(c.Query("schedule_ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid schedule_ids",
			Data:    nil,
		})
	}
	stopID, err := strconv.ParseUint(c.Query("stop_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid stop_id",
			Data:    nil,
		})
	}

	records, err := allocation.SearchBusRecords(brc.DB, scheduleIDs, uint(stopID))
	if err == allocation.ErrScheduleRequired {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}
	if err != nil {
		logger.Error("Bus record search failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bus records fetched",
		Data:    records,
	})
}

// Availability reports per-trip seat occupancy for one bus record.
func (brc *BusRecordController) Availability(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var record busrecordModel.BusRecord
	err := brc.DB.Preload("Bus").
		Preload("Trips").Preload("Trips.Schedule").Preload("Trips.Route").
		Where("slug = ?", slug).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Bus record not found",
				Data:    nil,
			})
		}
		logger.Error("Bus record lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	availability := make([]busrecordTypes.TripAvailability, 0, len(record.Trips))
	for i := range record.Trips {
		trip := &record.Trips[i]
		trip.Record = &record
		entry := busrecordTypes.TripAvailability{
			TripID:           trip.ID,
			ScheduleID:       trip.ScheduleID,
			ScheduleName:     trip.Schedule.Name,
			RouteID:          trip.RouteID,
			BookingCount:     trip.BookingCount,
			Capacity:         record.Capacity(),
			FilledPercentage: trip.TotalFilledSeatsPercentage(),
			AvailableSeats:   trip.TotalAvailableSeatsCount(),
		}
		if trip.Route != nil {
			entry.RouteName = trip.Route.Name
		}
		availability = append(availability, entry)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Trip availability fetched",
		Data:    availability,
	})
}

// ReplaceBus swaps the physical bus on a record. The incoming bus must seat
// the record's minimum required capacity; detaching the bus (null bus_id) is
// always allowed and the capacity helpers fall back to zero.
func (brc *BusRecordController) ReplaceBus(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var req busrecordTypes.BusRecordReplaceBusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	var record busrecordModel.BusRecord
	if err := brc.DB.Where("slug = ?", slug).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Bus record not found",
				Data:    nil,
			})
		}
		logger.Error("Bus record lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	if req.BusID != nil {
		var newBus busModel.Bus
		if err := brc.DB.First(&newBus, *req.BusID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Bus not found",
				Data:    nil,
			})
		}
		if newBus.Capacity < record.MinRequiredCapacity {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status: fiber.StatusConflict,
				Message: fmt.Sprintf("Bus %s seats %d but the record requires at least %d",
					newBus.RegistrationNo, newBus.Capacity, record.MinRequiredCapacity),
				Data: nil,
			})
		}
	}

	if err := brc.DB.Model(&record).Update("bus_id", req.BusID).Error; err != nil {
		logger.Error("Failed to replace bus", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bus replaced",
		Data:    record,
	})
}

func parseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
