package database

import (
	"fmt"
	"os"

	"bus-registration/logger"
	"bus-registration/models/bus"
	"bus-registration/models/busrecord"
	logModel "bus-registration/models/log"
	"bus-registration/models/organisation"
	"bus-registration/models/payment"
	"bus-registration/models/registration"
	routeModel "bus-registration/models/route"
	ticketModel "bus-registration/models/ticket"
	"bus-registration/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&organisation.Organisation{},
		&organisation.Institution{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Registration cycle models
	stage2Models := []interface{}{
		&registration.Registration{},
		&registration.Schedule{},
		&registration.ScheduleGroup{},
		&bus.Bus{},
		&routeModel.Route{},
		&routeModel.Stop{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Bus operations and booking models
	stage3Models := []interface{}{
		&busrecord.BusRecord{},
		&busrecord.Trip{},
		&ticketModel.StudentGroup{},
		&ticketModel.Receipt{},
		&ticketModel.Ticket{},
		&ticketModel.TicketEvent{},
		&payment.InstallmentDate{},
		&payment.Payment{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		// Logging
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Trip lookups by route drive the bus search
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_route_id ON trips(route_id)").Error; err != nil {
		return fmt.Errorf("failed to create trip route_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_record_schedule ON trips(record_id, schedule_id)").Error; err != nil {
		return fmt.Errorf("failed to create trip record/schedule index: %w", err)
	}

	// Stop lookups by route
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_stops_route_id ON stops(route_id)").Error; err != nil {
		return fmt.Errorf("failed to create stop route_id index: %w", err)
	}

	// Ticket lookups by leg points (stop transfer) and termination state
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_pickup_point_id ON tickets(pickup_point_id)").Error; err != nil {
		return fmt.Errorf("failed to create ticket pickup_point index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_drop_point_id ON tickets(drop_point_id)").Error; err != nil {
		return fmt.Errorf("failed to create ticket drop_point index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_is_terminated ON tickets(is_terminated)").Error; err != nil {
		return fmt.Errorf("failed to create ticket is_terminated index: %w", err)
	}

	// Receipt expiry sweep
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_receipts_is_expired ON receipts(is_expired)").Error; err != nil {
		return fmt.Errorf("failed to create receipt is_expired index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_trips_record",
			sql: `ALTER TABLE trips ADD CONSTRAINT fk_trips_record
				  FOREIGN KEY (record_id) REFERENCES bus_records(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_trips_route",
			sql: `ALTER TABLE trips ADD CONSTRAINT fk_trips_route
				  FOREIGN KEY (route_id) REFERENCES routes(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_stops_route",
			sql: `ALTER TABLE stops ADD CONSTRAINT fk_stops_route
				  FOREIGN KEY (route_id) REFERENCES routes(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_tickets_receipt",
			sql: `ALTER TABLE tickets ADD CONSTRAINT fk_tickets_receipt
				  FOREIGN KEY (receipt_id) REFERENCES receipts(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
