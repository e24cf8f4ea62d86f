package routes

import (
	"bus-registration/constants"
	"bus-registration/controllers/bus"
	"bus-registration/controllers/busrecord"
	"bus-registration/controllers/payment"
	"bus-registration/controllers/registration"
	"bus-registration/controllers/route"
	"bus-registration/controllers/ticket"
	"bus-registration/logger"
	"bus-registration/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	registrationController := registration.NewRegistrationController(db, asyncLogger)
	busController := bus.NewBusController(db, asyncLogger)
	busRecordController := busrecord.NewBusRecordController(db, asyncLogger)
	routeController := route.NewRouteController(db, asyncLogger)
	ticketController := ticket.NewTicketController(db, asyncLogger)
	paymentController := payment.NewPaymentController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "bus-registration", "status": "ok"})
	})

	api := app.Group("/api")

	/*=============================================================================
	| Registration Routes
	===============================================================================*/
	registrationGroup := api.Group("/registration")

	registrationGroup.Post("/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), registrationController.Store)
	registrationGroup.Get("/org/:orgID", middleware.RequireAuthentication(),
		registrationController.Index)
	registrationGroup.Post("/:slug/activate", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), registrationController.Activate)
	registrationGroup.Post("/schedule/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), registrationController.StoreSchedule)
	registrationGroup.Post("/schedule-group/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), registrationController.StoreScheduleGroup)

	/*=============================================================================
	| Bus & Bus Record Routes
	===============================================================================*/
	busGroup := api.Group("/bus")

	busGroup.Post("/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), busController.Store)
	busGroup.Get("/org/:orgID", middleware.RequireAuthentication(), busController.Index)
	busGroup.Put("/:slug", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), busController.Update)

	recordGroup := api.Group("/bus-record")

	recordGroup.Post("/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), busRecordController.Store)
	recordGroup.Post("/trip/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), busRecordController.StoreTrip)
	recordGroup.Get("/search", middleware.RequirePermissions(
		constants.BookingPermissions...,
	), busRecordController.Search)
	recordGroup.Get("/:slug/availability", middleware.RequireAuthentication(),
		busRecordController.Availability)
	recordGroup.Put("/:slug/bus", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), busRecordController.ReplaceBus)

	/*=============================================================================
	| Route & Stop Routes
	===============================================================================*/
	routeGroup := api.Group("/route")

	routeGroup.Post("/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), routeController.Store)
	routeGroup.Get("/registration/:registrationID", middleware.RequireAuthentication(),
		routeController.Index)
	routeGroup.Post("/stop/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), routeController.StoreStop)
	routeGroup.Post("/stop/:stopID/move", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), routeController.MoveStop)

	/*=============================================================================
	| Ticket Routes
	===============================================================================*/
	ticketGroup := api.Group("/ticket")

	ticketGroup.Post("/student-group/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), ticketController.StoreStudentGroup)
	ticketGroup.Post("/receipt/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), ticketController.StoreReceipt)
	ticketGroup.Post("/book", middleware.RequirePermissions(
		constants.BookingPermissions...,
	), ticketController.Book)
	ticketGroup.Get("/registration/:registrationID", middleware.RequireAuthentication(),
		ticketController.Index)
	ticketGroup.Get("/:slug", middleware.RequireAuthentication(), ticketController.Show)
	ticketGroup.Post("/:slug/terminate", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), ticketController.Terminate)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payment")

	paymentGroup.Post("/installment-date/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), paymentController.StoreInstallmentDate)
	paymentGroup.Post("/create", middleware.RequirePermissions(
		constants.AdminPermissions...,
	), paymentController.Store)
	paymentGroup.Get("/ticket/:slug", middleware.RequireAuthentication(),
		paymentController.IndexByTicket)
	paymentGroup.Get("/ticket/:slug/pending-installments", middleware.RequireAuthentication(),
		paymentController.PendingInstallments)
}
