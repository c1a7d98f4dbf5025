package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/placepulse/notifier/internal/dispatch"
	"github.com/placepulse/notifier/internal/handlers"
	"github.com/placepulse/notifier/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, serviceName string, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, dispatcher *dispatch.Dispatcher) {
	healthHandler := handlers.NewHealthHandler(serviceName)
	healthHandler.RegisterHealthRoutes(e)

	notifyHandler := handlers.NewNotifyHandler(userRepo, dispatcher)
	notifyHandler.RegisterNotifyRoutes(e)
	log.Println("Notify routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notifRepo)
	notificationHandler.RegisterNotificationRoutes(e)
	log.Println("Notification routes configured.")
}
