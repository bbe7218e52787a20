package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rllynch/pi-garage-smartthings/pkg/api/handlers"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	controller sensor.Controller
	subscriber sensor.EventSubscriber
}

// NewRouter creates a new API router
func NewRouter(controller sensor.Controller, subscriber sensor.EventSubscriber) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		controller: controller,
		subscriber: subscriber,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.controller)
	r.engine.GET("/health", healthHandler.Health)

	// Notification callback at root. Sensors deliver event payloads to
	// the CALLBACK URL they were given in the SUBSCRIBE request.
	notifyHandler := handlers.NewNotifyHandler(r.controller)
	r.engine.POST("/notify", notifyHandler.Notify)
	r.engine.POST("/notify/:suffix", notifyHandler.Notify)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Raw message ingest
		v1.POST("/messages", notifyHandler.IngestMessage)

		// Event stream
		eventsHandler := handlers.NewEventsHandler(r.subscriber)
		v1.GET("/events", eventsHandler.Events)

		// Sensors
		sensorsHandler := handlers.NewSensorsHandler(r.controller)
		sensors := v1.Group("/sensors")
		{
			sensors.GET("", sensorsHandler.ListSensors)
			sensors.POST("", sensorsHandler.RegisterSensor)
			sensors.GET("/:usn", sensorsHandler.GetSensor)
			sensors.DELETE("/:usn", sensorsHandler.RemoveSensor)

			// Sensor actions
			sensors.POST("/:usn/poll", sensorsHandler.PollSensor)
			sensors.POST("/:usn/refresh", sensorsHandler.RefreshSensor)
			sensors.POST("/:usn/subscribe", sensorsHandler.SubscribeSensor)
		}
	}
}

// Engine exposes the underlying Gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
