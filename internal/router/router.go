// Package router assembles the echo instance: global middleware, the
// public health routes and the inventory routes.
package router

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/home-inventory/internal/config"
	"github.com/iliyamo/home-inventory/internal/handler"
	"github.com/iliyamo/home-inventory/internal/live"
	"github.com/iliyamo/home-inventory/internal/middleware"
	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/repository"
)

// Deps carries everything the routes need.  Redis may be nil, which
// disables caching and rate limiting regardless of their config.
type Deps struct {
	Store      *repository.Store
	Publisher  queue.Publisher
	Hub        *live.Hub // optional live feed at /ws
	Redis      *redis.Client
	Cache      config.CacheConfig
	RateLimit  config.RateLimitConfig
	AuthSecret string
	Logger     *slog.Logger
}

// New builds the echo instance serving the API.
func New(d Deps) *echo.Echo {
	if d.Publisher == nil {
		d.Publisher = queue.NopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis))

	pub := d.Publisher
	if d.Hub != nil {
		pub = queue.Fanout{d.Publisher, d.Hub}
		e.GET("/ws", live.Handler(d.Hub), middleware.JWTAuth(d.AuthSecret))
	}

	RegisterRoutes(e)
	RegisterInventory(e, handler.NewInventoryHandler(d.Logger),
		middleware.JWTAuth(d.AuthSecret),
		middleware.NewRedisCache(d.Cache, d.Redis),
		middleware.Session(d.Store, pub, d.Logger),
	)
	return e
}

// RegisterRoutes registers routes that need no session or authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthStatus)
	// Plain text probe for load balancers.
	e.GET("/healthz", handler.Health)
}

// RegisterInventory registers the CRUD and navigation routes of every
// level of the hierarchy, each wrapped in mw.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler, mw ...echo.MiddlewareFunc) {
	r := routes{e: e, mw: mw}

	r.crud("/houses", h.CreateHouse, h.ListHouses, h.GetHouse, h.UpdateHouse, h.DeleteHouse)
	r.get("/houses/:id/rooms", h.ListHouseRooms)

	r.crud("/rooms", h.CreateRoom, h.ListRooms, h.GetRoom, h.UpdateRoom, h.DeleteRoom)
	r.get("/rooms/:id/locations", h.ListRoomLocations)

	r.crud("/locations", h.CreateLocation, h.ListLocations, h.GetLocation, h.UpdateLocation, h.DeleteLocation)
	r.get("/locations/:id/containers", h.ListLocationContainers)

	r.crud("/containers", h.CreateContainer, h.ListContainers, h.GetContainer, h.UpdateContainer, h.DeleteContainer)
	r.get("/containers/:id/items", h.ListContainerItems)

	r.get("/items/unassigned", h.ListUnassignedItems)
	r.crud("/items", h.CreateItem, h.ListItems, h.GetItem, h.UpdateItem, h.DeleteItem)
}

// routes registers every path both with and without a trailing slash.
type routes struct {
	e  *echo.Echo
	mw []echo.MiddlewareFunc
}

func (r routes) add(method, path string, h echo.HandlerFunc) {
	r.e.Add(method, path, h, r.mw...)
	r.e.Add(method, path+"/", h, r.mw...)
}

func (r routes) get(path string, h echo.HandlerFunc) {
	r.add(echo.GET, path, h)
}

func (r routes) crud(prefix string, create, list, get, update, del echo.HandlerFunc) {
	r.add(echo.POST, prefix, create)
	r.add(echo.GET, prefix, list)
	r.add(echo.GET, prefix+"/:id", get)
	r.add(echo.PUT, prefix+"/:id", update)
	r.add(echo.DELETE, prefix+"/:id", del)
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if sub, ok := c.Get(middleware.SubjectKey).(string); ok {
				attrs = append(attrs, slog.String("subject", sub))
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
