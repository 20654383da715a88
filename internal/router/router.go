package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tabletoprpg/internal/auth"
	"tabletoprpg/internal/config"
	"tabletoprpg/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	campaignHandler *handler.CampaignHandler,
	characterHandler *handler.CharacterHandler,
	inventoryHandler *handler.InventoryHandler,
	itemHandler *handler.ItemHandler,
	journalHandler *handler.JournalHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}))

	// User routes
	secured.GET("/users", userHandler.List)
	secured.GET("/users/me", userHandler.GetMe)
	secured.DELETE("/users/me", userHandler.Delete)
	secured.GET("/users/:id", userHandler.GetByID)

	// Campaign routes
	secured.POST("/campaigns", campaignHandler.Create)
	secured.GET("/campaigns/mine", campaignHandler.ListMine)
	secured.GET("/campaigns/member-of", campaignHandler.ListMemberOf)
	secured.GET("/campaigns/:id", campaignHandler.Get)
	secured.PATCH("/campaigns/:id", campaignHandler.Update)
	secured.DELETE("/campaigns/:id", campaignHandler.Delete)

	// Membership routes
	secured.GET("/campaigns/:id/members", campaignHandler.ListMembers)
	secured.PUT("/campaigns/:id/members/:userId", campaignHandler.UpsertMember)
	secured.PATCH("/campaigns/:id/members/:userId", campaignHandler.UpdateMemberRole)
	secured.DELETE("/campaigns/:id/members/:userId", campaignHandler.RemoveMember)

	// Character routes
	secured.POST("/campaigns/:id/characters", characterHandler.Create)
	secured.GET("/campaigns/:id/characters", characterHandler.ListByCampaign)
	secured.GET("/characters/mine", characterHandler.ListMine)
	secured.GET("/characters/:id", characterHandler.Get)
	secured.PATCH("/characters/:id", characterHandler.Update)
	secured.PATCH("/characters/:id/hp", characterHandler.PatchHP)
	secured.DELETE("/characters/:id", characterHandler.Delete)

	// Inventory routes
	secured.GET("/characters/:id/inventory", inventoryHandler.Get)
	secured.POST("/characters/:id/inventory/:itemId", inventoryHandler.Give)
	secured.PATCH("/characters/:id/inventory/:itemId", inventoryHandler.Set)
	secured.DELETE("/characters/:id/inventory/:itemId", inventoryHandler.Remove)
	secured.POST("/characters/:id/inventory/:itemId/change", inventoryHandler.Change)

	// Item catalog routes
	secured.POST("/items", itemHandler.Create)
	secured.GET("/items", itemHandler.Search)
	secured.GET("/items/:id", itemHandler.Get)
	secured.PATCH("/items/:id", itemHandler.Update)
	secured.DELETE("/items/:id", itemHandler.Delete)

	// Journal routes
	secured.POST("/campaigns/:id/journal", journalHandler.Create)
	secured.GET("/campaigns/:id/journal", journalHandler.List)
	secured.POST("/journal/personal", journalHandler.CreatePersonal)
	secured.GET("/journal/personal", journalHandler.ListPersonal)
	secured.GET("/journal/:id", journalHandler.Get)
	secured.PATCH("/journal/:id", journalHandler.Update)
	secured.DELETE("/journal/:id", journalHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
