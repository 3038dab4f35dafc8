package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"miniinventory/internal/auth"
	"miniinventory/internal/errors"
	"miniinventory/internal/handler"
)

// ContextKeyClaims is where the authenticated *auth.Claims are stored.
const ContextKeyClaims = "user"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = handler.NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", RequireToken(jwtService))

	secured.GET("/me", func(c echo.Context) error {
		claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID, "username": claims.Username})
	})

	// Product routes
	secured.GET("/products", productHandler.ListProducts)
	secured.POST("/products", productHandler.CreateProduct)
	secured.GET("/products/:id", productHandler.GetProduct)
	secured.PUT("/products/:id", productHandler.UpdateProduct)
	secured.DELETE("/products/:id", productHandler.DeleteProduct)

	// Report routes
	secured.GET("/dashboard", reportHandler.GetDashboard)
	secured.GET("/export/:format", reportHandler.Export)
}

// RequireToken validates bearer access tokens with the service's own claims type.
func RequireToken(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid access token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}
