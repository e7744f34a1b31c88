package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NagbhushanPai/Incubyte-Project/internal/authz"
	authmw "github.com/NagbhushanPai/Incubyte-Project/internal/middleware/auth"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	SweetHandler *SweetHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	sweets := api.Group("/sweets")
	sweets.GET("/search", d.SweetHandler.SearchSweets, mw.Require(authz.OpSearchSweets))
	sweets.GET("", d.SweetHandler.ListSweets, mw.Require(authz.OpListSweets))
	sweets.GET("/:id", d.SweetHandler.GetSweet, mw.Require(authz.OpReadSweet))
	sweets.POST("", d.SweetHandler.CreateSweet, mw.Require(authz.OpCreateSweet))
	sweets.PUT("/:id", d.SweetHandler.UpdateSweet, mw.Require(authz.OpUpdateSweet))
	sweets.DELETE("/:id", d.SweetHandler.DeleteSweet, mw.Require(authz.OpDeleteSweet))
	sweets.POST("/:id/purchase", d.SweetHandler.PurchaseSweet, mw.Require(authz.OpPurchaseSweet))
	sweets.POST("/:id/restock", d.SweetHandler.RestockSweet, mw.Require(authz.OpRestockSweet))
}

// errorHandler renders every failure as {"error": "<message>"}. Internal
// failures collapse to a generic message so no store detail leaks.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			msg = "server error"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, echo.Map{"error": msg})
	}
}
