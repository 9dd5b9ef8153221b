package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/config"
	apperrors "github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/handler"
	"github.com/blessing250/Membership/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	scanHandler *handler.ScanHandler,
	paymentHandler *handler.PaymentHandler,
	qrHandler *handler.QRHandler,
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
	}), sessionMiddleware)

	secured.GET("/auth/profile", authHandler.Profile)
	secured.GET("/qr", qrHandler.Image)
	secured.GET("/qr/claim", qrHandler.Claim)
	secured.POST("/payments/confirm", paymentHandler.Confirm)

	// Status routes stay on the secured group: the service allows members to
	// upgrade themselves after payment, admins anything.
	secured.PATCH("/members/:id/status", memberHandler.UpdateStatus)
	secured.PATCH("/auth/:id/membership", memberHandler.Upgrade)

	// Admin routes
	admin := secured.Group("", requireRole(model.RoleAdmin))
	admin.GET("/auth/stats", memberHandler.Stats)
	admin.GET("/members", memberHandler.List)
	admin.GET("/auth/all-users", memberHandler.List)
	admin.GET("/members/:id", memberHandler.Get)
	admin.DELETE("/members/:id", memberHandler.Delete)
	admin.PATCH("/auth/:id/role", memberHandler.UpdateRole)
	admin.POST("/scan", scanHandler.Scan)
	admin.GET("/scan/history", scanHandler.History)
}

// sessionMiddleware converts verified JWT claims into an auth.Session on the
// request context, so handlers and services receive an explicit session value
// instead of reading token state themselves.
func sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwtv5.Token)
		if !ok {
			return unauthenticated()
		}
		claims, ok := token.Claims.(jwtv5.MapClaims)
		if !ok {
			return unauthenticated()
		}

		memberID, err := uuid.Parse(stringClaim(claims, "member_id"))
		if err != nil {
			return unauthenticated()
		}

		session := &auth.Session{
			MemberID: memberID,
			Email:    stringClaim(claims, "email"),
			Role:     model.Role(stringClaim(claims, "role")),
		}
		if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
			session.IssuedAt = iat.Time
		} else {
			session.IssuedAt = time.Now()
		}

		auth.SetSession(c, session)
		return next(c)
	}
}

// requireRole gates a route group on the session role before any handler
// runs, so guarded operations are never reached without authorization.
func requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := auth.Authorize(auth.SessionFromContext(c), role); err != nil {
				he := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}
			return next(c)
		}
	}
}

func stringClaim(claims jwtv5.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

func unauthenticated() *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
