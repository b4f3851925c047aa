package auth

import (
	"net/http"
	"strings"
	"time"

	"kitchen-orders/internal/models"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler issues admin tokens and guards the admin route group.
// Authorization is an email allow-list; all admins share one bcrypt
// password hash generated with misc/hash-password.
type Handler struct {
	jwtSecret    string
	passwordHash string
	allowed      map[string]struct{}
	tokenTTL     time.Duration
	validate     *validator.Validate
}

// NewHandler creates an auth handler for the given allow-list and hash.
func NewHandler(jwtSecret, passwordHash string, allowedEmails []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		allowed[strings.ToLower(e)] = struct{}{}
	}
	return &Handler{
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
		allowed:      allowed,
		tokenTTL:     12 * time.Hour,
		validate:     validator.New(),
	}
}

// RegisterRoutes mounts the login endpoint.
func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, ok := h.allowed[email]; !ok {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid credentials"))
	}

	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(h.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		c.Logger().Error("Handler.Login: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to issue token"))
	}

	return c.JSON(http.StatusOK, models.OK(map[string]string{"token": signed}))
}

// JWTMiddleware validates the bearer token on admin routes.
func (h *Handler) JWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(h.jwtSecret),
	})
}

// RequireAdmin re-checks the email claim against the allow-list, so a token
// issued for a since-removed admin stops working.
func (h *Handler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, models.Fail("Missing or invalid token"))
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, models.Fail("Missing or invalid token"))
		}
		email, _ := claims["email"].(string)
		if _, allowed := h.allowed[strings.ToLower(email)]; !allowed {
			return c.JSON(http.StatusForbidden, models.Fail("Access denied"))
		}
		c.Set("adminEmail", email)
		return next(c)
	}
}
