package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/f1history/middleware"
)

// tokenTTL is how long an admin token stays valid.
const tokenTTL = 30 * 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HashPassword validates password input and returns a bcrypt hash for
// ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

func (h *Handler) isAdmin(username string) bool {
	return h.adminUser != "" && strings.EqualFold(strings.TrimSpace(username), strings.TrimSpace(h.adminUser))
}

// Signin validates the admin credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	if h.adminPassHash == "" || len(h.JWTKey) == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "admin sign-in is not configured")
	}

	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)

	if !h.isAdmin(creds.Username) {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.adminPassHash), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}

	claims := mw.NewClaims(creds.Username, mw.RoleAdmin, h.JWTKey, tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"token": tokenString})
}

// Reload rebuilds the dataset from its source and swaps it in. The old
// dataset keeps serving until the new one is complete.
func (h *Handler) Reload(c echo.Context) error {
	if claims, ok := mw.ClaimsFrom(c); !ok || !h.isAdmin(claims.Subject) {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	if h.load == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "reload is not available")
	}

	ds, err := h.load(c.Request().Context())
	if err != nil {
		zap.L().Error("dataset reload failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "reload failed")
	}
	h.swap(ds)
	zap.L().Info("dataset reloaded", zap.Stringer("dataset", ds))

	return c.JSON(http.StatusOK, map[string]interface{}{"reloaded": true, "years": len(ds.Years())})
}
