package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"juriscloud/config"
	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

func init() {
	// Generate a real dummy hash at startup to ensure consistent timing
	hash, _ := services.HashPassword("dummy_password_for_timing_mitigation")
	if hash != "" {
		globalDummyHash = hash
	}
}

// Package level variable to hold the dummy hash
var globalDummyHash string = "$2a$10$X7.G.t8./.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t" // Fallback

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler creates a new account and opens a session for it
func SignupHandler(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	fields := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fields["email"] = "A valid email address is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters long"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	var existing models.User
	if err := db.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "An account with this email already exists")
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create account")
	}

	now := time.Now()
	user := &models.User{
		Email:            req.Email,
		Password:         hashedPassword,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		CompanyName:      strings.TrimSpace(req.CompanyName),
		Phone:            strings.TrimSpace(req.Phone),
		IsActive:         true,
		EmailConfirmedAt: &now,
	}

	if err := db.DB.Create(user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create account")
	}

	cfg := c.Get("config").(*config.Config)
	if err := services.SendWelcomeEmail(cfg, user); err != nil {
		log.Printf("[WARNING] Failed to send welcome email to %s: %v", user.Email, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))

	services.LogSecurityEvent("SIGNUP", user.ID, user.Email)

	return c.JSON(http.StatusCreated, user)
}

// LoginHandler authenticates credentials and opens a session
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		// Timing attack mitigation: always run a bcrypt comparison
		services.VerifyPassword(globalDummyHash, req.Password)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if user.IsLockedOut() {
		services.LogSecurityEvent("LOGIN_LOCKED", user.ID, user.Email)
		return echo.NewHTTPError(http.StatusTooManyRequests, "Account is temporarily locked. Try again later.")
	}

	if !services.VerifyPassword(user.Password, req.Password) {
		if err := services.RecordFailedLogin(db.DB, &user); err != nil {
			log.Printf("[WARNING] Failed to record failed login for %s: %v", user.Email, err)
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if !user.IsActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
	}

	if err := services.ResetLoginThrottle(db.DB, &user); err != nil {
		log.Printf("[WARNING] Failed to reset login throttle for %s: %v", user.Email, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))

	now := time.Now()
	user.LastLoginAt = &now
	db.DB.Save(&user)

	services.LogSecurityEvent("LOGIN", user.ID, user.Email)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler ends the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			log.Printf("[WARNING] Failed to delete session: %v", err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// MeHandler returns the authenticated account
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}
