package legacy

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_reporting_system/internal/auth"
	v1 "github.com/shenikar/emergency_reporting_system/internal/handler/http/v1"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/shenikar/emergency_reporting_system/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_store.go -package=mocks

// UserStore persists accounts for the signup/login flow.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler serves the original flat reporting API kept for older clients:
// password accounts, JWT login and a fire-and-forget report endpoint that is
// acknowledged but not fed into the incident pipeline.
type Handler struct {
	users    UserStore
	tokens   *auth.JWTProvider
	logger   *logrus.Logger
	validate *validator.Validate
}

func NewHandler(users UserStore, tokens *auth.JWTProvider, logger *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the legacy routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	legacy := api.Group("/legacy")
	{
		legacy.POST("/signup", h.signup)
		legacy.POST("/login", h.login)
		legacy.POST("/report", v1.BearerAuthMiddleware(h.tokens, h.logger), h.report)
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Register a new account
// @Description Create a password account for the legacy reporting surface.
// @Tags Legacy
// @Accept json
// @Produce json
// @Param account body signupRequest true "Signup request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error or email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /legacy/signup [post]
func (h *Handler) signup(c *gin.Context) {
	var input signupRequest
	log := h.logger.WithField("method", "signup")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		log.WithError(err).Error("Failed to create user in store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	log.WithField("user_id", user.ID).Info("Account created")
	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
	})
}

// @Summary Log in
// @Description Exchange email and password for a bearer token.
// @Tags Legacy
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login request"
// @Success 200 {object} map[string]string "Bearer token"
// @Failure 400 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /legacy/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Unknown email and wrong password read identically to the client.
	user, err := h.users.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		log.WithError(err).Error("Failed to get user from store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary Submit a legacy report
// @Description Acknowledge a report from an older client. The report is logged but not recorded; clients must migrate to POST /incidents.
// @Tags Legacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /legacy/report [post]
func (h *Handler) report(c *gin.Context) {
	var body map[string]any
	_ = c.ShouldBindJSON(&body)

	h.logger.WithFields(logrus.Fields{
		"method": "report",
		"body":   body,
	}).Info("Legacy report acknowledged")

	c.JSON(http.StatusOK, gin.H{"message": "Report submitted!"})
}
