package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/middleware"
	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
)

type ProfilesHandler struct {
	store *store.Client
}

func NewProfilesHandler(storeClient *store.Client) *ProfilesHandler {
	return &ProfilesHandler{store: storeClient}
}

// CreateUser registers a seller profile. When the caller is authenticated
// the profile reuses the Supabase Auth user id so the JWT subject and the
// profile row stay aligned; profiles start inactive until payment.
func (h *ProfilesHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email is required"})
		return
	}

	existing, err := h.store.GetProfileByEmail(req.Email)
	if err != nil {
		respondReadError(c, err, "profile")
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "a profile with this email already exists"})
		return
	}

	var profile *models.Profile
	if sub, ok := c.Get(middleware.ProfileIDKey); ok {
		profileID, parseErr := uuid.Parse(sub.(string))
		if parseErr != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid profile id in token"})
			return
		}
		profile, err = h.store.CreateProfileWithID(profileID, req.Email, false)
	} else {
		role := req.Role
		if role == "" {
			role = models.RoleStaff
		}
		if role != models.RoleAdmin && role != models.RoleStaff {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role"})
			return
		}
		profile, err = h.store.CreateProfile(req.Email, role)
	}
	if err != nil {
		respondWriteError(c, err, "create profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfilesHandler) GetUser(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profile_id")
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(profileID)
	if err != nil {
		respondReadError(c, err, "profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfilesHandler) UpdateEmail(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profile_id")
	if !ok {
		return
	}

	var req models.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email is required"})
		return
	}

	profile, err := h.store.UpdateProfileEmail(profileID, req.Email)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		respondWriteError(c, err, "update email")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ProcessPayment activates a profile. Payment collection itself happens
// outside this service; this endpoint records the outcome.
func (h *ProfilesHandler) ProcessPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid profile_id"})
		return
	}

	profile, err := h.store.ActivateProfile(profileID)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		respondWriteError(c, err, "activate profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "payment processed",
		"profile": profile,
	})
}
