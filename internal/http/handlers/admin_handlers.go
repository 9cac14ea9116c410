package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/serializers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandlers handles staff-only account administration
type AdminHandlers struct {
	accounts domain.AccountManager
	reads    *AccountHandlers
	logger   *zap.Logger
}

// NewAdminHandlers creates new admin handlers. Read representations are
// rendered the same way as the public account endpoints.
func NewAdminHandlers(accounts domain.AccountManager, photos domain.PhotoStore, clock domain.Clock, logger *zap.Logger) *AdminHandlers {
	reads := NewAccountHandlers(accounts, photos, clock, logger)
	return &AdminHandlers{
		accounts: accounts,
		reads:    reads,
		logger:   reads.logger,
	}
}

// Search lists accounts matching the query string filters
func (h *AdminHandlers) Search(c *gin.Context) {
	filter, err := parseAccountFilter(c, h.reads.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	accounts, err := h.accounts.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.reads.readList(c.Request.Context(), accounts))
}

// Deactivate disables an account
func (h *AdminHandlers) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// Activate re-enables an account
func (h *AdminHandlers) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandlers) setActive(c *gin.Context, active bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}

	account, err := h.accounts.SetActive(c.Request.Context(), id, active)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.reads.read(c.Request.Context(), account))
}

// CreateSuperuser creates a fully privileged admin account
func (h *AdminHandlers) CreateSuperuser(c *gin.Context) {
	var req serializers.SuperuserWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, serializers.TranslateBindingError(err))
		return
	}

	account, err := h.accounts.CreateSuperuser(c.Request.Context(), req.Email, req.Password, domain.AccountFields{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, h.reads.read(c.Request.Context(), account))
}

// parseAccountFilter reads search, is_active, is_verified, is_staff, role,
// date_joined and ordering from the query string
func parseAccountFilter(c *gin.Context, now time.Time) (domain.AccountFilter, error) {
	var errs domain.ValidationErrors
	filter := domain.AccountFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
	}

	flags := []struct {
		name   string
		target **bool
	}{
		{"is_active", &filter.IsActive},
		{"is_verified", &filter.IsVerified},
		{"is_staff", &filter.IsStaff},
	}
	for _, f := range flags {
		raw, ok := c.GetQuery(f.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, domain.NewValidationError(f.name, "Must be a valid boolean.", err))
			continue
		}
		*f.target = &v
	}

	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		if !role.Valid() {
			errs = append(errs, domain.NewValidationError("role", strconv.Quote(raw)+" is not a valid choice.", nil))
		}
		filter.Role = role
	}

	if raw := c.Query("date_joined"); raw != "" {
		period := domain.DateJoinedPeriod(raw)
		if _, ok := period.Since(now); !ok {
			errs = append(errs, domain.NewValidationError("date_joined", strconv.Quote(raw)+" is not a valid choice.", nil))
		}
		filter.DateJoined = period
	}

	if len(errs) > 0 {
		return domain.AccountFilter{}, errs
	}
	return filter, nil
}
