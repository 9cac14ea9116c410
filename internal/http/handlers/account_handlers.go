package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/middleware"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/serializers"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandlers handles account HTTP requests
type AccountHandlers struct {
	accounts domain.AccountManager
	photos   domain.PhotoStore
	now      domain.Clock
	logger   *zap.Logger
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accounts domain.AccountManager, photos domain.PhotoStore, clock domain.Clock, logger *zap.Logger) *AccountHandlers {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandlers{
		accounts: accounts,
		photos:   photos,
		now:      clock,
		logger:   logger,
	}
}

// List returns every account as a bare JSON array
func (h *AccountHandlers) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.readList(c.Request.Context(), accounts))
}

// Register creates a non-privileged account
func (h *AccountHandlers) Register(c *gin.Context) {
	var req serializers.RegisterWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, serializers.TranslateBindingError(err))
		return
	}

	email, password, fields, err := req.ToFields(h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	account, err := h.accounts.CreateUser(c.Request.Context(), email, password, fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, h.read(c.Request.Context(), account))
}

// Get returns one account
func (h *AccountHandlers) Get(c *gin.Context) {
	account, found, err := h.accounts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !found {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}
	c.JSON(http.StatusOK, h.read(c.Request.Context(), account))
}

// Update applies a partial profile update. Only admins may grant the admin role.
func (h *AccountHandlers) Update(c *gin.Context) {
	account, found, err := h.accounts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !found {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}

	var req serializers.ProfileWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, serializers.TranslateBindingError(err))
		return
	}

	update, err := req.ToUpdate(h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if update.Role != nil && *update.Role != account.Role {
		caller, ok := middleware.CurrentAccount(c)
		if *update.Role == domain.RoleAdmin && (!ok || !caller.IsAdmin()) {
			respondError(c, h.logger, domain.ErrForbidden)
			return
		}
	}

	updated, err := h.accounts.UpdateProfile(c.Request.Context(), account.ID, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.read(c.Request.Context(), updated))
}

// PresignPhoto returns a presigned upload URL for a new profile photo.
// The client stores the returned key through Update once uploaded.
func (h *AccountHandlers) PresignPhoto(c *gin.Context) {
	account, found, err := h.accounts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !found {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}

	key, url, err := h.photos.PresignUpload(c.Request.Context(), account.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":        key,
		"upload_url": url,
		"method":     http.MethodPut,
	})
}

func (h *AccountHandlers) read(ctx context.Context, account *domain.Account) serializers.AccountRead {
	return serializers.NewAccountRead(account, h.now(), h.photoURL(ctx, account.ProfilePhoto))
}

func (h *AccountHandlers) readList(ctx context.Context, accounts []*domain.Account) []serializers.AccountRead {
	return serializers.NewAccountReadList(accounts, h.now(), func(key string) string {
		return h.photoURL(ctx, key)
	})
}

// photoURL resolves a stored key, falling back to the key itself
func (h *AccountHandlers) photoURL(ctx context.Context, key string) string {
	if key == "" || h.photos == nil {
		return key
	}
	url, err := h.photos.URL(ctx, key)
	if err != nil {
		h.logger.Warn("failed to resolve profile photo URL", zap.String("key", key), zap.Error(err))
		return key
	}
	return url
}
