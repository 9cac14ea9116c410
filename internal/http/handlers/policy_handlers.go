package handlers

import (
	"net/http"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/serializers"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PolicyHandlers manages casbin policies
type PolicyHandlers struct {
	policies domain.PolicyService
	logger   *zap.Logger
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService, logger *zap.Logger) *PolicyHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyHandlers{policies: policies, logger: logger}
}

func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.policies.GetPolicies())
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r serializers.PolicyWrite
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, h.logger, serializers.TranslateBindingError(err))
		return
	}
	if err := h.policies.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r serializers.PolicyWrite
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, h.logger, serializers.TranslateBindingError(err))
		return
	}
	if err := h.policies.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
