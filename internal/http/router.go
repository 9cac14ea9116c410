package httpx

import (
	"net/http"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/handlers"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/middleware"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/serializers"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildRouter wires the public account API and the staff-only admin API
func BuildRouter(
	ah *handlers.AccountHandlers,
	adh *handlers.AdminHandlers,
	ph *handlers.PolicyHandlers,
	accounts domain.AccountManager,
	cb *middleware.CasbinMW,
	logger *zap.Logger,
) *gin.Engine {
	serializers.RegisterJSONTagNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api/accounts")
	api.GET("", ah.List)
	api.POST("/register", ah.Register)
	api.GET("/:id", ah.Get)

	owned := api.Group("").Use(middleware.BasicAuth(accounts), cb.Enforce())
	owned.PATCH("/:id", ah.Update)
	owned.POST("/:id/photo", ah.PresignPhoto)

	adm := r.Group("/admin").Use(middleware.BasicAuth(accounts), middleware.RequireStaff(), cb.Enforce())
	adm.GET("/accounts", adh.Search)
	adm.POST("/accounts/:id/deactivate", adh.Deactivate)
	adm.POST("/accounts/:id/activate", adh.Activate)
	adm.POST("/superusers", adh.CreateSuperuser)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
