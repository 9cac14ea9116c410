package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
	httpx "github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/handlers"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/middleware"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Handler builds the HTTP handler for a wired container
func (c *Container) Handler() http.Handler {
	// Initialize handlers
	accountH := handlers.NewAccountHandlers(c.AccountSvc, c.PhotoStore, c.Clock, c.Logger)
	adminH := handlers.NewAdminHandlers(c.AccountSvc, c.PhotoStore, c.Clock, c.Logger)
	policyH := handlers.NewPolicyHandlers(c.PolicySvc, c.Logger)

	// Initialize middleware
	casbinMW := middleware.NewCasbinMW(services.NewCasbinEnforcerWrapper(c.Casbin.E), c.Config.OwnershipRules, c.Logger)

	// Build router
	return httpx.BuildRouter(accountH, adminH, policyH, c.AccountSvc, casbinMW, c.Logger)
}

// Run serves the API until SIGINT or SIGTERM
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
