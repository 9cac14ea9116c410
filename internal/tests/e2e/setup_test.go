package e2e

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/app"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/repositories"
	testconfig "github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/tests/config"
)

// TestSuite holds the E2E test infrastructure
type TestSuite struct {
	Container  *app.Container
	Handler    http.Handler
	TestPrefix string
	StartTime  time.Time
}

var globalSuite *TestSuite

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	suite, err := SetupTestSuite()
	if err != nil {
		log.Fatalf("Failed to setup test suite: %v", err)
	}
	globalSuite = suite

	code := m.Run()

	if globalSuite != nil {
		globalSuite.TearDown()
	}
	os.Exit(code)
}

// SetupTestSuite wires the application against the test database. It
// returns a nil suite when no test database is configured.
func SetupTestSuite() (*TestSuite, error) {
	cfg, ok, err := testconfig.LoadTestConfig()
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Printf("%s not set, E2E tests will be skipped", testconfig.DSNEnv)
		return nil, nil
	}

	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := app.NewContainerWithLogger(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("failed to wire test container: %w", err)
	}

	// Generate unique test prefix for isolation
	testPrefix := fmt.Sprintf("e2e%d", time.Now().UnixNano())

	log.Printf("E2E Test Suite initialized (db: %s, prefix: %s)", testconfig.MaskDSN(cfg.DSN), testPrefix)
	return &TestSuite{
		Container:  c,
		Handler:    c.Handler(),
		TestPrefix: testPrefix,
		StartTime:  time.Now(),
	}, nil
}

// TearDown removes the accounts created by this run and closes connections
func (s *TestSuite) TearDown() {
	result := s.Container.DB.Where("email LIKE ?", s.TestPrefix+"%").Delete(&repositories.DBAccount{})
	if result.Error != nil {
		log.Printf("Warning: failed to clean up test accounts: %v", result.Error)
	} else {
		log.Printf("Cleaned up %d test accounts in %s", result.RowsAffected, time.Since(s.StartTime).Round(time.Millisecond))
	}
	if err := s.Container.Close(); err != nil {
		log.Printf("Warning: failed to close test container: %v", err)
	}
}

// requireSuite skips t when the suite is not configured
func requireSuite(t *testing.T) *TestSuite {
	t.Helper()
	if globalSuite == nil {
		t.Skipf("set %s to run E2E tests", testconfig.DSNEnv)
	}
	return globalSuite
}
