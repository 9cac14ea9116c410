package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/http/middleware"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/serializers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func init() {
	gin.SetMode(gin.TestMode)
	serializers.RegisterJSONTagNames()
}

// asAccount stands in for BasicAuth by placing caller in the context
func asAccount(caller *domain.Account) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.AccountKey, caller)
			c.Set(middleware.AccountIDKey, caller.ID.String())
			c.Set(middleware.AccountRoleKey, string(caller.Role))
		}
		c.Next()
	}
}

func performRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeObject(t, w)
	fields, ok := body["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected fields in response, got %v", body)
	}
	return fields
}

func newTestAccount(email string, role domain.Role) *domain.Account {
	dob := time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Account{
		ID:          uuid.New(),
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       email,
		PhoneNumber: "+2348000000001",
		Sex:         domain.SexFemale,
		DOB:         &dob,
		Credentials: domain.Credentials{PasswordHash: "hashed_password123", IsActive: true},
		Permissions: domain.Permissions{Role: role},
		DateJoined:  testNow.Add(-24 * time.Hour),
		DateUpdated: testNow.Add(-time.Hour),
	}
}

func newTestAdmin() *domain.Account {
	admin := newTestAccount("root@example.com", domain.RoleAdmin)
	admin.IsStaff = true
	admin.IsSuperuser = true
	admin.IsVerified = true
	return admin
}
