package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

var sequence atomic.Int64

// TestAccountOptions configures a registration payload
type TestAccountOptions struct {
	FirstName string
	Email     string
	Phone     string
	Password  string
	Role      string
}

// DefaultTestAccount returns registration options with unique contact details
func (s *TestSuite) DefaultTestAccount() *TestAccountOptions {
	n := sequence.Add(1)
	return &TestAccountOptions{
		FirstName: "Test",
		Email:     fmt.Sprintf("%s_%d@example.com", s.TestPrefix, n),
		Phone:     fmt.Sprintf("+2%09d%04d", s.StartTime.UnixNano()%1e9, n),
		Password:  "Test123!@#",
		Role:      "tenant",
	}
}

// Payload renders the registration body
func (o *TestAccountOptions) Payload() map[string]string {
	return map[string]string{
		"first_name":   o.FirstName,
		"last_name":    "E2E",
		"email":        o.Email,
		"phone_number": o.Phone,
		"sex":          "other",
		"role":         o.Role,
		"password":     o.Password,
	}
}

// Request sends a JSON request through the application handler
func (s *TestSuite) Request(t *testing.T, method, path string, body interface{}, auth *TestAccountOptions) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		req.SetBasicAuth(auth.Email, auth.Password)
	}
	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

// Register creates an account over HTTP and returns its id
func (s *TestSuite) Register(t *testing.T, opts *TestAccountOptions) string {
	t.Helper()

	w := s.Request(t, http.MethodPost, "/api/accounts/register", opts.Payload(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode registration: %v", err)
	}
	return body.ID
}
