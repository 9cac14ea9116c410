package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
)

func TestRegistration_ConcurrentSameEmail(t *testing.T) {
	s := requireSuite(t)
	base := s.DefaultTestAccount()

	const workers = 8
	statuses := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opts := s.DefaultTestAccount()
			opts.Email = base.Email
			statuses[i] = s.Request(t, http.MethodPost, "/api/accounts/register", opts.Payload(), nil).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created, "statuses: %v", statuses)
	assert.Equal(t, workers-1, conflicts, "statuses: %v", statuses)
}

func TestRegistration_ConflictFields(t *testing.T) {
	s := requireSuite(t)
	first := s.DefaultTestAccount()
	s.Register(t, first)

	tests := []struct {
		name          string
		mutate        func(o *TestAccountOptions)
		expectedField string
	}{
		{
			name:          "same email in other case",
			mutate:        func(o *TestAccountOptions) { o.Email = strings.ToUpper(first.Email) },
			expectedField: "email",
		},
		{
			name:          "same phone",
			mutate:        func(o *TestAccountOptions) { o.Phone = first.Phone },
			expectedField: "phone_number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := s.DefaultTestAccount()
			tt.mutate(opts)

			w := s.Request(t, http.MethodPost, "/api/accounts/register", opts.Payload(), nil)

			require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
			var body struct {
				Fields map[string][]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body.Fields, tt.expectedField)
		})
	}
}

func TestProfile_OwnerAndAdmin(t *testing.T) {
	s := requireSuite(t)
	owner := s.DefaultTestAccount()
	ownerID := s.Register(t, owner)
	other := s.DefaultTestAccount()
	otherID := s.Register(t, other)

	w := s.Request(t, http.MethodPatch, "/api/accounts/"+ownerID, map[string]string{"address": "1 Broad Street"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.Request(t, http.MethodPatch, "/api/accounts/"+otherID, map[string]string{"address": "1 Broad Street"}, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := s.DefaultTestAccount()
	_, err := s.Container.AccountSvc.CreateSuperuser(context.Background(), admin.Email, admin.Password, domain.AccountFields{FirstName: "Admin", LastName: "User"})
	require.NoError(t, err)

	w = s.Request(t, http.MethodPatch, "/api/accounts/"+otherID, map[string]string{"role": "landlord"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.Request(t, http.MethodGet, "/admin/accounts?role=landlord&search="+s.TestPrefix, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, otherID, list[0]["id"])
}
