package mocks

import (
	"regexp"
	"slices"
	"strings"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
)

// MockCasbinEnforcer evaluates requests against an in-memory rule list
// seeded with the default account policies.
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	LoadPolicyFunc   func() error
	policies         [][]string
}

var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{"role_admin", "/admin/*", "^(GET|POST|DELETE)$"},
			{"role_admin", "/api/accounts/*", "^(GET|POST|PATCH)$"},
			{"role_owner", "/api/accounts/:id", "^PATCH$"},
			{"role_owner", "/api/accounts/:id/photo", "^POST$"},
		},
	}
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}

	if len(params) < 3 {
		return false, nil
	}
	m.policies = append(m.policies, toRule(params))
	return true, nil
}

func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}

	target := toRule(params)
	for i, policy := range m.policies {
		if slices.Equal(policy, target) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce checks if a request should be allowed
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}

	// keyMatch2-style resource, regex action
	if len(rvals) >= 3 {
		role, ok1 := rvals[0].(string)
		resource, ok2 := rvals[1].(string)
		action, ok3 := rvals[2].(string)
		if !ok1 || !ok2 || !ok3 {
			return false, nil
		}
		for _, policy := range m.policies {
			if len(policy) < 3 || policy[0] != role {
				continue
			}
			if matchResource(policy[1], resource) && matchAction(policy[2], action) {
				return true, nil
			}
		}
	}
	return false, nil
}

// GetPolicy returns a copy of the rules
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = make([]string, len(policy))
		copy(result[i], policy)
	}
	return result, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

func (m *MockCasbinEnforcer) LoadPolicy() error {
	if m.LoadPolicyFunc != nil {
		return m.LoadPolicyFunc()
	}
	return nil
}

// SetPolicies replaces the seeded rules
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = make([]string, len(policy))
		copy(m.policies[i], policy)
	}
}

func toRule(params []interface{}) []string {
	rule := make([]string, len(params))
	for i, param := range params {
		rule[i], _ = param.(string)
	}
	return rule
}

func matchResource(pattern, resource string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(resource, strings.TrimSuffix(pattern, "*"))
	}
	pp := strings.Split(pattern, "/")
	rp := strings.Split(resource, "/")
	if len(pp) != len(rp) {
		return false
	}
	for i := range pp {
		if strings.HasPrefix(pp[i], ":") {
			continue
		}
		if pp[i] != rp[i] {
			return false
		}
	}
	return true
}

func matchAction(pattern, action string) bool {
	ok, err := regexp.MatchString(pattern, action)
	return err == nil && ok
}
