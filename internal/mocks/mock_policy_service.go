package mocks

import "github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"

// MockPolicyService keeps policies in an in-memory slice. The *Func hooks
// take precedence when set.
type MockPolicyService struct {
	AddPolicyFunc       func(role, resource, action string) error
	RemovePolicyFunc    func(role, resource, action string) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	GetPoliciesFunc     func() [][]string

	Policies [][]string
}

func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{
		Policies: [][]string{
			{"role_admin", "/admin/*", "^(GET|POST|DELETE)$"},
			{"role_owner", "/api/accounts/:id", "^PATCH$"},
		},
	}
}

func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	if m.index(role, resource, action) < 0 {
		m.Policies = append(m.Policies, []string{role, resource, action})
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	if i := m.index(role, resource, action); i >= 0 {
		m.Policies = append(m.Policies[:i], m.Policies[i+1:]...)
	}
	return nil
}

// CheckPermission only reports exact rule matches.
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return m.index(role, resource, action) >= 0, nil
}

func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	out := make([][]string, 0, len(m.Policies))
	for _, p := range m.Policies {
		out = append(out, append([]string(nil), p...))
	}
	return out
}

func (m *MockPolicyService) index(role, resource, action string) int {
	for i, p := range m.Policies {
		if len(p) == 3 && p[0] == role && p[1] == resource && p[2] == action {
			return i
		}
	}
	return -1
}

var _ domain.PolicyService = (*MockPolicyService)(nil)
