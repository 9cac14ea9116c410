package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultModel is the RBAC model used when no model file is configured.
// Paths match with keyMatch2 (":id" segments, trailing "*"), methods with an
// anchored regular expression.
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (r.sub == p.sub || g(r.sub, p.sub)) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies are seeded when the policy table is empty
var DefaultPolicies = [][]string{
	{"role_admin", "/admin/*", "^(GET|POST|DELETE)$"},
	{"role_admin", "/api/accounts/*", "^(GET|POST|PATCH)$"},
	{"role_owner", "/api/accounts/:id", "^PATCH$"},
	{"role_owner", "/api/accounts/:id/photo", "^POST$"},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer whose policies live in db. An empty
// modelPath selects DefaultModel.
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	var m interface{} = modelPath
	if modelPath == "" {
		m, err = model.NewModelFromString(DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("casbin model: %w", err)
		}
	}

	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("casbin load policy: %w", err)
	}
	return &CasbinService{E}, nil
}

// SeedDefaults installs DefaultPolicies when no policy is stored yet. It
// reports whether anything was written.
func (s *CasbinService) SeedDefaults(logger *zap.Logger) (bool, error) {
	policies, err := s.E.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(policies) > 0 {
		return false, nil
	}
	if _, err := s.E.AddPolicies(DefaultPolicies); err != nil {
		return false, fmt.Errorf("seed policies: %w", err)
	}
	if logger != nil {
		logger.Info("casbin: seeded default policies", zap.Int("count", len(DefaultPolicies)))
	}
	return true, nil
}
