package rbac

import (
	"sync"

	"go-payops/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadOrganizationPolicy(organizationID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
	}
}

func (s *service) LoadOrganizationPolicy(organizationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadOrganizationPolicyUnlocked(organizationID)
}

func (s *service) loadOrganizationPolicyUnlocked(organizationID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(organizationID)
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, organizationID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(organizationID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, organizationID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Policy is reloaded per check; organizations are small enough that
	// correctness after a role change beats caching here.
	if err := s.loadOrganizationPolicyUnlocked(req.OrganizationID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.OrganizationID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		return false, err
	}

	zap.L().Debug("rbac enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("organization_id", req.OrganizationID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
