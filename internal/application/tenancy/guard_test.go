package tenancy_test

import (
	"testing"

	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tenant := &entity.TenantContext{ID: "t1"}

	cases := []struct {
		name      string
		principal *entity.Principal
		tenant    *entity.TenantContext
		want      error
	}{
		{"superadmin pasa sin tenant", &entity.Principal{Role: entity.RoleSuperAdmin}, nil, nil},
		{"superadmin pasa con cualquier tenant", &entity.Principal{Role: entity.RoleSuperAdmin, TenantID: ""}, tenant, nil},
		{"mismo tenant", &entity.Principal{Role: entity.RoleAdmin, TenantID: "t1"}, tenant, nil},
		{"sin usuario", nil, tenant, domain.ErrUnauthorized},
		{"sin tenant", &entity.Principal{Role: entity.RoleAdmin, TenantID: "t1"}, nil, domain.ErrUnauthorized},
		{"otro tenant", &entity.Principal{Role: entity.RoleOrdersManager, TenantID: "t2"}, tenant, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tenancy.Authorize(tc.principal, tc.tenant)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
