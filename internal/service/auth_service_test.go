package service_test

import (
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) service.AuthService {
	return service.NewAuthService(
		repository.NewUserRepo(db),
		repository.NewRoleRepo(db),
		db,
		nil,
	)
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	seedAuth(t, db)
	svc := newAuthService(db)

	user, err := svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "secret123",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	require.NotNil(t, user.Role)
	assert.Equal(t, model.RoleAdmin, user.Role.Code)
	assert.Len(t, user.Privileges, len(model.DefaultPrivileges))
	assert.True(t, user.HasPrivilege("user:create"))
}

func TestRegisterSecondUserBecomesStaff(t *testing.T) {
	db := newTestDB(t)
	seedAuth(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "secret123",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	second, err := svc.Register(&service.RegisterRequest{
		Email:    "clerk@shop.com",
		Password: "secret123",
		FullName: "Clerk",
	})
	require.NoError(t, err)

	require.NotNil(t, second.Role)
	assert.Equal(t, model.RoleStaff, second.Role.Code)
	assert.Len(t, second.Privileges, len(model.StaffPrivilegeCodes))
	assert.True(t, second.HasPrivilege("sale:create"))
	assert.False(t, second.HasPrivilege("user:create"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	seedAuth(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "secret123",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	_, err = svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "different",
		FullName: "Pretender",
	})
	assert.ErrorIs(t, err, service.ErrEmailExists)
}

func TestLoginRotatesTokenVersion(t *testing.T) {
	db := newTestDB(t)
	seedAuth(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "secret123",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	first, err := svc.Login("owner@shop.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)

	var afterFirst model.User
	require.NoError(t, db.First(&afterFirst, "email = ?", "owner@shop.com").Error)

	_, err = svc.Login("owner@shop.com", "secret123")
	require.NoError(t, err)

	var afterSecond model.User
	require.NoError(t, db.First(&afterSecond, "email = ?", "owner@shop.com").Error)

	// Second login invalidates the first session
	assert.NotEqual(t, afterFirst.TokenVersion, afterSecond.TokenVersion)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	seedAuth(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&service.RegisterRequest{
		Email:    "owner@shop.com",
		Password: "secret123",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	_, err = svc.Login("owner@shop.com", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
