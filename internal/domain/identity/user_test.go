package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradegate/backend/internal/domain/shared"
)

func validUserParams() NewUserParams {
	return NewUserParams{
		Email:       "trade@acme-exports.com",
		Password:    "s3cret-password",
		Role:        RoleExporter,
		CompanyName: "Acme Exports Ltd",
		ContactName: "J. Okafor",
		Country:     "NG",
		Phone:       "+234 800 000 0000",
	}
}

func TestNewUser(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		user, err := NewUser(validUserParams())

		require.NoError(t, err)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, RoleExporter, user.Role)
		assert.True(t, user.VerifyPassword("s3cret-password"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("email is normalized", func(t *testing.T) {
		p := validUserParams()
		p.Email = "  Trade@Acme-Exports.COM "

		user, err := NewUser(p)

		require.NoError(t, err)
		assert.Equal(t, "trade@acme-exports.com", user.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		p := validUserParams()
		p.Email = "not-an-email"

		_, err := NewUser(p)

		require.Error(t, err)
		assert.Equal(t, "INVALID_EMAIL", err.(*shared.DomainError).Code)
	})

	t.Run("weak password", func(t *testing.T) {
		p := validUserParams()
		p.Password = "short"

		_, err := NewUser(p)

		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", err.(*shared.DomainError).Code)
	})

	t.Run("password needs letters and numbers", func(t *testing.T) {
		p := validUserParams()
		p.Password = "onlyletters"

		_, err := NewUser(p)

		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", err.(*shared.DomainError).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		p := validUserParams()
		p.Role = "broker"

		_, err := NewUser(p)

		require.Error(t, err)
		assert.Equal(t, "INVALID_ROLE", err.(*shared.DomainError).Code)
	})

	t.Run("company name required", func(t *testing.T) {
		p := validUserParams()
		p.CompanyName = "  "

		_, err := NewUser(p)

		require.Error(t, err)
		assert.Equal(t, "INVALID_COMPANY_NAME", err.(*shared.DomainError).Code)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(validUserParams())
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "new-password-1")

		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", err.(*shared.DomainError).Code)
	})

	t.Run("successful change", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("s3cret-password", "new-password-1"))

		assert.True(t, user.VerifyPassword("new-password-1"))
		assert.False(t, user.VerifyPassword("s3cret-password"))
	})
}

func TestUser_UpdateProfile(t *testing.T) {
	user, err := NewUser(validUserParams())
	require.NoError(t, err)

	require.NoError(t, user.UpdateProfile(UpdateProfileParams{
		CompanyName: "Acme Global Trading",
		ContactName: "A. Diallo",
		Country:     "GH",
	}))

	assert.Equal(t, "Acme Global Trading", user.CompanyName)
	assert.Equal(t, "GH", user.Country)

	err = user.UpdateProfile(UpdateProfileParams{CompanyName: "", Country: "GH"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_COMPANY_NAME", err.(*shared.DomainError).Code)
}

func TestUser_StatusTransitions(t *testing.T) {
	user, err := NewUser(validUserParams())
	require.NoError(t, err)

	require.NoError(t, user.Suspend())
	assert.Equal(t, UserStatusSuspended, user.Status)
	assert.False(t, user.IsActive())

	// suspended accounts cannot be suspended again
	assert.Error(t, user.Suspend())

	require.NoError(t, user.Deactivate())
	assert.Equal(t, UserStatusDeactivated, user.Status)
	assert.Error(t, user.Deactivate())
}

func TestUser_AccountAgeDays(t *testing.T) {
	user, err := NewUser(validUserParams())
	require.NoError(t, err)

	assert.Equal(t, 0, user.AccountAgeDays(user.CreatedAt))
	assert.Equal(t, 45, user.AccountAgeDays(user.CreatedAt.Add(45*24*time.Hour)))
	// clock skew never yields a negative age
	assert.Equal(t, 0, user.AccountAgeDays(user.CreatedAt.Add(-time.Hour)))
}

func TestUser_Roles(t *testing.T) {
	exporter, err := NewUser(validUserParams())
	require.NoError(t, err)
	assert.True(t, exporter.IsExporter())
	assert.False(t, exporter.IsImporter())

	p := validUserParams()
	p.Role = RoleImporter
	importer, err := NewUser(p)
	require.NoError(t, err)
	assert.True(t, importer.IsImporter())
}
