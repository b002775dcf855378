package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/tradegate/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the side of the marketplace an account trades on
type Role string

const (
	RoleImporter Role = "importer"
	RoleExporter Role = "exporter"
)

// IsValid checks if the role is a recognized Role
func (r Role) IsValid() bool {
	return r == RoleImporter || r == RoleExporter
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusSuspended   UserStatus = "suspended"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a marketplace account. Every account belongs to exactly
// one side of the marketplace; importers post requirements, exporters bid.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         Role
	CompanyName  string
	ContactName  string
	Country      string
	Phone        string
	Status       UserStatus
	LastLoginAt  *time.Time
}

// NewUserParams holds the inputs for registering a user
type NewUserParams struct {
	Email       string
	Password    string
	Role        Role
	CompanyName string
	ContactName string
	Country     string
	Phone       string
}

// NewUser registers a new marketplace account in active status
func NewUser(p NewUserParams) (*User, error) {
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(p.Password); err != nil {
		return nil, err
	}
	if !p.Role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be importer or exporter")
	}
	if strings.TrimSpace(p.CompanyName) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if strings.TrimSpace(p.Country) == "" {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country cannot be empty")
	}

	passwordHash, err := hashPassword(p.Password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash:      passwordHash,
		Role:              p.Role,
		CompanyName:       strings.TrimSpace(p.CompanyName),
		ContactName:       strings.TrimSpace(p.ContactName),
		Country:           strings.TrimSpace(p.Country),
		Phone:             strings.TrimSpace(p.Phone),
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChangePassword changes the user's password after verifying the old one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()

	return nil
}

// UpdateProfileParams holds the mutable profile fields
type UpdateProfileParams struct {
	CompanyName string
	ContactName string
	Country     string
	Phone       string
}

// UpdateProfile updates the user's company profile
func (u *User) UpdateProfile(p UpdateProfileParams) error {
	if strings.TrimSpace(p.CompanyName) == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if strings.TrimSpace(p.Country) == "" {
		return shared.NewDomainError("INVALID_COUNTRY", "Country cannot be empty")
	}

	u.CompanyName = strings.TrimSpace(p.CompanyName)
	u.ContactName = strings.TrimSpace(p.ContactName)
	u.Country = strings.TrimSpace(p.Country)
	u.Phone = strings.TrimSpace(p.Phone)
	u.UpdatedAt = time.Now()

	return nil
}

// RecordLoginSuccess updates the last login timestamp
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Suspend suspends the account
func (u *User) Suspend() error {
	if u.Status != UserStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active accounts can be suspended")
	}
	u.Status = UserStatusSuspended
	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate deactivates the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Account is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the account can log in and trade
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsImporter returns true for importer accounts
func (u *User) IsImporter() bool {
	return u.Role == RoleImporter
}

// IsExporter returns true for exporter accounts
func (u *User) IsExporter() bool {
	return u.Role == RoleExporter
}

// AccountAgeDays returns the account age in whole days at the given instant
func (u *User) AccountAgeDays(now time.Time) int {
	age := int(now.Sub(u.CreatedAt).Hours() / 24)
	if age < 0 {
		return 0
	}
	return age
}

// Validation functions

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
