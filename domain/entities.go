package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the access level of an account
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role in display order
var Roles = []Role{RoleTenant, RoleLandlord, RoleAgent, RoleAdmin}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Sex of the account holder
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Valid reports whether s is one of the known values
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Credentials holds what an account needs to authenticate
type Credentials struct {
	PasswordHash string
	IsActive     bool
	IsVerified   bool
	LastLogin    *time.Time
}

// Permissions holds the privilege flags of an account
type Permissions struct {
	Role        Role
	IsStaff     bool
	IsSuperuser bool
}

// IsAdmin reports whether the permission set carries full administrative rights
func (p Permissions) IsAdmin() bool {
	return p.IsSuperuser || p.Role == RoleAdmin
}

// Account represents one platform user, keyed by email
type Account struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	Sex          Sex
	DOB          *time.Time
	Address      string
	ProfilePhoto string

	Credentials
	Permissions

	DateJoined  time.Time
	DateUpdated time.Time
}

// FullName returns "First Last"
func (a *Account) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// AgeAt returns the age of the account holder at now, or nil when no date of birth is set
func (a *Account) AgeAt(now time.Time) *int {
	if a.DOB == nil {
		return nil
	}
	age := Age(*a.DOB, now)
	return &age
}

// IsPrivileged reports whether the account satisfies the superuser invariant
func (a *Account) IsPrivileged() bool {
	return a.IsStaff && a.IsSuperuser && a.IsVerified && a.Role == RoleAdmin
}

// PhotoKeyPrefix is the object key prefix reserved for photos of accountID
func PhotoKeyPrefix(accountID uuid.UUID) string {
	return "accounts/" + accountID.String() + "/"
}

// OwnsPhotoKey reports whether key lies under the account's photo prefix
func (a *Account) OwnsPhotoKey(key string) bool {
	prefix := PhotoKeyPrefix(a.ID)
	return len(key) > len(prefix) && strings.HasPrefix(key, prefix)
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)\nID: %s", a.Email, a.Role, a.ID)
}

// Age computes whole years elapsed between dob and now. A birthday that has not
// occurred yet in now's year does not count. Never negative.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Date truncates t to a calendar date at midnight UTC
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AccountFields carries the optional attributes merged into a new account.
// Nil flag pointers mean "not supplied" so defaults can be told apart from
// explicit overrides.
type AccountFields struct {
	FirstName    string
	LastName     string
	PhoneNumber  string
	Sex          Sex
	Role         Role
	DOB          *time.Time
	Address      string
	ProfilePhoto string

	IsActive    *bool
	IsVerified  *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// ProfileUpdate carries a partial profile write; nil fields are left unchanged
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PhoneNumber  *string
	Sex          *Sex
	Role         *Role
	DOB          *time.Time
	Address      *string
	ProfilePhoto *string
}

// Empty reports whether the update carries no field at all
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.PhoneNumber == nil && u.Sex == nil && u.Role == nil &&
		u.DOB == nil && u.Address == nil && u.ProfilePhoto == nil
}

// DateJoinedPeriod narrows an account search by join date
type DateJoinedPeriod string

const (
	JoinedAnyTime   DateJoinedPeriod = ""
	JoinedToday     DateJoinedPeriod = "today"
	JoinedPast7Days DateJoinedPeriod = "past_7_days"
	JoinedThisMonth DateJoinedPeriod = "this_month"
	JoinedThisYear  DateJoinedPeriod = "this_year"
)

// Since returns the lower bound of the period relative to now, or false for any time
func (p DateJoinedPeriod) Since(now time.Time) (time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case JoinedToday:
		return day, true
	case JoinedPast7Days:
		return day.AddDate(0, 0, -7), true
	case JoinedThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case JoinedThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// AccountFilter describes an administrative account search
type AccountFilter struct {
	Search     string
	IsActive   *bool
	IsVerified *bool
	IsStaff    *bool
	Role       Role
	DateJoined DateJoinedPeriod
	Ordering   string
}
