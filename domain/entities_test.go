package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	now := date(2024, time.March, 1)

	tests := []struct {
		name     string
		dob      time.Time
		expected int
	}{
		{name: "birthday tomorrow", dob: date(2000, time.March, 2), expected: 23},
		{name: "birthday already passed", dob: date(2000, time.February, 28), expected: 24},
		{name: "birthday today", dob: date(2000, time.March, 1), expected: 24},
		{name: "later month", dob: date(1990, time.December, 31), expected: 33},
		{name: "born today", dob: date(2024, time.March, 1), expected: 0},
		{name: "leap day birthday before it recurs", dob: date(2004, time.February, 29), expected: 20},
		{name: "future date clamps to zero", dob: date(2025, time.January, 1), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.dob, now); got != tt.expected {
				t.Errorf("expected age %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAccount_AgeAt(t *testing.T) {
	now := date(2024, time.March, 1)

	t.Run("no date of birth", func(t *testing.T) {
		acc := &Account{}
		if acc.AgeAt(now) != nil {
			t.Error("expected nil age when dob is absent")
		}
	})

	t.Run("with date of birth", func(t *testing.T) {
		dob := date(2000, time.March, 2)
		acc := &Account{DOB: &dob}
		age := acc.AgeAt(now)
		if age == nil {
			t.Fatal("expected age to be computed")
		}
		if *age != 23 {
			t.Errorf("expected 23, got %d", *age)
		}
	})
}

func TestAccount_FullNameAndString(t *testing.T) {
	id := uuid.New()
	acc := &Account{
		ID:          id,
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@example.com",
		Permissions: Permissions{Role: RoleLandlord},
	}

	if acc.FullName() != "Ada Obi" {
		t.Errorf("unexpected full name %q", acc.FullName())
	}

	s := acc.String()
	if !strings.HasPrefix(s, "ada@example.com (landlord)\n") {
		t.Errorf("unexpected string %q", s)
	}
	if !strings.HasSuffix(s, "ID: "+id.String()) {
		t.Errorf("expected id suffix in %q", s)
	}
}

func TestAccount_IsPrivileged(t *testing.T) {
	tests := []struct {
		name     string
		account  Account
		expected bool
	}{
		{
			name: "full superuser",
			account: Account{
				Credentials: Credentials{IsVerified: true},
				Permissions: Permissions{Role: RoleAdmin, IsStaff: true, IsSuperuser: true},
			},
			expected: true,
		},
		{
			name: "staff only",
			account: Account{
				Credentials: Credentials{IsVerified: true},
				Permissions: Permissions{Role: RoleAdmin, IsStaff: true},
			},
			expected: false,
		},
		{
			name: "unverified",
			account: Account{
				Permissions: Permissions{Role: RoleAdmin, IsStaff: true, IsSuperuser: true},
			},
			expected: false,
		},
		{
			name: "tenant",
			account: Account{
				Permissions: Permissions{Role: RoleTenant},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.IsPrivileged(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAccount_OwnsPhotoKey(t *testing.T) {
	acc := &Account{ID: uuid.MustParse("6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01")}
	other := uuid.MustParse("0b7c1f4e-9a2d-4e6b-8c3f-5d1a2e7b9c04")

	tests := []struct {
		key      string
		expected bool
	}{
		{"accounts/6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01/avatar", true},
		{PhotoKeyPrefix(acc.ID) + uuid.NewString(), true},
		{"accounts/6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01/", false},
		{"accounts/6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01", false},
		{PhotoKeyPrefix(other) + "avatar", false},
		{"avatars/6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01/avatar", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := acc.OwnsPhotoKey(tt.key); got != tt.expected {
			t.Errorf("OwnsPhotoKey(%q) = %v, want %v", tt.key, got, tt.expected)
		}
	}
}

func TestRoleAndSex_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("unknown role should be invalid")
	}
	if Role("").Valid() {
		t.Error("empty role should be invalid")
	}

	for _, s := range []Sex{SexMale, SexFemale, SexOther} {
		if !s.Valid() {
			t.Errorf("sex %q should be valid", s)
		}
	}
	if Sex("unknown").Valid() {
		t.Error("unknown sex should be invalid")
	}
}

func TestPermissions_IsAdmin(t *testing.T) {
	if !(Permissions{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
	if !(Permissions{Role: RoleTenant, IsSuperuser: true}).IsAdmin() {
		t.Error("superuser should be admin")
	}
	if (Permissions{Role: RoleAgent, IsStaff: true}).IsAdmin() {
		t.Error("staff agent should not be admin")
	}
}

func TestDateJoinedPeriod_Since(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		period   DateJoinedPeriod
		expected time.Time
		ok       bool
	}{
		{JoinedAnyTime, time.Time{}, false},
		{JoinedToday, date(2024, time.March, 15), true},
		{JoinedPast7Days, date(2024, time.March, 8), true},
		{JoinedThisMonth, date(2024, time.March, 1), true},
		{JoinedThisYear, date(2024, time.January, 1), true},
		{DateJoinedPeriod("last_decade"), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, ok := tt.period.Since(now)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestProfileUpdate_Empty(t *testing.T) {
	if !(ProfileUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	name := "Ada"
	if (ProfileUpdate{FirstName: &name}).Empty() {
		t.Error("update with a field should not be empty")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"user@example.com", "user@example.com"},
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com \n", "padded@example.com"},
		{"", ""},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeEmail(tt.raw)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if NormalizeEmail(got) != got {
				t.Errorf("normalization should be idempotent for %q", got)
			}
		})
	}
}
