package serializers

import (
	"strings"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
)

// RegisterWrite is the registration payload
type RegisterWrite struct {
	FirstName   string      `json:"first_name" binding:"required,max=50"`
	LastName    string      `json:"last_name" binding:"required,max=50"`
	Email       string      `json:"email" binding:"required,email,max=254"`
	PhoneNumber string      `json:"phone_number" binding:"required,max=20"`
	DOB         *string     `json:"dob"`
	Sex         domain.Sex  `json:"sex" binding:"required,oneof=male female other"`
	Role        domain.Role `json:"role" binding:"omitempty,oneof=tenant landlord agent"`
	Address     string      `json:"address" binding:"max=255"`
	Password    string      `json:"password" binding:"required,min=8,max=128"`
}

// ToFields converts the payload into CreateUser arguments
func (r RegisterWrite) ToFields(now time.Time) (email, password string, fields domain.AccountFields, err error) {
	fields = domain.AccountFields{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Sex:         r.Sex,
		Role:        r.Role,
		Address:     r.Address,
	}
	if r.DOB != nil {
		dob, err := ParseDOB(*r.DOB, now)
		if err != nil {
			return "", "", domain.AccountFields{}, err
		}
		fields.DOB = &dob
	}
	return r.Email, r.Password, fields, nil
}

// ProfileWrite is a partial profile update; absent fields are left unchanged
type ProfileWrite struct {
	FirstName    *string      `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName     *string      `json:"last_name" binding:"omitempty,min=1,max=50"`
	Email        *string      `json:"email" binding:"omitempty,email,max=254"`
	PhoneNumber  *string      `json:"phone_number" binding:"omitempty,min=1,max=20"`
	DOB          *string      `json:"dob"`
	Sex          *domain.Sex  `json:"sex" binding:"omitempty,oneof=male female other"`
	Role         *domain.Role `json:"role" binding:"omitempty,oneof=tenant landlord agent admin"`
	Address      *string      `json:"address" binding:"omitempty,max=255"`
	ProfilePhoto *string      `json:"profile_photo" binding:"omitempty,max=255"`
}

// ToUpdate converts the payload into a domain.ProfileUpdate
func (p ProfileWrite) ToUpdate(now time.Time) (domain.ProfileUpdate, error) {
	update := domain.ProfileUpdate{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		Sex:          p.Sex,
		Role:         p.Role,
		Address:      p.Address,
		ProfilePhoto: p.ProfilePhoto,
	}
	if p.DOB != nil {
		dob, err := ParseDOB(*p.DOB, now)
		if err != nil {
			return domain.ProfileUpdate{}, err
		}
		update.DOB = &dob
	}
	return update, nil
}

// SuperuserWrite is the admin payload for creating a superuser
type SuperuserWrite struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
}

// PolicyWrite is a casbin policy rule
type PolicyWrite struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}
