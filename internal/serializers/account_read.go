package serializers

import (
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
)

// AccountRead is the public representation of an account
type AccountRead struct {
	ID           uuid.UUID   `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	Sex          domain.Sex  `json:"sex"`
	Role         domain.Role `json:"role"`
	DOB          *string     `json:"dob"`
	Age          *int        `json:"age"`
	Address      string      `json:"address"`
	ProfilePhoto *string     `json:"profile_photo"`
	DateUpdated  time.Time   `json:"date_updated"`
	DateJoined   time.Time   `json:"date_joined"`
}

// NewAccountRead builds the read representation. Age is derived at now;
// photoURL is rendered as null when empty.
func NewAccountRead(acc *domain.Account, now time.Time, photoURL string) AccountRead {
	read := AccountRead{
		ID:          acc.ID,
		FullName:    acc.FullName(),
		Email:       acc.Email,
		PhoneNumber: acc.PhoneNumber,
		Sex:         acc.Sex,
		Role:        acc.Role,
		Age:         acc.AgeAt(now),
		Address:     acc.Address,
		DateUpdated: acc.DateUpdated.UTC(),
		DateJoined:  acc.DateJoined.UTC(),
	}
	if acc.DOB != nil {
		dob := FormatDate(*acc.DOB)
		read.DOB = &dob
	}
	if photoURL != "" {
		read.ProfilePhoto = &photoURL
	}
	return read
}

// NewAccountReadList maps accounts in order. photoURL resolves a stored photo
// key; nil renders keys as-is.
func NewAccountReadList(accounts []*domain.Account, now time.Time, photoURL func(key string) string) []AccountRead {
	out := make([]AccountRead, 0, len(accounts))
	for _, acc := range accounts {
		url := acc.ProfilePhoto
		if photoURL != nil && url != "" {
			url = photoURL(url)
		}
		out = append(out, NewAccountRead(acc, now, url))
	}
	return out
}
