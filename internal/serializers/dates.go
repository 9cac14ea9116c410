package serializers

import (
	"strings"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
)

// DateOutputLayout renders dates as DD/MM/YYYY
const DateOutputLayout = "02/01/2006"

// DateInputLayouts are the accepted dob formats: DD-MM-YYYY and DD/MM/YYYY
var DateInputLayouts = []string{"02-01-2006", "02/01/2006"}

const (
	msgDateFormat  = "Date has wrong format. Use one of these formats instead: DD-MM-YYYY, DD/MM/YYYY."
	msgDOBInFuture = "Date of birth can't be in the future"
	dobField       = "dob"
)

// ParseDate parses raw in one of DateInputLayouts
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range DateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError(field, msgDateFormat, domain.ErrInvalidDate)
}

// ParseDOB parses a date of birth and rejects dates after today. Today is
// accepted.
func ParseDOB(raw string, now time.Time) (time.Time, error) {
	dob, err := ParseDate(dobField, raw)
	if err != nil {
		return time.Time{}, err
	}
	if dob.After(domain.Date(now)) {
		return time.Time{}, domain.NewValidationError(dobField, msgDOBInFuture, domain.ErrDOBInFuture)
	}
	return dob, nil
}

// FormatDate renders t as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateOutputLayout)
}
