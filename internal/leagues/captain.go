package leagues

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "US"

// NormalizePhone returns the number in E.164 form. Empty input stays empty.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("captain phone is invalid: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("captain phone is not a valid number")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// NormalizeCaptain trims fields, validates the email address, and formats the phone.
func NormalizeCaptain(c Captain) (Captain, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Email != "" {
		addr, err := mail.ParseAddress(c.Email)
		if err != nil || addr.Address != c.Email {
			return Captain{}, fmt.Errorf("captain email is invalid")
		}
	}
	phone, err := NormalizePhone(c.Phone)
	if err != nil {
		return Captain{}, err
	}
	c.Phone = phone
	return c, nil
}
