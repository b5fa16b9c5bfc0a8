package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// + prefix, optional parenthesized groups of 1-4 digits, up to 9 trailing digits.
	phonePattern = regexp.MustCompile(`^\+?\(?[0-9]{1,4}\)?[-\s.]?\(?[0-9]{1,4}\)?[-\s.]?[0-9]{1,9}$`)
)

// Email is a lowercase address of the form local@domain.tld.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Email{}, ErrEmptyEmail
	}
	if !emailPattern.MatchString(trimmed) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: strings.ToLower(trimmed)}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was not built by NewEmail.
func (e Email) IsZero() bool {
	return e.value == ""
}

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// PhoneNumber keeps the caller's formatting. Whitespace is ignored only while validating.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(s string) (PhoneNumber, error) {
	if strings.TrimSpace(s) == "" {
		return PhoneNumber{}, ErrEmptyPhoneNumber
	}
	if !phonePattern.MatchString(stripSpaces(s)) {
		return PhoneNumber{}, ErrInvalidPhoneNumber
	}
	return PhoneNumber{value: strings.TrimSpace(s)}, nil
}

func (p PhoneNumber) String() string {
	return p.value
}

func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}

func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Address is a delivery address. All four parts are required.
type Address struct {
	street     string
	city       string
	postalCode string
	country    string
}

func NewAddress(street, city, postalCode, country string) (Address, error) {
	switch {
	case strings.TrimSpace(street) == "":
		return Address{}, ErrEmptyStreet
	case strings.TrimSpace(city) == "":
		return Address{}, ErrEmptyCity
	case strings.TrimSpace(postalCode) == "":
		return Address{}, ErrEmptyPostalCode
	case strings.TrimSpace(country) == "":
		return Address{}, ErrEmptyCountry
	}
	return Address{
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}, nil
}

func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string { return a.country }

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Equals(other Address) bool {
	return a == other
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.street, a.city, a.postalCode, a.country)
}
