package domain

import (
	"strings"

	"github.com/google/uuid"
)

// CustomerID identifies a customer. It never changes once assigned.
type CustomerID struct {
	value string
}

// NewCustomerID generates a random identifier.
func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.NewString()}
}

// ParseCustomerID wraps an existing identifier, e.g. one loaded from storage or a URL.
func ParseCustomerID(s string) (CustomerID, error) {
	if strings.TrimSpace(s) == "" {
		return CustomerID{}, ErrEmptyCustomerID
	}
	return CustomerID{value: s}, nil
}

func (id CustomerID) String() string {
	return id.value
}

func (id CustomerID) Equals(other CustomerID) bool {
	return id.value == other.value
}
