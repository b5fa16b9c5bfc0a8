package customer

import (
	"fmt"
	"time"

	"retail-customers/internal/domain"
)

// Record is the persisted form of a customer. Credit is kept in cents.
type Record struct {
	ID                     string        `json:"id"`
	FirstName              string        `json:"firstName"`
	LastName               string        `json:"lastName"`
	Email                  string        `json:"email"`
	PhoneNumber            string        `json:"phoneNumber"`
	Address                AddressRecord `json:"address"`
	AvailableCreditInCents int64         `json:"availableCreditInCents"`
	Currency               string        `json:"currency,omitempty"`
	CreatedAt              time.Time     `json:"createdAt"`
	UpdatedAt              time.Time     `json:"updatedAt"`
}

// AddressRecord is the persisted form of an address.
type AddressRecord struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ToRecord flattens a customer for storage.
func ToRecord(c *domain.Customer) Record {
	addr := c.Address()
	credit := c.AvailableCredit()
	return Record{
		ID:          c.ID().String(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		Email:       c.Email().String(),
		PhoneNumber: c.Phone().String(),
		Address: AddressRecord{
			Street:     addr.Street(),
			City:       addr.City(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
		},
		AvailableCreditInCents: credit.Cents(),
		Currency:               credit.Currency(),
		CreatedAt:              c.CreatedAt(),
		UpdatedAt:              c.UpdatedAt(),
	}
}

// Customer rebuilds the aggregate, running every domain validation again.
func (r Record) Customer() (*domain.Customer, error) {
	id, err := domain.ParseCustomerID(r.ID)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	email, err := domain.NewEmail(r.Email)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	phone, err := domain.NewPhoneNumber(r.PhoneNumber)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	addr, err := domain.NewAddress(r.Address.Street, r.Address.City, r.Address.PostalCode, r.Address.Country)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	credit, err := domain.NewMoney(r.AvailableCreditInCents, r.Currency)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	c, err := domain.ReconstituteCustomer(id, domain.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     email,
		Phone:     phone,
		Address:   addr,
	}, credit, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, corrupt(r.ID, err)
	}
	return c, nil
}

// corrupt reports a stored row that fails domain validation. The cause is
// flattened so it never reads as a client validation error.
func corrupt(id string, cause error) error {
	return fmt.Errorf("decode customer %q: %w: %v", id, domain.ErrCorruptRecord, cause)
}

func notFound(id domain.CustomerID) error {
	return fmt.Errorf("customer with id %s %w", id, domain.ErrNotFound)
}
