package domain

import (
	"strings"
	"time"
)

// now is swapped in tests to pin timestamps.
var now = func() time.Time { return time.Now().UTC() }

// Profile holds the customer fields that UpdateInformation may replace.
type Profile struct {
	FirstName string
	LastName  string
	Email     Email
	Phone     PhoneNumber
	Address   Address
}

// Customer is the aggregate root for a shop customer and its credit balance.
// Fields are only reachable through methods that keep it valid.
type Customer struct {
	id        CustomerID
	firstName string
	lastName  string
	email     Email
	phone     PhoneNumber
	address   Address
	credit    Money
	createdAt time.Time
	updatedAt time.Time
}

// CustomerOption customizes NewCustomer.
type CustomerOption func(*Customer)

// WithCredit sets the opening credit balance.
func WithCredit(m Money) CustomerOption {
	return func(c *Customer) {
		c.credit = m
	}
}

// NewCustomer registers a new customer with a fresh id and a zero balance unless WithCredit is given.
func NewCustomer(p Profile, opts ...CustomerOption) (*Customer, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	ts := now()
	c := &Customer{
		id:        NewCustomerID(),
		credit:    ZeroMoney(DefaultCurrency),
		createdAt: ts,
		updatedAt: ts,
	}
	c.apply(p)
	for _, opt := range opts {
		opt(c)
	}
	if err := c.credit.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReconstituteCustomer rebuilds a stored customer. The profile and credit are validated again so corrupted rows are rejected.
func ReconstituteCustomer(id CustomerID, p Profile, credit Money, createdAt, updatedAt time.Time) (*Customer, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, ErrEmptyCustomerID
	}
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	if err := credit.validate(); err != nil {
		return nil, err
	}
	c := &Customer{
		id:        id,
		credit:    credit,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	c.apply(p)
	return c, nil
}

// AddCredit increases the available credit. Zero and negative amounts are rejected.
func (c *Customer) AddCredit(amount Money) error {
	if amount.Cents() <= 0 {
		return ErrNonPositiveCredit
	}
	total, err := c.credit.Add(amount)
	if err != nil {
		return err
	}
	c.credit = total
	c.updatedAt = now()
	return nil
}

// UpdateInformation replaces names and contact details. Nothing changes if validation fails.
func (c *Customer) UpdateInformation(p Profile) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	c.apply(p)
	c.updatedAt = now()
	return nil
}

func (c *Customer) apply(p Profile) {
	c.firstName = strings.TrimSpace(p.FirstName)
	c.lastName = strings.TrimSpace(p.LastName)
	c.email = p.Email
	c.phone = p.Phone
	c.address = p.Address
}

// validateProfile requires both names and value objects built by their constructors.
func validateProfile(p Profile) error {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return ErrEmptyFirstName
	case strings.TrimSpace(p.LastName) == "":
		return ErrEmptyLastName
	case p.Email.IsZero():
		return ErrEmptyEmail
	case p.Phone.IsZero():
		return ErrEmptyPhoneNumber
	case p.Address.IsZero():
		return ErrEmptyStreet
	}
	return nil
}

func (c *Customer) ID() CustomerID { return c.id }
func (c *Customer) FirstName() string { return c.firstName }
func (c *Customer) LastName() string { return c.lastName }
func (c *Customer) Email() Email { return c.email }
func (c *Customer) Phone() PhoneNumber { return c.phone }
func (c *Customer) Address() Address { return c.address }
func (c *Customer) AvailableCredit() Money { return c.credit }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

// FullName is computed on every call.
func (c *Customer) FullName() string {
	return c.firstName + " " + c.lastName
}

// Profile returns the current mutable fields.
func (c *Customer) Profile() Profile {
	return Profile{
		FirstName: c.firstName,
		LastName:  c.lastName,
		Email:     c.email,
		Phone:     c.phone,
		Address:   c.address,
	}
}

// Equals reports aggregate identity: two customers are the same when their ids match.
func (c *Customer) Equals(other *Customer) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id.Equals(other.id)
}

// Clone returns an independent copy. Stores use it so callers never share state with stored records.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
