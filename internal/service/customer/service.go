package customer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"retail-customers/internal/domain"
	"retail-customers/internal/logger"
	"retail-customers/internal/metrics"
	custrepo "retail-customers/internal/repository/customer"
)

// Service runs the customer use-cases against a repository.
type Service struct {
	repo    custrepo.Repository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Service. logger and m may be nil.
func New(repo custrepo.Repository, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		logger:  logger.OrNop(log),
		metrics: m,
	}
}

// AddressInput mirrors incoming address payloads.
type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CreateInput captures fields expected when registering a customer.
// AvailableCredit is a major-unit amount; nil or zero means no initial credit.
type CreateInput struct {
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Email           string       `json:"email"`
	PhoneNumber     string       `json:"phoneNumber"`
	Address         AddressInput `json:"address"`
	AvailableCredit *float64     `json:"availableCredit"`
}

// UpdateInput replaces a customer's personal and contact information.
type UpdateInput struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phoneNumber"`
	Address     AddressInput `json:"address"`
}

// Create registers a new customer.
func (s *Service) Create(ctx context.Context, in CreateInput) (c *domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("create", err) }()

	p, err := buildProfile(in.FirstName, in.LastName, in.Email, in.PhoneNumber, in.Address)
	if err != nil {
		return nil, err
	}
	var opts []domain.CustomerOption
	if in.AvailableCredit != nil && *in.AvailableCredit != 0 {
		credit, err := domain.MoneyFromAmount(*in.AvailableCredit, domain.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		opts = append(opts, domain.WithCredit(credit))
	}

	c, err = domain.NewCustomer(p, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	s.logger.Info("customer created", zap.String("id", c.ID().String()), zap.Int64("credit_cents", c.AvailableCredit().Cents()))
	return c, nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id string) (c *domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("get", err) }()
	return s.load(ctx, id)
}

// List returns every customer.
func (s *Service) List(ctx context.Context) (list []*domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("list", err) }()
	return s.repo.FindAll(ctx)
}

// ListByCredit returns every customer ordered by available credit.
func (s *Service) ListByCredit(ctx context.Context, ascending bool) (list []*domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("list_by_credit", err) }()
	return s.repo.FindAllSortedByCredit(ctx, ascending)
}

// Update replaces the customer's information. Credit is left untouched.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (c *domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("update", err) }()

	c, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := buildProfile(in.FirstName, in.LastName, in.Email, in.PhoneNumber, in.Address)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateInformation(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	s.logger.Info("customer updated", zap.String("id", c.ID().String()))
	return c, nil
}

// Delete removes the customer.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.ObserveOperation("delete", err) }()

	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c.ID()); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	s.logger.Info("customer deleted", zap.String("id", c.ID().String()))
	return nil
}

// AddCredit grants amount (major units, default currency) to the customer.
func (s *Service) AddCredit(ctx context.Context, id string, amount float64) (c *domain.Customer, err error) {
	defer func() { s.metrics.ObserveOperation("add_credit", err) }()

	c, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrNonPositiveCredit
	}
	credit, err := domain.MoneyFromAmount(amount, domain.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := c.AddCredit(credit); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	s.metrics.AddCredit(credit.Cents())
	s.logger.Info("credit added",
		zap.String("id", c.ID().String()),
		zap.Int64("amount_cents", credit.Cents()),
		zap.Int64("balance_cents", c.AvailableCredit().Cents()),
	)
	return c, nil
}

func (s *Service) load(ctx context.Context, rawID string) (*domain.Customer, error) {
	id, err := domain.ParseCustomerID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("customer with id %s %w", rawID, domain.ErrNotFound)
	}
	return c, nil
}

func buildProfile(firstName, lastName, email, phone string, addr AddressInput) (domain.Profile, error) {
	e, err := domain.NewEmail(email)
	if err != nil {
		return domain.Profile{}, err
	}
	ph, err := domain.NewPhoneNumber(phone)
	if err != nil {
		return domain.Profile{}, err
	}
	a, err := domain.NewAddress(addr.Street, addr.City, addr.PostalCode, addr.Country)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		FirstName: firstName,
		LastName:  lastName,
		Email:     e,
		Phone:     ph,
		Address:   a,
	}, nil
}
