package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"retail-customers/internal/domain"
	"retail-customers/internal/logger"
	customersvc "retail-customers/internal/service/customer"
)

// Service is the subset of the customer service the seed needs.
type Service interface {
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	AddCredit(ctx context.Context, id string, amount float64) (*domain.Customer, error)
}

type customerSeed struct {
	Input  customersvc.CreateInput
	TopUps []float64
}

func credit(v float64) *float64 {
	return &v
}

var demoCustomers = []customerSeed{
	{
		Input: customersvc.CreateInput{
			FirstName:   "John",
			LastName:    "Doe",
			Email:       "john@example.com",
			PhoneNumber: "+34 612 345 678",
			Address: customersvc.AddressInput{
				Street: "Calle Mayor 1", City: "Madrid", PostalCode: "28001", Country: "Spain",
			},
			AvailableCredit: credit(100),
		},
		TopUps: []float64{50},
	},
	{
		Input: customersvc.CreateInput{
			FirstName:   "Jane",
			LastName:    "Smith",
			Email:       "jane.smith@example.com",
			PhoneNumber: "+34 698 765 432",
			Address: customersvc.AddressInput{
				Street: "Passeig de Gracia 10", City: "Barcelona", PostalCode: "08007", Country: "Spain",
			},
			AvailableCredit: credit(250.75),
		},
	},
	{
		Input: customersvc.CreateInput{
			FirstName:   "Lucia",
			LastName:    "Garcia",
			Email:       "lucia.garcia@example.com",
			PhoneNumber: "612 000 111",
			Address: customersvc.AddressInput{
				Street: "Calle Colon 5", City: "Valencia", PostalCode: "46004", Country: "Spain",
			},
		},
		TopUps: []float64{10, 15.5},
	},
}

// Apply creates demo customers for manual testing. It does nothing when the
// store already holds customers.
func Apply(ctx context.Context, svc Service, log *zap.Logger) (int, error) {
	log = logger.OrNop(log)

	existing, err := svc.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list customers: %w", err)
	}
	if len(existing) > 0 {
		log.Info("store not empty, skipping seed", zap.Int("customers", len(existing)))
		return 0, nil
	}

	for _, s := range demoCustomers {
		c, err := svc.Create(ctx, s.Input)
		if err != nil {
			return 0, fmt.Errorf("create customer %s: %w", s.Input.Email, err)
		}
		for _, amount := range s.TopUps {
			if _, err := svc.AddCredit(ctx, c.ID().String(), amount); err != nil {
				return 0, fmt.Errorf("add credit to %s: %w", s.Input.Email, err)
			}
		}
	}
	return len(demoCustomers), nil
}
