package customer

import (
	"context"
	"sort"

	"retail-customers/internal/domain"
)

// Repository persists and fetches customers.
//
// FindByID returns (nil, nil) when no record matches. Update and Delete
// return an error wrapping domain.ErrNotFound when the id is unknown.
// Save does not check for an existing id; call it only for new aggregates.
// Concurrent writers are not coordinated: the last write wins.
type Repository interface {
	Save(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id domain.CustomerID) error
	FindAllSortedByCredit(ctx context.Context, ascending bool) ([]*domain.Customer, error)
}

// SortByCredit orders customers by credit in minor units, in place.
// Customers with equal credit keep their relative order.
func SortByCredit(customers []*domain.Customer, ascending bool) {
	sort.SliceStable(customers, func(i, j int) bool {
		a := customers[i].AvailableCredit().Cents()
		b := customers[j].AvailableCredit().Cents()
		if ascending {
			return a < b
		}
		return a > b
	})
}
