package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-customers/internal/domain"
)

// runContract exercises the behaviour every Repository implementation must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("SaveAndFindByID", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		c := newTestCustomer(t, "John", "Doe", 1050)
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := repo.FindByID(ctx, c.ID())
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got == nil || !got.Equals(c) {
			t.Fatalf("expected customer %s, got %+v", c.ID(), got)
		}
		if got.FullName() != "John Doe" || got.Email().String() != "john.doe@example.com" {
			t.Fatalf("unexpected fields %q %q", got.FullName(), got.Email())
		}
		if !got.AvailableCredit().Equals(c.AvailableCredit()) {
			t.Fatalf("credit mismatch: %v vs %v", got.AvailableCredit(), c.AvailableCredit())
		}
		if !got.Address().Equals(c.Address()) || !got.Phone().Equals(c.Phone()) {
			t.Fatalf("contact details mismatch")
		}
		if !got.CreatedAt().Equal(c.CreatedAt()) || !got.UpdatedAt().Equal(c.UpdatedAt()) {
			t.Fatalf("timestamps mismatch: %v/%v vs %v/%v", got.CreatedAt(), got.UpdatedAt(), c.CreatedAt(), c.UpdatedAt())
		}
	})

	t.Run("FindByIDAbsent", func(t *testing.T) {
		repo := newRepo(t)
		id, _ := domain.ParseCustomerID("missing")
		got, err := repo.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("expected no error for absent id, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil customer, got %+v", got)
		}
	})

	t.Run("FindAll", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		for _, name := range []string{"Ann", "Bob", "Cid"} {
			if err := repo.Save(ctx, newTestCustomer(t, name, "Test", 0)); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}
		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 customers, got %d", len(all))
		}
	})

	t.Run("Update", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		c := newTestCustomer(t, "John", "Doe", 0)
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("Save: %v", err)
		}

		loaded, err := repo.FindByID(ctx, c.ID())
		if err != nil || loaded == nil {
			t.Fatalf("FindByID: %v %v", loaded, err)
		}
		credit, _ := domain.NewMoney(5000, "EUR")
		if err := loaded.AddCredit(credit); err != nil {
			t.Fatalf("AddCredit: %v", err)
		}
		if err := repo.Update(ctx, loaded); err != nil {
			t.Fatalf("Update: %v", err)
		}

		reloaded, err := repo.FindByID(ctx, c.ID())
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if reloaded.AvailableCredit().Cents() != 5000 {
			t.Fatalf("expected persisted credit 5000, got %d", reloaded.AvailableCredit().Cents())
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Update(context.Background(), newTestCustomer(t, "Ghost", "User", 0))
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		c := newTestCustomer(t, "John", "Doe", 0)
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := repo.Delete(ctx, c.ID()); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got, err := repo.FindByID(ctx, c.ID())
		if err != nil || got != nil {
			t.Fatalf("expected customer gone, got %+v err=%v", got, err)
		}
		if err := repo.Delete(ctx, c.ID()); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("FindAllSortedByCredit", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		for i, cents := range []int64{5000, 10000, 7500} {
			c := newTestCustomer(t, string(rune('A'+i))+"nn", "Test", cents)
			if err := repo.Save(ctx, c); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}

		desc, err := repo.FindAllSortedByCredit(ctx, false)
		if err != nil {
			t.Fatalf("FindAllSortedByCredit(desc): %v", err)
		}
		assertCredits(t, desc, []int64{10000, 7500, 5000})

		asc, err := repo.FindAllSortedByCredit(ctx, true)
		if err != nil {
			t.Fatalf("FindAllSortedByCredit(asc): %v", err)
		}
		assertCredits(t, asc, []int64{5000, 7500, 10000})
	})
}

func newTestCustomer(t *testing.T, first, last string, cents int64) *domain.Customer {
	t.Helper()
	email, err := domain.NewEmail(first + "." + last + "@example.com")
	if err != nil {
		t.Fatalf("email: %v", err)
	}
	phone, _ := domain.NewPhoneNumber("+34 612 345 678")
	addr, _ := domain.NewAddress("Main St 123", "Madrid", "28001", "Spain")
	credit, err := domain.NewMoney(cents, "EUR")
	if err != nil {
		t.Fatalf("money: %v", err)
	}
	c, err := domain.NewCustomer(domain.Profile{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Address:   addr,
	}, domain.WithCredit(credit))
	if err != nil {
		t.Fatalf("customer: %v", err)
	}
	// Storage round-trips may drop sub-microsecond precision.
	ts := c.CreatedAt().Truncate(time.Millisecond)
	c, err = domain.ReconstituteCustomer(c.ID(), c.Profile(), c.AvailableCredit(), ts, ts)
	if err != nil {
		t.Fatalf("reconstitute: %v", err)
	}
	return c
}

func assertCredits(t *testing.T, customers []*domain.Customer, want []int64) {
	t.Helper()
	if len(customers) != len(want) {
		t.Fatalf("expected %d customers, got %d", len(want), len(customers))
	}
	for i, c := range customers {
		if c.AvailableCredit().Cents() != want[i] {
			got := make([]int64, len(customers))
			for j, cc := range customers {
				got[j] = cc.AvailableCredit().Cents()
			}
			t.Fatalf("expected credit order %v, got %v", want, got)
		}
	}
}
