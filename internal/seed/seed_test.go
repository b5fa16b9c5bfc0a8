package seed

import (
	"context"
	"testing"

	custrepo "retail-customers/internal/repository/customer"
	customersvc "retail-customers/internal/service/customer"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc := customersvc.New(custrepo.NewMemory(), nil, nil)

	n, err := Apply(ctx, svc, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 customers seeded, got %d", n)
	}

	ranked, err := svc.ListByCredit(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{25075, 15000, 2550}
	for i, c := range ranked {
		if c.AvailableCredit().Cents() != want[i] {
			t.Fatalf("position %d: expected %d cents, got %d", i, want[i], c.AvailableCredit().Cents())
		}
	}
}

func TestApply_SkipsWhenNotEmpty(t *testing.T) {
	ctx := context.Background()
	svc := customersvc.New(custrepo.NewMemory(), nil, nil)
	if _, err := Apply(ctx, svc, nil); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	n, err := Apply(ctx, svc, nil)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no customers on second run, got %d", n)
	}
	list, _ := svc.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 customers total, got %d", len(list))
	}
}
