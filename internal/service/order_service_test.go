package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

func TestOrderService_CreateOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	open := env.openSession(1)
	closed := env.openSession(2)
	if _, err := env.sessions.CloseSession(ctx, closed.ID); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}

	tests := []struct {
		name    string
		in      models.OrderInput
		wantErr error
	}{
		{
			name: "valid order",
			in:   models.OrderInput{TableSessionID: open.ID, ProductID: 1, Quantity: 2},
		},
		{
			name:    "session not found",
			in:      models.OrderInput{TableSessionID: 9999, ProductID: 1, Quantity: 1},
			wantErr: ErrSessionNotFound,
		},
		{
			name:    "session closed",
			in:      models.OrderInput{TableSessionID: closed.ID, ProductID: 1, Quantity: 1},
			wantErr: ErrSessionClosed,
		},
		{
			name:    "product not found",
			in:      models.OrderInput{TableSessionID: open.ID, ProductID: 9999, Quantity: 1},
			wantErr: ErrProductNotFound,
		},
		{
			name:    "session checked before product",
			in:      models.OrderInput{TableSessionID: 9999, ProductID: 9999, Quantity: 1},
			wantErr: ErrSessionNotFound,
		},
		{
			name:    "closed session checked before product",
			in:      models.OrderInput{TableSessionID: closed.ID, ProductID: 9999, Quantity: 1},
			wantErr: ErrSessionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := env.orders.CreateOrder(ctx, tt.in)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateOrder() unexpected error = %v", err)
			}
			if product == nil || product.ID != tt.in.ProductID {
				t.Errorf("CreateOrder() returned %+v, want product %d", product, tt.in.ProductID)
			}
		})
	}
}

func TestOrderService_CreateOrder_NoInsertOnFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session := env.openSession(1)
	if _, err := env.orders.CreateOrder(ctx, models.OrderInput{TableSessionID: session.ID, ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("CreateOrder() error = %v, want %v", err, ErrProductNotFound)
	}

	if _, err := env.sessions.CloseSession(ctx, session.ID); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}
	if _, err := env.orders.CreateOrder(ctx, models.OrderInput{TableSessionID: session.ID, ProductID: 1, Quantity: 1}); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("CreateOrder() error = %v, want %v", err, ErrSessionClosed)
	}

	total, err := env.orders.SessionTotal(ctx, session.ID)
	if err != nil {
		t.Fatalf("SessionTotal() error = %v", err)
	}
	if total.Quantity != 0 || total.Total != 0 {
		t.Errorf("SessionTotal() = %+v, want no orders inserted", total)
	}
}

func TestOrderService_CreateOrder_RejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv()
	session := env.openSession(1)

	for _, qty := range []int64{0, -3} {
		_, err := env.orders.CreateOrder(context.Background(), models.OrderInput{TableSessionID: session.ID, ProductID: 1, Quantity: qty})
		if !isValidationError(err, "quantity") {
			t.Errorf("CreateOrder(quantity=%d) error = %v, want validation error on quantity", qty, err)
		}
	}
}

func TestOrderService_PriceSnapshot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	session := env.openSession(1)

	// product 5 is the beer pint at 4
	if _, err := env.orders.CreateOrder(ctx, models.OrderInput{TableSessionID: session.ID, ProductID: 5, Quantity: 2}); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if _, err := env.products.UpdateProduct(ctx, 5, models.ProductInput{Name: "beer pint", Price: 5}); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if _, err := env.orders.CreateOrder(ctx, models.OrderInput{TableSessionID: session.ID, ProductID: 5, Quantity: 1}); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	total, err := env.orders.SessionTotal(ctx, session.ID)
	if err != nil {
		t.Fatalf("SessionTotal() error = %v", err)
	}
	if total.Total != 13 || total.Quantity != 3 {
		t.Errorf("SessionTotal() = %+v, want total 13 and quantity 3", total)
	}

	summaries, err := env.orders.SummarizeSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("SummarizeSession() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("SummarizeSession() returned %d entries, want 1", len(summaries))
	}
	if summaries[0].Price != 4 || summaries[0].Total != 13 || summaries[0].Quantity != 3 {
		t.Errorf("SummarizeSession()[0] = %+v, want price 4 total 13 quantity 3", summaries[0])
	}
}

func TestOrderService_EmptySession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	session := env.openSession(3)

	summaries, err := env.orders.SummarizeSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("SummarizeSession() error = %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Errorf("SummarizeSession() = %v, want empty non-nil slice", summaries)
	}

	total, err := env.orders.SessionTotal(ctx, session.ID)
	if err != nil {
		t.Fatalf("SessionTotal() error = %v", err)
	}
	if total != (models.OrderTotal{}) {
		t.Errorf("SessionTotal() = %+v, want zero total", total)
	}
}
