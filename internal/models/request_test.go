package models

import (
	"errors"
	"math"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        ProductRequest
		wantFields []string
		wantName   string
		wantPrice  float64
	}{
		{
			name:     "valid",
			req:      ProductRequest{Name: ptr("ribs"), Price: ptr(14.0)},
			wantName: "ribs",
		},
		{
			name:     "name is trimmed",
			req:      ProductRequest{Name: ptr("  poutine  "), Price: ptr(5.9)},
			wantName: "poutine",
		},
		{
			name:       "name too short",
			req:        ProductRequest{Name: ptr("abc"), Price: ptr(1.0)},
			wantFields: []string{"name"},
		},
		{
			name:       "name too short after trim",
			req:        ProductRequest{Name: ptr("  abc   "), Price: ptr(1.0)},
			wantFields: []string{"name"},
		},
		{
			name:       "zero price",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(0.0)},
			wantFields: []string{"price"},
		},
		{
			name:       "negative price",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(-5.0)},
			wantFields: []string{"price"},
		},
		{
			name:      "price rounded to cents",
			req:       ProductRequest{Name: ptr("beer pint"), Price: ptr(4.999)},
			wantName:  "beer pint",
			wantPrice: 5,
		},
		{
			name:       "price rounds to zero",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(0.001)},
			wantFields: []string{"price"},
		},
		{
			name:       "price above column limit",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(1e8)},
			wantFields: []string{"price"},
		},
		{
			name:       "price rounds above column limit",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(99999999.999)},
			wantFields: []string{"price"},
		},
		{
			name:       "infinite price",
			req:        ProductRequest{Name: ptr("beer pint"), Price: ptr(math.Inf(1))},
			wantFields: []string{"price"},
		},
		{
			name:       "missing fields",
			req:        ProductRequest{},
			wantFields: []string{"name", "price"},
		},
		{
			name:       "both invalid",
			req:        ProductRequest{Name: ptr(""), Price: ptr(-1.0)},
			wantFields: []string{"name", "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.req.Validate()

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				if in.Name != tt.wantName {
					t.Errorf("Validate() name = %q, want %q", in.Name, tt.wantName)
				}
				if tt.wantPrice != 0 && in.Price != tt.wantPrice {
					t.Errorf("Validate() price = %v, want %v", in.Price, tt.wantPrice)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("Validate() got %d field errors, want %d: %v", len(verrs), len(tt.wantFields), verrs)
			}
			for i, field := range tt.wantFields {
				if verrs[i].Field != field {
					t.Errorf("field error %d = %q, want %q", i, verrs[i].Field, field)
				}
			}
		})
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateOrderRequest
		wantField string
	}{
		{
			name: "valid",
			req:  CreateOrderRequest{TableSessionID: ptr(int64(1)), ProductID: ptr(int64(2)), Quantity: ptr(int64(3))},
		},
		{
			name:      "missing session",
			req:       CreateOrderRequest{ProductID: ptr(int64(2)), Quantity: ptr(int64(3))},
			wantField: "table_session_id",
		},
		{
			name:      "missing product",
			req:       CreateOrderRequest{TableSessionID: ptr(int64(1)), Quantity: ptr(int64(3))},
			wantField: "product_id",
		},
		{
			name:      "zero quantity",
			req:       CreateOrderRequest{TableSessionID: ptr(int64(1)), ProductID: ptr(int64(2)), Quantity: ptr(int64(0))},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			req:       CreateOrderRequest{TableSessionID: ptr(int64(1)), ProductID: ptr(int64(2)), Quantity: ptr(int64(-2))},
			wantField: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.req.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				if in.TableSessionID != 1 || in.ProductID != 2 || in.Quantity != 3 {
					t.Errorf("Validate() input = %+v", in)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verrs[0].Field, tt.wantField)
			}
		})
	}
}

func TestOpenSessionRequest_Validate(t *testing.T) {
	if _, err := (OpenSessionRequest{}).Validate(); err == nil {
		t.Error("expected error for missing table_id")
	}

	id, err := OpenSessionRequest{TableID: ptr(int64(4))}.Validate()
	if err != nil || id != 4 {
		t.Errorf("Validate() = %d, %v, want 4, nil", id, err)
	}
}
