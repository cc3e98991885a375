package models

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MinProductNameLength is the minimum length of a trimmed product name
const MinProductNameLength = 4

// MaxProductPrice is the largest price a NUMERIC(10,2) column holds
const MaxProductPrice = 99999999.99

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a request
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ProductRequest is the body of POST /products and PUT /products/{id}
type ProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// ProductInput is a validated product payload
type ProductInput struct {
	Name  string
	Price float64
}

// Validate checks presence of every field and returns the normalized input
func (r ProductRequest) Validate() (ProductInput, error) {
	var errs ValidationErrors

	if r.Name == nil {
		errs.add("name", "is required")
	}
	if r.Price == nil {
		errs.add("price", "is required")
	}
	if len(errs) > 0 {
		return ProductInput{}, errs
	}

	return ProductInput{Name: *r.Name, Price: *r.Price}.Normalize()
}

// Normalize trims the name, rounds the price to cents and checks both
func (in ProductInput) Normalize() (ProductInput, error) {
	var errs ValidationErrors

	in.Name = strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(in.Name) < MinProductNameLength {
		errs.add("name", fmt.Sprintf("must contain at least %d characters", MinProductNameLength))
	}

	switch {
	case math.IsNaN(in.Price) || math.IsInf(in.Price, 0):
		errs.add("price", "must be a finite number")
	case in.Price <= 0:
		errs.add("price", "must be greater than 0")
	default:
		in.Price = math.Round(in.Price*100) / 100
		if in.Price <= 0 {
			errs.add("price", "must be at least 0.01")
		} else if in.Price > MaxProductPrice {
			errs.add("price", fmt.Sprintf("must not exceed %.2f", MaxProductPrice))
		}
	}

	return in, errs.orNil()
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	TableSessionID *int64 `json:"table_session_id"`
	ProductID      *int64 `json:"product_id"`
	Quantity       *int64 `json:"quantity"`
}

// OrderInput is a validated order payload
type OrderInput struct {
	TableSessionID int64
	ProductID      int64
	Quantity       int64
}

// Validate checks presence of every field and that quantity is positive
func (r CreateOrderRequest) Validate() (OrderInput, error) {
	var errs ValidationErrors

	if r.TableSessionID == nil {
		errs.add("table_session_id", "is required")
	}
	if r.ProductID == nil {
		errs.add("product_id", "is required")
	}
	if r.Quantity == nil {
		errs.add("quantity", "is required")
	}
	if len(errs) > 0 {
		return OrderInput{}, errs
	}

	in := OrderInput{
		TableSessionID: *r.TableSessionID,
		ProductID:      *r.ProductID,
		Quantity:       *r.Quantity,
	}
	return in, in.Check()
}

// Check validates an order payload that did not come through a request body
func (in OrderInput) Check() error {
	var errs ValidationErrors
	if in.Quantity <= 0 {
		errs.add("quantity", "must be greater than 0")
	}
	return errs.orNil()
}

// OpenSessionRequest is the body of POST /tables-sessions
type OpenSessionRequest struct {
	TableID *int64 `json:"table_id"`
}

// Validate checks that the table id is present
func (r OpenSessionRequest) Validate() (int64, error) {
	if r.TableID == nil {
		return 0, ValidationErrors{{Field: "table_id", Message: "is required"}}
	}
	return *r.TableID, nil
}
