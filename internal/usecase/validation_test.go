package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

func validationMessage(t *testing.T, err error) (string, string) {
	t.Helper()
	var v *domainErrors.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return v.Field, v.Message
}

func TestNormalizeCustomerDefaultsStatus(t *testing.T) {
	c := NormalizeCustomer(model.Customer{Name: "  Ann ", Email: " ann@fins.io "})
	if c.Name != "Ann" || c.Email != "ann@fins.io" {
		t.Fatalf("fields not trimmed: %+v", c)
	}
	if c.Status != model.CustomerStatusActive {
		t.Fatalf("expected active status, got %q", c.Status)
	}

	kept := NormalizeCustomer(model.Customer{Status: model.CustomerStatusInactive})
	if kept.Status != model.CustomerStatusInactive {
		t.Fatalf("explicit status overwritten: %q", kept.Status)
	}
}

func TestValidateCustomer(t *testing.T) {
	if err := ValidateCustomer(model.Customer{Name: "Ann", Email: "ann@fins.io", Status: model.CustomerStatusActive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		in    model.Customer
		field string
		msg   string
	}{
		{model.Customer{Email: "a@b", Status: "active"}, "name", "Name is required"},
		{model.Customer{Name: "Ann", Status: "active"}, "email", "Email is required"},
		{model.Customer{Name: "Ann", Email: "ann", Status: "active"}, "email", "Email must be a valid address"},
		{model.Customer{Name: "Ann", Email: "ann@fins.io", Status: "vip"}, "status", "Status must be active or inactive"},
	}
	for _, tc := range cases {
		field, msg := validationMessage(t, ValidateCustomer(tc.in))
		if field != tc.field || msg != tc.msg {
			t.Fatalf("%+v: got %s %q, want %s %q", tc.in, field, msg, tc.field, tc.msg)
		}
	}
}

func TestValidateCustomerEmailNeedsOnlyAt(t *testing.T) {
	for _, email := range []string{"a@", "@b", "@"} {
		if err := ValidateCustomer(model.Customer{Name: "Ann", Email: email, Status: model.CustomerStatusActive}); err != nil {
			t.Fatalf("%q: unexpected error: %v", email, err)
		}
	}
}

func TestValidateProduct(t *testing.T) {
	five := model.PriceFromFloat(5)
	if err := ValidateProduct(model.Product{Title: "Router", Price: five, Category: model.CategoryHardware}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateProduct(model.Product{Title: "Free tier", Price: model.PriceFromFloat(0), Category: model.CategoryServices}); err != nil {
		t.Fatalf("zero price should be valid: %v", err)
	}

	cases := []struct {
		in    model.Product
		field string
		msg   string
	}{
		{model.Product{Title: "", Price: five, Category: model.CategoryHardware}, "title", "Title is required"},
		{model.Product{Title: "Router", Category: model.CategoryHardware}, "price", "Price must be a non-negative number"},
		{model.Product{Title: "Router", Price: model.PriceFromFloat(-1), Category: model.CategoryHardware}, "price", "Price must be a non-negative number"},
		{model.Product{Title: "Router", Price: five}, "category", "Category is required"},
		{model.Product{Title: "Router", Price: five, Category: "toys"}, "category", "Category must be subscriptions, hardware or services"},
	}
	for _, tc := range cases {
		field, msg := validationMessage(t, ValidateProduct(tc.in))
		if field != tc.field || msg != tc.msg {
			t.Fatalf("%+v: got %s %q, want %s %q", tc.in, field, msg, tc.field, tc.msg)
		}
	}
}

func TestNormalizeProductTrimsTitle(t *testing.T) {
	p := NormalizeProduct(model.Product{Title: "   "})
	if p.Title != "" {
		t.Fatalf("expected blank title, got %q", p.Title)
	}
}
