package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

// NormalizeCustomer trims text fields and defaults the status to active.
func NormalizeCustomer(c model.Customer) model.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Status == "" {
		c.Status = model.CustomerStatusActive
	}
	return c
}

// ValidateCustomer checks customer form rules.
func ValidateCustomer(c model.Customer) error {
	if c.Name == "" {
		return domainErrors.NewValidationError("name", "Name is required")
	}
	if c.Email == "" {
		return domainErrors.NewValidationError("email", "Email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return domainErrors.NewValidationError("email", "Email must be a valid address")
	}
	if !c.Status.Valid() {
		return domainErrors.NewValidationError("status", "Status must be active or inactive")
	}
	return nil
}

// NormalizeProduct trims the title.
func NormalizeProduct(p model.Product) model.Product {
	p.Title = strings.TrimSpace(p.Title)
	return p
}

// ValidateProduct checks product form rules.
func ValidateProduct(p model.Product) error {
	if p.Title == "" {
		return domainErrors.NewValidationError("title", "Title is required")
	}
	if !p.Price.Valid() {
		return domainErrors.NewValidationError("price", "Price must be a non-negative number")
	}
	if p.Category == "" {
		return domainErrors.NewValidationError("category", "Category is required")
	}
	if !p.Category.Valid() {
		return domainErrors.NewValidationError("category", "Category must be subscriptions, hardware or services")
	}
	return nil
}
