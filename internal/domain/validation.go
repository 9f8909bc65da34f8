package domain

import (
	"regexp"
	"strings"
)

const (
	ProductNamePattern        = `^[а-яА-Я\s]{5,10}$`
	ProductDescriptionPattern = `^[а-яА-Я\s]{10,30}$`
)

const (
	ViolationNullName         = "null product name"
	ViolationEmptyName        = "empty product name"
	ViolationIncorrectName    = "incorrect product name"
	ViolationIncorrectDesc    = "incorrect product description"
	ViolationNullPrice        = "null product price"
	ViolationNonPositivePrice = "product price less or equal than 0"
	ViolationNullCreatedTime  = "null product created time"
)

var (
	productNameRegexp        = regexp.MustCompile(ProductNamePattern)
	productDescriptionRegexp = regexp.MustCompile(ProductDescriptionPattern)
)

// Validate performs business validation on the product.
// All rules are evaluated and every violation is reported in one *ValidationError.
func (p *Product) Validate() error {
	var violations []string

	if p.Name == nil {
		violations = append(violations, ViolationNullName)
	} else {
		if strings.TrimSpace(*p.Name) == "" {
			violations = append(violations, ViolationEmptyName)
		}
		if !productNameRegexp.MatchString(*p.Name) {
			violations = append(violations, ViolationIncorrectName)
		}
	}

	// absent description is allowed
	if p.Description != nil && !productDescriptionRegexp.MatchString(*p.Description) {
		violations = append(violations, ViolationIncorrectDesc)
	}

	if p.Price == nil {
		violations = append(violations, ViolationNullPrice)
	} else if !p.Price.IsPositive() {
		violations = append(violations, ViolationNonPositivePrice)
	}

	if p.CreatedAt.IsZero() {
		violations = append(violations, ViolationNullCreatedTime)
	}

	if len(violations) > 0 {
		return NewValidationError(violations)
	}
	return nil
}
