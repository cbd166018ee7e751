package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// DeviceRecord is the full set of editable device attributes. A property
// update replaces all of them at once.
type DeviceRecord struct {
	Name       string     `json:"name" yaml:"name"`
	Category   Category   `json:"category" yaml:"category" validate:"required,oneof=Router Switch PC Server Firewall"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// Validate checks the record against the category set and the non-negative
// property constraint
func (r DeviceRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Normalized returns a record that always passes Validate: the category is
// matched case-insensitively and falls back to fallback, numbers are clamped
func (r DeviceRecord) Normalized(fallback Category) DeviceRecord {
	c, ok := ParseCategory(string(r.Category))
	if !ok {
		c = fallback
	}
	return DeviceRecord{
		Name:       r.Name,
		Category:   c,
		Properties: r.Properties.Clamped(),
	}
}

// formatValidationError converts validator errors into a single readable error
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be >= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
