package schema

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// numberPattern accepts digits with optional dashes and a leading plus.
var numberPattern = regexp.MustCompile(`^\+?[0-9-]{1,40}$`)

// Validate checks user-supplied contact input before it is normalized.
func (c Contact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&c.Number,
			validation.Required.Error("number is required"),
			validation.Match(numberPattern).Error("number must contain only digits and dashes, optionally starting with +"),
		),
	)
}

// ValidateKey checks that c can address stored records.
// Stored numbers are matched as they are, so only presence is required.
func (c Contact) ValidateKey() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required.Error("name is required")),
		validation.Field(&c.Number, validation.Required.Error("number is required")),
	)
}
