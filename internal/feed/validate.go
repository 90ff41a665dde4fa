// ABOUTME: Form validation for post create and update input.
// ABOUTME: Maps validator tag failures to one readable message per field.
package feed

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/2389-research/minigram/internal/models"
)

// postForm mirrors PostInput with validation rules. Field order sets message order.
type postForm struct {
	ImageURL string `validate:"required,http_url"`
	Caption  string `validate:"required,min=3"`
	Author   string `validate:"required,min=2"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateInput checks a post form and returns a *ValidationError listing every failing field.
func ValidateInput(in models.PostInput) error {
	in = models.NewPostInput(in.Author, in.Caption, in.ImageURL)
	form := postForm{ImageURL: in.ImageURL, Caption: in.Caption, Author: in.Author}

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate post: %w", err)
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fieldMessage(fe))
	}
	return &ValidationError{Messages: out}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "ImageURL":
		if fe.Tag() == "required" {
			return "image URL is required"
		}
		return "image URL must be a valid http or https URL"
	case "Caption":
		return "caption must be at least 3 characters"
	case "Author":
		return "author must be at least 2 characters"
	}
	return fe.Field() + " " + fe.Tag()
}
