package catalog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var statusValues = func() []any {
	out := make([]any, len(types.Statuses))
	for i, s := range types.Statuses {
		out[i] = s
	}
	return out
}()

// prepareGraph fills defaults into an unsaved author graph and validates it.
// Copies without a status become available. Failures wrap
// ErrConstraintViolation.
func prepareGraph(a *types.Author) error {
	if a == nil {
		return fmt.Errorf("%w: author is required", types.ErrConstraintViolation)
	}
	if err := checkGraphShape(a); err != nil {
		return err
	}
	for _, b := range a.Books {
		for _, c := range b.Copies {
			if c.Status == "" {
				c.Status = types.StatusAvailable
			}
		}
	}

	if err := validateAuthor(a); err != nil {
		return fmt.Errorf("%w: author: %w", types.ErrConstraintViolation, err)
	}
	for i, b := range a.Books {
		if err := validateBook(b); err != nil {
			return fmt.Errorf("%w: book %d: %w", types.ErrConstraintViolation, i+1, err)
		}
		for j, c := range b.Copies {
			if err := validateCopy(c); err != nil {
				return fmt.Errorf("%w: book %d copy %d: %w", types.ErrConstraintViolation, i+1, j+1, err)
			}
		}
	}
	return nil
}

// checkGraphShape rejects nil books and copies, which decoded JSON can
// contain.
func checkGraphShape(a *types.Author) error {
	for i, b := range a.Books {
		if b == nil {
			return fmt.Errorf("%w: book %d is missing", types.ErrConstraintViolation, i+1)
		}
		for j, c := range b.Copies {
			if c == nil {
				return fmt.Errorf("%w: book %d copy %d is missing", types.ErrConstraintViolation, i+1, j+1)
			}
		}
	}
	return nil
}

func validateAuthor(a *types.Author) error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&a.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&a.Nationality, validation.Length(0, 255)),
	)
}

func validateBook(b *types.Book) error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&b.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(1, 255),
		),
		validation.Field(&b.Pages, validation.Min(0).Error("pages must not be negative")),
	)
}

func validateCopy(c *types.Copy) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Code,
			validation.Required.Error("copy code is required"),
			validation.Length(1, 255),
		),
		validation.Field(&c.Status,
			validation.Required,
			validation.In(statusValues...).Error("status must be one of "+types.StatusTokens()),
		),
		validation.Field(&c.Location, validation.Length(0, 255)),
	)
}

// validateCode checks a single copy code typed at the console.
func validateCode(code string) error {
	if err := validation.Validate(code, validation.Required.Error("copy code is required")); err != nil {
		return fmt.Errorf("%w: %w", types.ErrConstraintViolation, err)
	}
	return nil
}
