package storage

import (
	"fmt"

	"github.com/hongminglow/crime-report-hub/internal/models"
)

// Validate runs the record validators and wraps failures in ErrInvalidRecord.
func Validate(user models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
