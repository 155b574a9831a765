package models

import (
	"fmt"
	"time"

	"github.com/kestrelapps/lodestar/internal/constants"
)

func validateTitle(title string) error {
	if len(title) < constants.MinTitleLength {
		return fmt.Errorf("title must be at least %d characters", constants.MinTitleLength)
	}
	if len(title) > constants.MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", constants.MaxTitleLength)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	return nil
}
