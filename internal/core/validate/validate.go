// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// Required validates a value is non-empty after trimming whitespace.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Year parses a year typed by a user. Negative years are allowed for
// antiquities; zero is not a valid year.
func Year(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("year is required")
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("year must be a whole number")
	}
	if year == 0 {
		return 0, fmt.Errorf("year cannot be zero")
	}
	return year, nil
}
