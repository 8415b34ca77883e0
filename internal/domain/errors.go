// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

import "errors"

// Sentinel errors for the domain layer.
// Use errors.Is() to check for these errors.
// Wrap with fmt.Errorf("context: %w", ErrXxx) to add context.

var (
	// Badge parameter errors
	ErrTextTooLong  = errors.New("text parameters must be 50 characters or less")
	ErrInvalidColor = errors.New("invalid hex color")

	// Exchange rate errors
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// Preset errors
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
)
