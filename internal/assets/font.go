package assets

import (
	"fmt"

	"golang.org/x/image/font/opentype"
)

// ValidateFont checks that data is a parseable OpenType/TrueType font.
// The vector backend cannot substitute a system font, so corrupt bytes
// must surface before layout starts.
func ValidateFont(data []byte) error {
	if _, err := opentype.Parse(data); err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	return nil
}
