// Package clipboard wraps system clipboard access.
package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// SetText replaces the clipboard contents with text.
func SetText(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// GetText returns the current clipboard contents.
func GetText() (string, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
