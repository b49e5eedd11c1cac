package recording

import (
	"fmt"
	"time"
)

// FormatClock renders an elapsed duration as a zero-padded MM:SS string.
// Minutes are not wrapped at the hour, so a one hour recording shows as
// "60:00".
func FormatClock(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
