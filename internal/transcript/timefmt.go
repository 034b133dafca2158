package transcript

import (
	"fmt"
	"math"
)

// FormatTime converts seconds to an SRT timestamp HH:MM:SS,mmm.
// Hours are not wrapped and milliseconds are truncated, not rounded.
// Negative and non-finite inputs format as zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	// 1ns of slack for products like 61.123*1000 that land just under a whole ms.
	totalMillis := int64(math.Floor(seconds*1000 + 1e-6))

	millis := totalMillis % 1000
	totalSeconds := totalMillis / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
