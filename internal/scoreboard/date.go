package scoreboard

import (
	"fmt"
	"time"
)

// FormatDate renders a score timestamp like "Oct 16 2026, 9:5:3".
// Day, hour, minute and second are not zero padded.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d %d, %d:%d:%d",
		t.Month().String()[:3], t.Day(), t.Year(),
		t.Hour(), t.Minute(), t.Second())
}
