package export

import (
	"fmt"
	"time"
)

// FormatDuration renders an optional elapsed time as "Xh Ym Zs" by
// component breakdown, or "" when absent. A 90 minute duration is
// "1h 30m 0s", never "90m 0s".
func FormatDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	h := *d / time.Hour
	m := (*d % time.Hour) / time.Minute
	s := (*d % time.Minute) / time.Second
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
