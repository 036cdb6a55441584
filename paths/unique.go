package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename builds a collision-resistant filename of the form
// "prepend_label_YYYYMMDD_HHMMSS", for naming snapshot files taken during a
// run. It does not check for an actual collision on disk.
func UniqueFilename(prepend, label string) string {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())

	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Sprintf("%s_%s", prepend, timestamp)
	}
	return fmt.Sprintf("%s_%s_%s", prepend, label, timestamp)
}
