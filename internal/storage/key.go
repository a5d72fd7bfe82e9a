package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// ObjectKey builds the blob key for an incident attachment:
// emergencies/{authorID}/{epochMillis}_{filename}. The timestamp keeps keys
// from two uploads by the same author distinct, so a stored URL is never
// overwritten.
func ObjectKey(authorID, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	return fmt.Sprintf("emergencies/%s/%d_%s", authorID, now.UnixMilli(), name)
}
