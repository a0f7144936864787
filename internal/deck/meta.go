package deck

import (
	"fmt"
	"strings"
)

// ParseMetaLine splits a `// Key: Value` header line into its lower-cased
// key and verbatim value. A line with no colon, or with a second colon
// outside the value position, is malformed: the format reserves exactly one
// separator and anything else is reported rather than silently tolerated.
func ParseMetaLine(line string) (key, value string, err error) {
	stripped := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
	parts := strings.Split(stripped, ":")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("metadata line must be `// Key: Value`, got %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(parts[0]))
	value = strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmt.Errorf("metadata line has empty key: %q", line)
	}
	return key, value, nil
}

// DescriptionSentinel switches the remainder of a decklist file into
// free-text description capture (MTG and Gwent formats).
const DescriptionSentinel = "---"
