package serializer

import (
	"strings"
)

// NormalizeWebsite cleans a submitted website URL before storage:
// empty values become nil, and any non-empty value missing an http://
// or https:// prefix gets https:// prepended.
func NormalizeWebsite(value *string) *string {
	if value == nil {
		return nil
	}
	website := strings.TrimSpace(*value)
	if website == "" {
		return nil
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}
	return &website
}
