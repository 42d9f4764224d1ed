// Package autotag suggests tags for memory content from a static keyword
// pattern table.
package autotag

import "regexp"

type pattern struct {
	tag string
	re  *regexp.Regexp
}

// Table order determines suggestion order.
var patterns = []pattern{
	{"api", regexp.MustCompile(`(?i)\b(api|endpoint|rest|graphql|http)\b`)},
	{"database", regexp.MustCompile(`(?i)\b(database|db|sql|postgres|sqlite|mongo)\b`)},
	{"config", regexp.MustCompile(`(?i)\b(config|configuration|settings|\.env|environment)\b`)},
	{"auth", regexp.MustCompile(`(?i)\b(auth|authentication|jwt|oauth|password|login)\b`)},
	{"error", regexp.MustCompile(`(?i)\b(error|exception|bug|fix|issue)\b`)},
	{"security", regexp.MustCompile(`(?i)\b(security|secret|key|credential|token)\b`)},
}

// Suggest returns the tags whose keyword patterns match content.
func Suggest(content string) []string {
	var tags []string
	for _, p := range patterns {
		if p.re.MatchString(content) {
			tags = append(tags, p.tag)
		}
	}
	return tags
}
