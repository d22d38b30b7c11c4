package services

import (
	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all markup from free-text inputs
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from user-supplied free text (descriptions,
// notes, communication content)
func SanitizeText(input string) string {
	return strictPolicy.Sanitize(input)
}

// SanitizeTextPtr sanitizes optional free-text fields in place
func SanitizeTextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	clean := strictPolicy.Sanitize(*input)
	return &clean
}
