package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain text untouched", "Meeting notes for Tuesday", "Meeting notes for Tuesday"},
		{"Tags stripped", "<b>bold</b> claim", "bold claim"},
		{"Script content removed", "<script>alert(1)</script>safe", "safe"},
		{"Attributes gone with the tag", `<a href="https://evil">link</a>`, "link"},
		{"Empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeTextPtr(t *testing.T) {
	assert.Nil(t, SanitizeTextPtr(nil))

	dirty := "<i>styled</i>"
	clean := SanitizeTextPtr(&dirty)
	assert.NotNil(t, clean)
	assert.Equal(t, "styled", *clean)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple.pdf", "simple.pdf"},
		{"with space.pdf", "with_space.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"weird$chars!.txt", "weird_chars_.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
	}
}
