package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var serialPattern = regexp.MustCompile(`^[0-9A-F]{16}$`)

func TestGenerateSerialNumberFormat(t *testing.T) {
	serial := GenerateSerialNumber(1, 2)

	assert.Len(t, serial, 16)
	assert.Regexp(t, serialPattern, serial)
}

func TestGenerateSerialNumberVariesPerPair(t *testing.T) {
	seen := make(map[string]bool)
	for student := uint(1); student <= 10; student++ {
		for course := uint(1); course <= 10; course++ {
			serial := GenerateSerialNumber(student, course)
			assert.False(t, seen[serial], "duplicate serial %s", serial)
			seen[serial] = true
		}
	}
}
