package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseLifecycleTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{"draft", "pending", true},
		{"pending", "published", true},
		{"pending", "rejected", true},
		{"draft", "published", false},
		{"draft", "rejected", false},
		{"published", "draft", false},
		{"published", "pending", false},
		{"rejected", "pending", false},
		{"rejected", "draft", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CourseLifecycle.Can(tc.from, tc.to),
			"course %s -> %s", tc.from, tc.to)
	}
}

func TestCreatorApplicationTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{"none", "pending", true},
		{"pending", "pending", true},
		{"pending", "approved", true},
		{"pending", "rejected", true},
		{"rejected", "pending", true},
		{"approved", "pending", false},
		{"approved", "rejected", false},
		{"none", "approved", false},
		{"rejected", "approved", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CreatorApplication.Can(tc.from, tc.to),
			"application %s -> %s", tc.from, tc.to)
	}
}

func TestTransitionReturnsTarget(t *testing.T) {
	next, err := CourseLifecycle.Transition("pending", "published")
	assert.NoError(t, err)
	assert.Equal(t, "published", next)
}

func TestTransitionRejectsUnknownState(t *testing.T) {
	_, err := CourseLifecycle.Transition("rejected", "pending")
	assert.Error(t, err)

	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "rejected", invalid.From)
	assert.Equal(t, "pending", invalid.To)
}
