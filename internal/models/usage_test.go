// internal/models/usage_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusiveUsageMode(t *testing.T) {
	usage := ExclusiveUsage(uuid.New())
	mode, err := usage.Mode()
	require.NoError(t, err)
	assert.Equal(t, UsageModeExclusive, mode)
}

func TestFreeUsageMode(t *testing.T) {
	usage := FreeUsage(uuid.New())
	mode, err := usage.Mode()
	require.NoError(t, err)
	assert.Equal(t, UsageModeFree, mode)
}

func TestLimitedUsageMode(t *testing.T) {
	flags := LimitedUsageFlags{Printing: true, Vinyl: true}
	usage := LimitedUsage(uuid.New(), flags)

	mode, err := usage.Mode()
	require.NoError(t, err)
	assert.Equal(t, UsageModeLimited, mode)
	assert.Equal(t, flags, usage.Limited())
}

func TestUsageWithNoFlagsIsLimited(t *testing.T) {
	// An all-false row means limited usage with no methods enabled, not a
	// conflict.
	usage := &UsageParameters{DesignID: uuid.New()}
	mode, err := usage.Mode()
	require.NoError(t, err)
	assert.Equal(t, UsageModeLimited, mode)
}

func TestUsageModeConflicts(t *testing.T) {
	cases := []struct {
		name  string
		usage UsageParameters
	}{
		{"exclusive and free", UsageParameters{Exclusive: true, Free: true}},
		{"exclusive with limited flag", UsageParameters{Exclusive: true, LimitedUsageWithPrinting: true}},
		{"free with limited flag", UsageParameters{Free: true, LimitedUsageWithEngraving: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.usage.Mode()
			assert.ErrorIs(t, err, ErrUsageConflict)
		})
	}
}
