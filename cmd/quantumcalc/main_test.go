package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuildMetadataDefaults guards the ldflags targets against renames.
func TestBuildMetadataDefaults(t *testing.T) {
	assert.Equal(t, "dev", version)
	assert.Equal(t, "unknown", commit)
	assert.Equal(t, "unknown", buildDate)
}
