package main

import (
	"bytes"
	"testing"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProfiles(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listProfiles(&out, categorize.BuiltinRegistry()))

	got := out.String()
	assert.Contains(t, got, "KEY")
	assert.Contains(t, got, "aeon")
	assert.Contains(t, got, "ae3")
	assert.Contains(t, got, "AE3 Excavating, AE3")
}

func TestShowProfile(t *testing.T) {
	profile, err := categorize.BuiltinRegistry().Lookup("aeon")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, showProfile(&out, profile))

	got := out.String()
	assert.Contains(t, got, "Aeon Landscaping")
	assert.Contains(t, got, "Settlement Repairs")
	assert.Contains(t, got, "Never consolidated")
}
