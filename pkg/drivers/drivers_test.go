package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	rs := Registry()
	require.Len(t, rs, 20)
	for _, r := range rs {
		assert.False(t, seen[r.Code], "duplicate code %s", r.Code)
		seen[r.Code] = true
		assert.Len(t, r.Code, 3)
	}
}

func TestRegistryIsACopy(t *testing.T) {
	rs := Registry()
	rs[0].QualifyingTime = 1

	again := Registry()
	assert.Equal(t, 90.641, again[0].QualifyingTime)
}

func TestLookup(t *testing.T) {
	r, found := Lookup("VER")
	require.True(t, found)
	assert.Equal(t, "Max Verstappen", r.FullName)
	assert.Equal(t, 90.817, r.QualifyingTime)

	_, found = Lookup("XXX")
	assert.False(t, found)
}

func TestCodeFor(t *testing.T) {
	code, found := CodeFor("Nico Hülkenberg")
	require.True(t, found)
	assert.Equal(t, "HUL", code)

	_, found = CodeFor("Nobody")
	assert.False(t, found)
}
