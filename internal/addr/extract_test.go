package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PostalCodeTakesPriority(t *testing.T) {
	got := Extract("123 Main St, Boston, MA 02118")
	require.NotNil(t, got)
	assert.Equal(t, "02118", got.PostalCode)
	// only one extraction mode runs; city/state stay empty
	assert.Empty(t, got.City)
	assert.Empty(t, got.State)
}

func TestExtract_PostalCodeAnywhereInString(t *testing.T) {
	got := Extract("78704 Austin area")
	require.NotNil(t, got)
	assert.Equal(t, "78704", got.PostalCode)
}

func TestExtract_CityStateFallback(t *testing.T) {
	got := Extract("Boston, MA")
	require.NotNil(t, got)
	assert.Empty(t, got.PostalCode)
	assert.Equal(t, "Boston", got.City)
	assert.Equal(t, "MA", got.State)
}

func TestExtract_CityStateWithStreetPrefix(t *testing.T) {
	got := Extract("123 Main St, Boston, MA")
	require.NotNil(t, got)
	assert.Equal(t, "Boston", got.City)
	assert.Equal(t, "MA", got.State)
}

func TestExtract_NothingExtracted(t *testing.T) {
	assert.Nil(t, Extract("downtown near the river"))
	assert.Nil(t, Extract(""))
	assert.Nil(t, Extract("   "))
	// lowercase state code is not a state code
	assert.Nil(t, Extract("Boston, ma"))
}

func TestExtract_NineDigitZipUsesFirstFive(t *testing.T) {
	// 02118-3300 style: the 5-digit group still matches
	got := Extract("456 Elm St, Boston, MA 02118-3300")
	require.NotNil(t, got)
	assert.Equal(t, "02118", got.PostalCode)
}
