package categories

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	names := []string{"Travel", "Meals, Entertainment", "Rent Expense"}

	var buf bytes.Buffer
	require.NoError(t, WriteCategories(&buf, names))

	got, err := ReadCategories(&buf)
	require.NoError(t, err)
	assert.Equal(t, names, got)
}

func TestReadCategories_HeaderOnly(t *testing.T) {
	got, err := ReadCategories(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadCategories_BadFieldCount(t *testing.T) {
	_, err := ReadCategories(strings.NewReader("category\nTravel,extra\n"))
	assert.Error(t, err)
}

func TestDefaultsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCategories(&buf, Defaults()))

	got, err := ReadCategories(&buf)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}
