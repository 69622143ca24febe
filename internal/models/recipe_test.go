package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"rice", "dhal"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["rice","dhal"]`, v)

	// Empty and nil both serialize as an empty JSON array, matching the
	// column default.
	v, err = StringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringArrayScan(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan(`["rice","dhal"]`))
	assert.Equal(t, StringArray{"rice", "dhal"}, a)

	var b StringArray
	require.NoError(t, b.Scan([]byte(`["pol"]`)))
	assert.Equal(t, StringArray{"pol"}, b)

	var c StringArray
	require.NoError(t, c.Scan(nil))
	assert.Equal(t, StringArray{}, c)

	var d StringArray
	assert.Error(t, d.Scan("not json"))
}
