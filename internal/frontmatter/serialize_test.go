package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize_Empty_ReturnsEmpty(t *testing.T) {
	out, err := Serialize(Fields{}, Style{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerialize_PreservesFieldOrder(t *testing.T) {
	fields := Fields{
		{Key: "zebra", Value: "last"},
		{Key: "alpha", Value: "first"},
	}

	out, err := Serialize(fields, Style{Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, "zebra: last\nalpha: first\n", string(out))
}

func TestSerialize_RoundTrip_PreservesOrderAndValues(t *testing.T) {
	raw := []byte("layout: post\ntitle: Angular 2 Animations\ntags:\n  - angular\n  - animation\nauthor: lyes\n")

	fields, err := ParseFields(raw)
	require.NoError(t, err)

	out, err := Serialize(fields, Style{Newline: "\n"})
	require.NoError(t, err)

	reparsed, err := ParseFields(out)
	require.NoError(t, err)
	require.Equal(t, fields.Keys(), reparsed.Keys())

	for _, key := range fields.Keys() {
		origList, origIsList := fields.GetList(key)
		newList, newIsList := reparsed.GetList(key)
		require.Equal(t, origIsList, newIsList)
		require.Equal(t, origList, newList)
	}
}

func TestSerialize_CRLFStyle(t *testing.T) {
	fields := Fields{{Key: "title", Value: "Hi"}}

	out, err := Serialize(fields, Style{Newline: "\r\n"})
	require.NoError(t, err)
	require.Equal(t, "title: Hi\r\n", string(out))
}
