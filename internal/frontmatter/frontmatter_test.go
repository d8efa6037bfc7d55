package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_Frontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_NoOpeningDelimiter_BodyIsFullInput(t *testing.T) {
	input := []byte("no metadata here\n---\nkey: value\n---\n")

	fields, body, had, _ := Parse(input)
	require.False(t, had)
	require.Empty(t, fields)
	require.Equal(t, input, body)
}

func TestParse_MissingClosingDelimiter_FallsBackToFullBody(t *testing.T) {
	input := []byte("---\ntitle: Broken\nno closing marker\n")

	fields, body, had, _ := Parse(input)
	require.False(t, had)
	require.Empty(t, fields)
	require.Equal(t, input, body)
}

func TestParse_InvalidYAML_FallsBackToFullBody(t *testing.T) {
	input := []byte("---\n: not yaml\n---\nbody\n")

	fields, body, had, _ := Parse(input)
	require.False(t, had)
	require.Empty(t, fields)
	require.Equal(t, input, body)
}

func TestParse_ScalarsAndLists(t *testing.T) {
	input := []byte("---\ntitle: \"Hi\"\ntags:\n  - a\n  - b\n---\nHello **world**\n")

	fields, body, had, _ := Parse(input)
	require.True(t, had)
	require.Equal(t, []byte("Hello **world**\n"), body)

	title, ok := fields.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hi", title)

	tags, ok := fields.GetList("tags")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, tags)
}

func TestParseFields_PreservesSourceOrder(t *testing.T) {
	raw := []byte("zebra: last\nalpha: first\nmiddle: yes\n")

	fields, err := ParseFields(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"zebra", "alpha", "middle"}, fields.Keys())
}

func TestParseFields_NoTypeCoercion(t *testing.T) {
	raw := []byte("date: 2016-04-08 10:26\ndraft: true\nweight: 42\n")

	fields, err := ParseFields(raw)
	require.NoError(t, err)

	date, _ := fields.Get("date")
	require.Equal(t, "2016-04-08 10:26", date)
	draft, _ := fields.Get("draft")
	require.Equal(t, "true", draft)
	weight, _ := fields.Get("weight")
	require.Equal(t, "42", weight)
}

func TestParseFields_NestedMapping_ReturnsError(t *testing.T) {
	raw := []byte("nested:\n  inner: value\n")

	_, err := ParseFields(raw)
	require.Error(t, err)
}

func TestFields_GetList_ScalarPromotedToSingleItem(t *testing.T) {
	fields, err := ParseFields([]byte("topic: animations\n"))
	require.NoError(t, err)

	list, ok := fields.GetList("topic")
	require.True(t, ok)
	require.Equal(t, []string{"animations"}, list)
}

func TestJoin_RoundTrip_ReconstructsOriginalBytes(t *testing.T) {
	cases := [][]byte{
		[]byte("# Title\n\nHello\n"),
		[]byte("---\nkey: value\n---\n# Title\n"),
		[]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"),
	}

	for _, input := range cases {
		fm, body, had, style, err := Split(input)
		require.NoError(t, err)

		out := Join(fm, body, had, style)
		require.Equal(t, input, out)
	}
}
