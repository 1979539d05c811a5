package serializer

import (
	"strings"
	"testing"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFields(t *testing.T, body string) Fields {
	t.Helper()
	f, err := DecodeFields(strings.NewReader(body))
	require.NoError(t, err)
	return f
}

func kindOf(t *testing.T, err error) domain.ValidationKind {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Kind
}

func TestDecodeFields(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		f, err := DecodeFields(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeFields(strings.NewReader(`{"name":`))
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := DecodeFields(strings.NewReader(`[1,2]`))
		assert.ErrorIs(t, err, domain.ErrBadRequest)

		_, err = DecodeFields(strings.NewReader(`null`))
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})
}

func TestFields_Accessors(t *testing.T) {
	f := mustFields(t, `{
		"s": "text", "n": 42, "ns": "17", "frac": 1.5, "b": true,
		"ids": [1, "2", 3], "names": ["a", "b"], "nil": null, "bad": {}
	}`)

	s, err := f.String("s", true)
	require.NoError(t, err)
	assert.Equal(t, "text", *s)

	n, err := f.Int("n", true)
	require.NoError(t, err)
	assert.Equal(t, int64(42), *n)

	n, err = f.Int("ns", true)
	require.NoError(t, err)
	assert.Equal(t, int64(17), *n)

	_, err = f.Int("frac", true)
	assert.Equal(t, domain.KindTypeMismatch, kindOf(t, err))

	fl, err := f.Float("frac", true)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, *fl, 1e-9)

	b, err := f.Bool("b", true)
	require.NoError(t, err)
	assert.True(t, *b)

	_, err = f.Bool("s", true)
	assert.Equal(t, domain.KindTypeMismatch, kindOf(t, err))

	ids, err := f.IDs("ids", true)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, *ids)

	_, err = f.IDs("names", true)
	assert.Equal(t, domain.KindTypeMismatch, kindOf(t, err))

	names, err := f.Strings("names", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, *names)

	_, err = f.String("bad", true)
	assert.Equal(t, domain.KindTypeMismatch, kindOf(t, err))
}

func TestFields_PresenceAndNull(t *testing.T) {
	f := mustFields(t, `{"nil": null}`)

	v, err := f.String("missing", false)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = f.String("missing", true)
	assert.Equal(t, domain.KindRequired, kindOf(t, err))

	_, err = f.String("nil", false)
	assert.Equal(t, domain.KindRequired, kindOf(t, err))

	n, set, err := f.NullableInt("nil")
	assert.NoError(t, err)
	assert.True(t, set)
	assert.Nil(t, n)

	_, set, err = f.NullableFloat("missing")
	assert.NoError(t, err)
	assert.False(t, set)
}

func TestFields_Without(t *testing.T) {
	f := mustFields(t, `{"a": 1, "b": 2}`)

	g := f.Without("a")

	assert.True(t, f.Has("a"))
	assert.False(t, g.Has("a"))
	assert.True(t, g.Has("b"))
}
