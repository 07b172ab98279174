package worker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Positional(t *testing.T) {
	args := NewArgs([]interface{}{"10", 3, "250ms"}, nil)

	assert.Equal(t, 3, args.Len())
	assert.Equal(t, "10", args.At(0))
	assert.Nil(t, args.At(-1))
	assert.Nil(t, args.At(3))

	n, err := args.Int(0)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	s, err := args.String(1)
	require.NoError(t, err)
	assert.Equal(t, "3", s)

	d, err := args.Duration(2)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	_, err = args.Int(2)
	assert.Error(t, err)
}

func TestArgs_Keyword(t *testing.T) {
	args := NewArgs(nil, map[string]interface{}{"count": "4", "label": "x"})

	v, ok := args.Keyword("label")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = args.Keyword("missing")
	assert.False(t, ok)

	count, err := args.KeywordInt("count", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	fallback, err := args.KeywordInt("missing", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, fallback)

	label, err := args.KeywordString("missing", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", label)
}

func TestArgs_CopiesAreIsolated(t *testing.T) {
	args := NewArgs([]interface{}{1}, map[string]interface{}{"k": 1})

	positional := args.Positional()
	positional[0] = 2
	keywords := args.Keywords()
	keywords["k"] = 2

	assert.Equal(t, 1, args.At(0))
	v, _ := args.Keyword("k")
	assert.Equal(t, 1, v)
}

func TestArgs_ZeroValue(t *testing.T) {
	var args Args

	assert.Equal(t, 0, args.Len())
	assert.Empty(t, args.Positional())
	assert.Empty(t, args.Keywords())
}

func TestCall(t *testing.T) {
	fn := Call(func() (string, error) { return "ok", nil })
	v, err := fn(NewArgs([]interface{}{"ignored"}, nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	failing := Call(func() (string, error) { return "", errors.New("bad") })
	_, err = failing(Args{})
	assert.Error(t, err)

	assert.Nil(t, Call[int](nil))
}
