package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testTarget struct {
	name  string
	level int
	calls []string
}

func withName(name string) Option[*testTarget] {
	return NoError(func(t *testTarget) {
		t.name = name
		t.calls = append(t.calls, "name")
	})
}

var errNegative = errors.New("negative level")

func withLevel(level int) Option[*testTarget] {
	return New(func(t *testTarget) error {
		if level < 0 {
			return errNegative
		}
		t.level = level
		t.calls = append(t.calls, "level")

		return nil
	})
}

func TestApply(t *testing.T) {
	t.Run("InOrder", func(t *testing.T) {
		target := &testTarget{}
		err := Apply(target, withLevel(3), withName("a"), withName("b"))
		require.NoError(t, err)
		require.Equal(t, "b", target.name)
		require.Equal(t, 3, target.level)
		require.Equal(t, []string{"level", "name", "name"}, target.calls)
	})

	t.Run("StopsAtError", func(t *testing.T) {
		target := &testTarget{}
		err := Apply(target, withName("a"), withLevel(-1), withName("b"))
		require.ErrorIs(t, err, errNegative)
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, "a", target.name)
	})

	t.Run("SkipsNil", func(t *testing.T) {
		target := &testTarget{}
		require.NoError(t, Apply(target, nil, withName("a")))
		require.Equal(t, "a", target.name)
	})

	t.Run("NoOptions", func(t *testing.T) {
		require.NoError(t, Apply[*testTarget](&testTarget{}))
	})
}
