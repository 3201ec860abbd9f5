package frame

import (
	"testing"

	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(Strings("a", "1"), Strings("a", "2"))
	assert.Error(t, err)

	_, err = New(Strings("a", "1"), Strings("b", "1", "2"))
	assert.Error(t, err)

	f, err := New(Strings("a", "1", ""), Strings("b", "x", "y"))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 2, f.Width())
	assert.Equal(t, []string{"a", "b"}, f.Names())

	a, ok := f.Column("a")
	require.True(t, ok)
	assert.True(t, a.IsNull(1))
	assert.Equal(t, 1, a.NullCount())

	_, ok = f.Column("missing")
	assert.False(t, ok)
}

func TestCategoryEncoding(t *testing.T) {
	c := NewColumn("c", profile.CategoryType, []interface{}{"b", "a", nil, "b"})

	assert.Equal(t, []interface{}{"b", "a"}, c.Levels())
	assert.Equal(t, []int{0, 1, -1, 0}, c.Codes())
	assert.Equal(t, []interface{}{"b", "a", nil, "b"}, c.Values())
	assert.Equal(t, "a", c.Value(1))

	assert.Nil(t, Strings("s", "x").Codes())
}

func TestReplace(t *testing.T) {
	f := MustNew(Strings("a", "1", "2"))

	require.NoError(t, f.Replace("a", profile.IntType, []interface{}{int64(1), int64(2)}))

	a, _ := f.Column("a")
	assert.Equal(t, profile.IntType, a.Type)
	assert.Equal(t, []interface{}{int64(1), int64(2)}, a.Values())

	assert.Error(t, f.Replace("a", profile.IntType, []interface{}{int64(1)}))
	assert.Error(t, f.Replace("b", profile.IntType, []interface{}{int64(1), int64(2)}))
}

func TestCopyIsolated(t *testing.T) {
	f := MustNew(Strings("a", "1", "2"))
	g := f.Copy()

	require.NoError(t, g.Replace("a", profile.IntType, []interface{}{int64(1), int64(2)}))

	a, _ := f.Column("a")
	assert.Equal(t, profile.StringType, a.Type)
	assert.Equal(t, []interface{}{"1", "2"}, a.Values())
}

func TestFrameProfile(t *testing.T) {
	f := MustNew(
		NewColumn("id", profile.IntType, []interface{}{int64(1), int64(2), int64(3)}),
		NewColumn("grade", profile.CategoryType, []interface{}{"A", "A", nil}),
	)

	p := f.Profile(nil)
	assert.Equal(t, int64(3), p.RecordCount)
	assert.Equal(t, []string{"id", "grade"}, p.Names())

	assert.Equal(t, profile.IntType, p.Fields["id"].Type)
	assert.True(t, p.Fields["id"].Unique)

	grade := p.Fields["grade"]
	assert.Equal(t, profile.CategoryType, grade.Type)
	assert.Equal(t, 1, grade.Levels)
	assert.True(t, grade.Nullable)
	assert.False(t, grade.Unique)
}
