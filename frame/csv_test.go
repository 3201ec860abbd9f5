package frame

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	b := bytes.NewBufferString(`Name,Color,DOB
John,Blue,03/11/2013
Jane,Red,2008-2-24
Joe,,2010-02-11
Ann
`)

	f, err := ReadCSV(b, DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "color", "dob"}, f.Names())
	assert.Equal(t, 4, f.Len())

	color, _ := f.Column("color")
	assert.Equal(t, profile.StringType, color.Type)
	assert.Equal(t, []interface{}{"Blue", "Red", nil, nil}, color.Values())
}

func TestReadCSVNoHeader(t *testing.T) {
	b := bytes.NewBufferString("1;a\n2;b\n")

	f, err := ReadCSV(b, CSVOptions{Delimiter: ';'})
	require.NoError(t, err)

	assert.Equal(t, []string{"c0", "c1"}, f.Names())
	assert.Equal(t, 2, f.Len())
}

func TestReadCSVDuplicateHeader(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("Name,name,NAME_1\na,b,c\n"), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "name_1", "name_1_1"}, f.Names())

	c, _ := f.Column("name_1")
	assert.Equal(t, []interface{}{"b"}, c.Values())
}

func TestReadCSVExtraColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"), DefaultCSVOptions())
	assert.Error(t, err)
}

func TestReadCSVEmpty(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(""), DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, f.Width())
}

func TestWriteCSV(t *testing.T) {
	f := MustNew(
		NewColumn("n", profile.IntType, []interface{}{int64(1), nil}),
		NewColumn("x", profile.FloatType, []interface{}{1.5, nil}),
		NewColumn("b", profile.BoolType, []interface{}{true, false}),
		NewColumn("d", profile.DateTimeType, []interface{}{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil}),
		NewColumn("c", profile.CategoryType, []interface{}{"A", "A"}),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, f, 0))

	assert.Equal(t, "n,x,b,d,c\n1,1.5,true,2024-01-02T00:00:00Z,A\n,,false,,A\n", buf.String())
}
