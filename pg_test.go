package nullaxe

import (
	"testing"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFieldName(t *testing.T) {
	tests := map[string]string{
		"Name":          "name",
		"first name":    "first_name",
		"a--b..c":       "a_b_c",
		"Total ($)":     "total_",
		"address/city":  "address_city",
		"already_clean": "already_clean",
	}

	for in, exp := range tests {
		assert.Equal(t, exp, CleanFieldName(in), in)
	}
}

func TestNewSchema(t *testing.T) {
	f := frame.MustNew(
		frame.NewColumn("id", profile.IntType, []interface{}{int64(1), int64(2)}),
		frame.NewColumn("Score", profile.FloatType, []interface{}{1.5, nil}),
		frame.NewColumn("grade", profile.CategoryType, []interface{}{"A", "A"}),
	)

	s := NewSchema(f)
	require.Len(t, s.Fields, 3)

	assert.Equal(t, Field{Name: "id", Type: "bigint", Unique: true}, *s.Fields[0])
	assert.Equal(t, Field{Name: "Score", Type: "double precision", Unique: true, Nullable: true}, *s.Fields[1])
	assert.Equal(t, Field{Name: "grade", Type: "text"}, *s.Fields[2])
}

func TestCreateTableSQL(t *testing.T) {
	s := &Schema{
		Fields: []*Field{
			{Name: "id", Type: "bigint", Unique: true},
			{Name: "Score", Type: "double precision", Nullable: true},
			{Name: "grade", Type: "text"},
		},
	}

	q, err := createTableSQL("public", "scores", s)
	require.NoError(t, err)
	assert.Equal(t, `create table if not exists "public"."scores" ( "id" bigint unique, "score" double precision, "grade" text not null )`, q)

	s.Cstore = true
	q, err = createTableSQL("raw", "scores", s)
	require.NoError(t, err)
	assert.Contains(t, q, `create foreign table if not exists "raw"."scores"`)
	assert.Contains(t, q, "server cstore_server")
}

func TestRenderSQL(t *testing.T) {
	q, err := renderSQL("renameTable", &tableData{Schema: "s", TempTable: "tmp", Table: "t"})
	require.NoError(t, err)
	assert.Equal(t, `alter table "s"."tmp" rename to "t"`, q)
}
