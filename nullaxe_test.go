package nullaxe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/infer"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/JohnTocci/Nullaxe/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInferCSV(t *testing.T) {
	path := writeFile(t, "people.csv", `id,name,joined,active,score
1,John,2020-01-05,yes,1.5
2,Jane,2021-03-09,no,2
3,Joe,,yes,bad
`)

	data, err := Infer(&Request{Path: path, Header: true})
	require.NoError(t, err)

	f, ok := data.(*frame.Frame)
	require.True(t, ok)

	p, err := Profile(f)
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.RecordCount)
	assert.Equal(t, []string{"id", "name", "joined", "active", "score"}, p.Names())
	assert.Equal(t, profile.IntType, p.Fields["id"].Type)
	assert.Equal(t, profile.StringType, p.Fields["name"].Type)
	assert.Equal(t, profile.DateTimeType, p.Fields["joined"].Type)
	assert.True(t, p.Fields["joined"].Nullable)
	assert.Equal(t, profile.BoolType, p.Fields["active"].Type)
	assert.Equal(t, profile.FloatType, p.Fields["score"].Type)
}

func TestInferTSVSubset(t *testing.T) {
	path := writeFile(t, "data.tsv", "a\tb\n1\t2\n3\t4\n")

	data, err := Infer(&Request{Path: path, Header: true, Subset: []string{"b"}})
	require.NoError(t, err)

	f := data.(*frame.Frame)
	a, _ := f.Column("a")
	b, _ := f.Column("b")
	assert.Equal(t, profile.StringType, a.Type)
	assert.Equal(t, profile.IntType, b.Type)
}

func TestInferLDJSON(t *testing.T) {
	path := writeFile(t, "events.ldjson", `{"n": "1", "at": "2024-01-01", "meta": {"ok": "true"}}
{"n": "2", "at": "2024-01-02", "meta": {"ok": "false"}}
`)

	c := infer.DefaultConfig()
	c.Workers = 2

	data, err := Infer(&Request{Path: path, Config: c})
	require.NoError(t, err)

	s, ok := data.(*records.Set)
	require.True(t, ok)

	assert.Equal(t, profile.IntType, s.Type("n"))
	assert.Equal(t, profile.DateTimeType, s.Type("at"))
	assert.Equal(t, profile.BoolType, s.Type("meta/ok"))

	p, err := Profile(s)
	require.NoError(t, err)
	assert.Equal(t, profile.BoolType, p.Fields["meta/ok"].Type)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(&Request{Path: writeFile(t, "data.xml", "<a/>"), Format: "xml"})
	assert.Error(t, err)

	_, err = Load(&Request{Path: writeFile(t, "data.csv", "a\n1\n"), Delimiter: "::"})
	assert.Error(t, err)
}

func TestToFrameMismatch(t *testing.T) {
	_, err := ToFrame([][]string{{"a"}})

	var tm *infer.TypeMismatchError
	assert.True(t, errors.As(err, &tm))
}
