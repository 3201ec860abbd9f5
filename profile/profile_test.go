package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerRecord(t *testing.T) {
	p := NewProfiler(nil)

	rows := []map[string]interface{}{
		{"id": int64(1), "name": "a", "at": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"id": int64(2), "name": "a", "at": nil},
		{"id": int64(3), "name": nil, "at": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	p.SetType("id", IntType, 0)
	p.SetType("name", CategoryType, 1)
	p.SetType("at", DateTimeType, 0)

	for _, r := range rows {
		for _, k := range []string{"id", "name", "at"} {
			p.Record(k, r[k])
		}
		p.Incr()
	}

	pf := p.Profile()
	assert.Equal(t, int64(3), pf.RecordCount)
	assert.Equal(t, []string{"id", "name", "at"}, pf.Names())

	id := pf.Fields["id"]
	require.NotNil(t, id)
	assert.Equal(t, IntType, id.Type)
	assert.True(t, id.Unique)
	assert.False(t, id.Nullable)
	assert.Equal(t, int64(3), id.UniqueCount)

	name := pf.Fields["name"]
	assert.False(t, name.Unique)
	assert.True(t, name.Nullable)
	assert.Equal(t, int64(1), name.NullCount)
	assert.Equal(t, 1, name.Levels)

	at := pf.Fields["at"]
	assert.False(t, at.Unique)
	assert.Equal(t, int64(1), at.UniqueCount)
}

func TestProfilerIncludeExclude(t *testing.T) {
	p := NewProfiler(&Config{
		Include: []string{"A", "b"},
		Exclude: []string{"B"},
	})

	for _, k := range []string{"a", "b", "c"} {
		p.Record(k, "x")
	}

	pf := p.Profile()
	assert.Len(t, pf.Fields, 1)
	assert.Contains(t, pf.Fields, "a")
}
