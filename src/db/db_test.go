package db

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	type CustomInt int
	type S struct {
		I   int        `db:"I"`
		PI  *int       `db:"PI"`
		CI  CustomInt  `db:"CI"`
		PCI *CustomInt `db:"PCI"`
		B   bool       `db:"B"`
		PB  *bool      `db:"PB"`

		NoTag int
	}
	type Nested struct {
		S  S  `db:"S"`
		PS *S `db:"PS"`

		NoTag S
	}

	names, paths := getColumnNamesAndPaths(reflect.TypeOf(Nested{}), nil, nil)
	assert.Equal(t, []columnName{
		{"S", "I"}, {"S", "PI"},
		{"S", "CI"}, {"S", "PCI"},
		{"S", "B"}, {"S", "PB"},
		{"PS", "I"}, {"PS", "PI"},
		{"PS", "CI"}, {"PS", "PCI"},
		{"PS", "B"}, {"PS", "PB"},
	}, names)
	assert.Equal(t, []fieldPath{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5},
	}, paths)
	assert.True(t, len(names) == len(paths))

	testStruct := Nested{}
	for i, path := range paths {
		val, field := followPathThroughStructs(reflect.ValueOf(&testStruct), path)
		assert.True(t, val.IsValid())
		assert.True(t, strings.Contains(strings.Join(names[i], "."), field.Name))
	}
}

func TestCompileQuery(t *testing.T) {
	t.Run("simple struct", func(t *testing.T) {
		type Dest struct {
			Foo  int    `db:"foo"`
			Bar  bool   `db:"bar"`
			Nope string // no tag
		}

		compiled := compileQuery("SELECT $columns FROM greeblies", reflect.TypeOf(Dest{}))
		assert.Equal(t, "SELECT foo, bar FROM greeblies", compiled.query)
	})
	t.Run("struct with prefix", func(t *testing.T) {
		type Dest struct {
			Foo int  `db:"foo"`
			Bar bool `db:"bar"`
		}

		compiled := compileQuery("SELECT $columns{g} FROM greeblies AS g", reflect.TypeOf(Dest{}))
		assert.Equal(t, "SELECT g.foo, g.bar FROM greeblies AS g", compiled.query)
	})
	t.Run("nested structs", func(t *testing.T) {
		type Inner struct {
			Foo int `db:"foo"`
		}
		type Dest struct {
			Greeblies Inner `db:"g"`
			Frobnobs  Inner `db:"f"`
		}

		compiled := compileQuery("SELECT $columns FROM greeblies AS g JOIN frobnobs AS f ON TRUE", reflect.TypeOf(Dest{}))
		assert.Equal(t, "SELECT g.foo, f.foo FROM greeblies AS g JOIN frobnobs AS f ON TRUE", compiled.query)
	})
}

func TestQueryBuilder(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		var qb QueryBuilder
		qb.Add("SELECT stuff FROM thing WHERE id = $? AND foo = $?", 3, "bar")
		qb.Add("AND baz = $?", true)

		assert.Equal(t, "SELECT stuff FROM thing WHERE id = $1 AND foo = $2\nAND baz = $3\n", qb.String())
		assert.Equal(t, []interface{}{3, "bar", true}, qb.Args())
	})
	t.Run("too few arguments", func(t *testing.T) {
		assert.Panics(t, func() {
			var qb QueryBuilder
			qb.Add("HELLO $? $? $?", 1, 2)
		})
	})
	t.Run("too many arguments", func(t *testing.T) {
		assert.Panics(t, func() {
			var qb QueryBuilder
			qb.Add("HELLO $?", 1, 2)
		})
	})
}
