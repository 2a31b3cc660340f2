package accessor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pkg = "github.com/SimonDaKappa/go-accessor"

func TestSplitTypeArgs(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOrigin string
		wantArgs   []string
		wantOK     bool
	}{
		{"not generic", "Item", "Item", nil, false},
		{"single argument", "List[" + pkg + ".Item]", "List", []string{pkg + ".Item"}, true},
		{"two arguments", "Pair[string,int]", "Pair", []string{"string", "int"}, true},
		{"spaces are trimmed", "Pair[string, int]", "Pair", []string{"string", "int"}, true},
		{"nested brackets", "Pair[string,map[string]int]", "Pair", []string{"string", "map[string]int"}, true},
		{"nested instantiation", "List[" + pkg + ".List[" + pkg + ".Filter]]", "List", []string{pkg + ".List[" + pkg + ".Filter]"}, true},
		{"func argument", "Box[func(int, string) error]", "Box", []string{"func(int, string) error"}, true},
		{"struct argument", "Box[struct { A int; B string }]", "Box", []string{"struct { A int; B string }"}, true},
		{"slice spelling", "[]int", "[]int", nil, false},
		{"unterminated", "List[int", "List[int", nil, false},
		{"empty argument", "List[]", "List[]", nil, false},
		{"empty trailing argument", "Pair[int,]", "Pair[int,]", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, args, ok := splitTypeArgs(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOrigin, origin)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[string](), "string"},
		{reflect.TypeFor[Item](), pkg + ".Item"},
		{reflect.TypeFor[*Item](), "*" + pkg + ".Item"},
		{reflect.TypeFor[[]*Item](), "[]*" + pkg + ".Item"},
		{reflect.TypeFor[[2]Item](), "[2]" + pkg + ".Item"},
		{reflect.TypeFor[map[string]Item](), "map[string]" + pkg + ".Item"},
		{reflect.TypeFor[chan Item](), "chan " + pkg + ".Item"},
		{reflect.TypeFor[<-chan Item](), "<-chan " + pkg + ".Item"},
		{reflect.TypeFor[chan<- Item](), "chan<- " + pkg + ".Item"},
		{reflect.TypeFor[List[Item]](), pkg + ".List[" + pkg + ".Item]"},
		{reflect.TypeFor[struct{}](), "struct {}"},
		{reflect.TypeFor[struct {
			B BarInput `json:"b"`
			Item
		}](), "struct { B " + pkg + `.BarInput "json:\"b\""; ` + pkg + ".Item }"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, qualifiedName(tt.typ))
		})
	}

	assert.Empty(t, qualifiedName(nil))
}

func TestEscapedName(t *testing.T) {
	assert.Empty(t, escapedName(reflect.TypeFor[Item]()), "nothing to escape")
	assert.Empty(t, escapedName(reflect.TypeFor[int]()), "predeclared")
	assert.Empty(t, escapedName(reflect.TypeFor[[]Item]()), "unnamed")
}

func TestBindingMap(t *testing.T) {
	bm := newBindingMap(reflect.TypeFor[ListOfListOfFilters]())

	t.Run("predeclared types", func(t *testing.T) {
		for _, name := range []string{"string", "int", "error", "interface {}", "time.Time"} {
			_, ok := bm.lookup(name)
			assert.True(t, ok, name)
		}
	})

	t.Run("reachable types by qualified and short name", func(t *testing.T) {
		typ, ok := bm.lookup(pkg + ".Filter")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[Filter](), typ)

		typ, ok = bm.lookup("accessor.Filter")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[Filter](), typ)

		typ, ok = bm.lookup(pkg + ".List[" + pkg + ".Filter]")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[List[Filter]](), typ)
	})

	t.Run("method signatures are walked", func(t *testing.T) {
		sortBy := newBindingMap(reflect.TypeFor[MovieSortBy]())
		typ, ok := sortBy.lookup(pkg + ".MovieSortByField")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[MovieSortByField](), typ)
	})

	t.Run("unreachable types", func(t *testing.T) {
		_, ok := bm.lookup(pkg + ".phantomUnit")
		assert.False(t, ok)
	})
}

func TestEffectiveType(t *testing.T) {
	tests := []struct {
		name     string
		declared reflect.Type
		want     reflect.Type
	}{
		{"unnamed slice", reflect.TypeFor[[]int](), reflect.TypeFor[int]()},
		{"unnamed map", reflect.TypeFor[map[string]int](), reflect.TypeFor[map[string]int]()},
		{"pointer", reflect.TypeFor[*Item](), reflect.TypeFor[*Item]()},
		{"named non-generic", reflect.TypeFor[Item](), reflect.TypeFor[Item]()},
		{"named generic slice", reflect.TypeFor[List[Item]](), reflect.TypeFor[Item]()},
		{"named generic set", reflect.TypeFor[Set[Item]](), reflect.TypeFor[Item]()},
		{"named generic struct", reflect.TypeFor[Box[Item]](), reflect.TypeFor[Item]()},
		{"multi-argument generic", reflect.TypeFor[Pair[string, int]](), reflect.TypeFor[Pair[string, int]]()},
		{"phantom argument", reflect.TypeFor[Tagged[phantomUnit]](), reflect.TypeFor[Tagged[phantomUnit]]()},
		{"predeclared phantom argument", reflect.TypeFor[Tagged[int]](), reflect.TypeFor[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectiveType(tt.declared))
		})
	}
}

func TestStripLocalSuffixes(t *testing.T) {
	assert.Equal(t, pkg+".Item", stripLocalSuffixes(pkg+".Item"))
	assert.Equal(t, pkg+".Local", stripLocalSuffixes(pkg+".Local·1"))
	assert.Equal(t, "map["+pkg+".A]"+pkg+".B", stripLocalSuffixes("map["+pkg+".A·2]"+pkg+".B·13"))
}
