package accessor

import (
	"errors"
	"time"
)

// Input objects shared by the tests in this package.

type SomeObject struct {
	Key1 string
	Key2 int
}

// InputObject only exposes its state through setters.
type InputObject struct {
	simpleString string
	someDate     time.Time
	someObject   SomeObject
}

func (o *InputObject) SetSimpleString(s string) { o.simpleString = s }

func (o *InputObject) SetSomeDate(t time.Time) { o.someDate = t }

func (o *InputObject) SetSomeObject(so SomeObject) { o.someObject = so }

// InputObjectWithPublicAndPrivateFields has no setters at all.
type InputObjectWithPublicAndPrivateFields struct {
	SimpleString     string `graphql:"simpleString"`
	simplePrivateInt int
}

// FieldOnly mirrors property names onto unexported fields.
type FieldOnly struct {
	simpleString string
}

type InstrumentedInput struct {
	SimpleString string
	setterCalled bool
}

func (i *InstrumentedInput) SetSimpleString(s string) {
	i.SimpleString = s
	i.setterCalled = true
}

func (i *InstrumentedInput) wasSetterCalled() bool { return i.setterCalled }

type BarInput struct {
	Name string
}

// FooInput exposes a list through a setter.
type FooInput struct {
	bars []BarInput
}

func (f *FooInput) SetBars(bars []BarInput) { f.bars = bars }

// GenericField exposes a list through a field.
type GenericField struct {
	Bars []BarInput `graphql:"bars"`
}

// Generic containers.

type List[T any] []T

type Set[T comparable] map[T]struct{}

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Item struct {
	ID int
}

type InputObjectWithSet struct {
	Items Set[Item] `graphql:"items"`
}

type InputObjectWithList struct {
	Items List[Item] `graphql:"items"`
}

type Filter struct {
	Term string
}

// ListOfListOfFilters nests containers two levels deep.
type ListOfListOfFilters struct {
	Lists  [][]Filter             `graphql:"lists"`
	Nested List[List[Filter]]     `graphql:"nested"`
	Pairs  []Pair[string, Filter] `graphql:"pairs"`
}

type phantomUnit struct{}

// Tagged never stores its parameter, so it is not reachable structurally.
type Tagged[T any] string

type Mixed struct {
	Lookup   map[string]Item   `graphql:"lookup"`
	Pair     Pair[string, int] `graphql:"pair"`
	Label    Tagged[phantomUnit]
	Ptr      *Item
	Array    [3]int
	Stream   chan Item
	Blob     []byte
	Anything any
}

// Generic ancestors with a bound parameter.

type MovieSortByField string

const (
	MovieSortByTitle       MovieSortByField = "TITLE"
	MovieSortByReleaseDate MovieSortByField = "RELEASE_DATE"
)

type SortBy[T any] struct {
	field     T
	direction string
}

func (s *SortBy[T]) SetField(field T) { s.field = field }

func (s *SortBy[T]) SetDirection(dir string) { s.direction = dir }

func (s *SortBy[T]) Field() T { return s.field }

// Methods below look like setters but are not single-parameter mutators.

func (s *SortBy[T]) SetWithNoParam() {}

func (s *SortBy[T]) SetVariadic(values ...string) {}

func (s *SortBy[T]) SetTwo(a, b string) {}

type MovieSortBy struct {
	SortBy[MovieSortByField]
}

type PublicSortBy[T any] struct {
	Field T `graphql:"field"`
}

type MovieSortByPublicField struct {
	PublicSortBy[MovieSortByField]
}

// Setters with validation.

var errNegativeAge = errors.New("age must not be negative")

type Person struct {
	age int
}

func (p *Person) SetAge(age int) error {
	if age < 0 {
		return errNegativeAge
	}
	p.age = age
	return nil
}

// Embedding through pointers.

type Address struct {
	Street string
}

type Customer struct {
	*Address
	Name string
}

type hidden struct {
	Secret string
}

type WithHiddenPointer struct {
	*hidden
}

// Priority: a setter and a field share the property.

type Shadowed struct {
	Value     string
	setterHit int
}

func (s *Shadowed) SetValue(v string) {
	s.Value = "via setter: " + v
	s.setterHit++
}

// Non-struct named type with a setter.

type Settings map[string]string

func (s Settings) SetMode(mode string) { s["mode"] = mode }

// Setters promoted through embedded pointers.

type Contact struct {
	street string
}

func (c *Contact) SetStreet(street string) { c.street = street }

type Subscriber struct {
	*Contact
}

type Account struct {
	Subscriber
	ID int
}

type hiddenContact struct {
	street string
}

func (c *hiddenContact) SetStreet(street string) { c.street = street }

type WithHiddenContact struct {
	*hiddenContact
}

// Single-argument generics over non-container kinds.

type Box[T any] struct {
	Value T
}

type Anchored struct {
	Label Tagged[phantomUnit]
	Unit  phantomUnit
}
