package pandoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e, err := New("Str", "hello")
	require.NoError(t, err)
	assert.Equal(t, &Str{"hello"}, e)

	e, err = New("Emph", []Inline{&Str{"x"}})
	require.NoError(t, err)
	assert.Equal(t, &Emph{[]Inline{&Str{"x"}}}, e)

	e, err = New("Space")
	require.NoError(t, err)
	assert.Same(t, SP, e)

	e, err = New("HorizontalRule")
	require.NoError(t, err)
	assert.Same(t, HR, e)
}

func TestNewCoercion(t *testing.T) {
	// numeric strings settle into integer slots
	e, err := New("Header", "2", Attr{Id: "s"}, []Inline{&Str{"x"}})
	require.NoError(t, err)
	h := e.(*Header)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "s", h.Ident())

	e, err = New("MetaBool", "false")
	require.NoError(t, err)
	assert.Equal(t, MetaBool(false), e)

	e, err = New("MetaBool", "no")
	require.NoError(t, err)
	assert.Equal(t, MetaBool(true), e, "only empty/zero/false spellings are false")

	e, err = New("MetaString", 42)
	require.NoError(t, err)
	assert.Equal(t, MetaString("42"), e)
}

func TestBoolOf(t *testing.T) {
	var falsy = []any{nil, false, 0, 0.0, "", "0", "false", "FALSE", "False"}
	for _, v := range falsy {
		assert.False(t, boolOf(v), "%#v", v)
	}
	var truthy = []any{true, 1, -1, "1", "yes", "true", " "}
	for _, v := range truthy {
		assert.True(t, boolOf(v), "%#v", v)
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New("Bogus")
	var unknown *UnknownTagError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Bogus", unknown.TagName)

	_, err = New("Str")
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 0, arity.Got)

	_, err = New("Str", "a", "b")
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 2, arity.Got)
}

func TestNewOrderedListDefaults(t *testing.T) {
	e, err := New("OrderedList", nil, [][]Block{{&Plain{[]Inline{&Str{"x"}}}}})
	require.NoError(t, err)
	l := e.(*OrderedList)
	assert.Equal(t, ListAttrs{Start: 1, Style: DefaultStyle, Delimiter: DefaultDelim}, l.Attrs)
}

func TestCategories(t *testing.T) {
	var tests = []struct {
		elt  Element
		want Category
	}{
		{&Str{"x"}, CatInline},
		{SP, CatInline},
		{&Para{}, CatBlock},
		{HR, CatBlock},
		{MetaBool(true), CatMeta},
		{&MetaMap{}, CatMeta},
		{&Doc{}, CatDocument},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryOf(tt.elt), "%T", tt.elt)
	}

	assert.True(t, IsInline(SP))
	assert.False(t, IsBlock(SP))
	assert.True(t, IsBlock(&Div{}))
	assert.True(t, IsMeta(MetaString("x")))
	assert.True(t, IsDocument(&Doc{}))
	assert.False(t, IsDocument(&Para{}))

	assert.True(t, Is[Str](Inline(&Str{"x"})))
	assert.False(t, Is[Emph](Inline(&Str{"x"})))

	cat, ok := TagCategory("Para")
	require.True(t, ok)
	assert.Equal(t, CatBlock, cat)
	_, ok = TagCategory("Nope")
	assert.False(t, ok)
}

func TestMetaAccess(t *testing.T) {
	var m Meta
	m.SetString("title", "T")
	m.SetBool("draft", true)
	m.SetInlines("author", &Str{"A"})
	m.SetBlocks("abstract", &Para{[]Inline{&Str{"B"}}})

	assert.Equal(t, MetaString("T"), m.Get("title"))
	assert.Equal(t, MetaBool(true), m.Get("draft"))
	assert.Nil(t, m.Get("missing"))

	m.SetString("title", "U")
	assert.Equal(t, MetaString("U"), m.Get("title"))
	assert.Len(t, m, 4, "Set replaces in place")

	m.Set("draft", nil)
	assert.Nil(t, m.Get("draft"))
	assert.Len(t, m, 3)
}

func TestNewCitation(t *testing.T) {
	c := NewCitation()
	assert.Equal(t, "missing", c.Id)
	assert.Equal(t, NormalCitation, c.Mode)
	assert.Equal(t, 1, c.Hash)
	assert.Equal(t, 0, c.NoteNum)
	assert.Empty(t, c.Prefix)
	assert.Empty(t, c.Suffix)
}

func TestWithAttr(t *testing.T) {
	var e Element = &Div{Attr: Attr{Id: "d"}}
	wa, ok := e.(WithAttr)
	require.True(t, ok)
	wa.Attributes().SetIdent("e")
	assert.Equal(t, "e", e.(*Div).Id)

	_, ok = Element(&Para{}).(WithAttr)
	assert.False(t, ok, "Para carries no attributes")
}
