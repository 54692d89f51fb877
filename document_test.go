package pandoc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentLegacyValue(t *testing.T) {
	doc, err := NewDocument([]any{
		map[string]any{"unMeta": map[string]any{
			"title": map[string]any{"t": "MetaString", "c": "T"},
		}},
		[]any{map[string]any{"t": "Para", "c": []any{map[string]any{"t": "Str", "c": "x"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, v116, doc.APIVersion())
	assert.Equal(t, MetaString("T"), doc.Meta.Get("title"))
	assert.Equal(t, []Block{&Para{[]Inline{&Str{"x"}}}}, doc.Blocks)
}

func TestNewDocumentMapping(t *testing.T) {
	doc, err := NewDocument(map[string]any{
		"meta":   map[string]any{"draft": MetaBool(true)},
		"blocks": []any{&Para{[]Inline{&Str{"x"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, v117, doc.APIVersion(), "mapping without a version declares 1.17")
	assert.Equal(t, MetaBool(true), doc.Meta.Get("draft"))

	doc, err = NewDocument(map[string]any{
		"meta":        map[string]any{},
		"blocks":      []any{},
		"api-version": "1.22",
	})
	require.NoError(t, err)
	assert.Equal(t, Version{1, 22}, doc.APIVersion())

	doc, err = NewDocument(map[string]any{
		"blocks":             []any{},
		"pandoc-api-version": []any{},
	})
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestNewDocumentPositional(t *testing.T) {
	meta := Meta{{"title", MetaString("T")}}
	blocks := []Block{&Para{[]Inline{&Str{"x"}}}}

	doc, err := NewDocument(meta, blocks)
	require.NoError(t, err)
	assert.Equal(t, v117, doc.APIVersion())
	assert.Equal(t, meta, doc.Meta)
	assert.Equal(t, blocks, doc.Blocks)

	doc, err = NewDocument(meta, blocks, "api_version", Version{1, 19})
	require.NoError(t, err)
	assert.Equal(t, Version{1, 19}, doc.APIVersion())

	// a pandoc release pins the api version through the compat table
	doc, err = NewDocument(nil, blocks, "pandoc_version", "2.11.4")
	require.NoError(t, err)
	assert.Equal(t, Version{1, 22}, doc.APIVersion())
}

func TestNewDocumentShapeErrors(t *testing.T) {
	var ambiguous *AmbiguousArgumentsError

	_, err := NewDocument()
	require.ErrorAs(t, err, &ambiguous)

	_, err = NewDocument("just a string")
	require.ErrorAs(t, err, &ambiguous)

	_, err = NewDocument(Meta{}, []Block{}, "api_version")
	require.ErrorAs(t, err, &ambiguous)

	_, err = NewDocument(Meta{}, []Block{}, 7, "odd key type")
	require.ErrorAs(t, err, &ambiguous)

	_, err = NewDocument(Meta{}, []Block{}, "no_such_override", "x")
	assert.Error(t, err)
}

func TestNewDocumentVersionFloor(t *testing.T) {
	_, err := NewDocument(nil, nil, "api_version", Version{1, 11})
	var unsupported *UnsupportedVersionError
	require.ErrorAs(t, err, &unsupported)

	_, err = NewDocument(nil, nil, "api_version", Version{1})
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
}

func TestDocumentWriteTo(t *testing.T) {
	doc, err := NewDocument(nil, []Block{&Para{[]Inline{&Str{"x"}}}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteTo(&buf))
	enc, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, enc, buf.Bytes())
}
