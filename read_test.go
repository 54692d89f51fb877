package pandoc

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/test.json")
	require.NoError(t, err)
	data = bytes.TrimSpace(data)

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version{1, 23, 1}, doc.APIVersion())
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, MetaBool(true), doc.Meta.Get("draft"))
	assert.Equal(t, &MetaInlines{[]Inline{&Str{"Test"}}}, doc.Meta.Get("title"))

	h, ok := doc.Blocks[1].(*Header)
	require.True(t, ok)
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, "sec", h.Ident())
	assert.Equal(t, []string{"intro"}, h.Classes)

	cb, ok := doc.Blocks[2].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"go"}, cb.Classes)
	assert.Equal(t, "fmt.Println(42)", cb.Text)

	// the fixture is in canonical form, so encoding gives it back verbatim
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(out))
}

func TestDecodeDefaultVersion(t *testing.T) {
	doc, err := Decode([]byte(`{"meta":{},"blocks":[]}`))
	require.NoError(t, err)
	assert.Equal(t, v117, doc.APIVersion())
}

func TestDecodeLegacyArray(t *testing.T) {
	const in = `[{"unMeta":{"title":{"t":"MetaString","c":"T"}}},` +
		`[{"t":"Para","c":[{"t":"Link","c":[[{"t":"Str","c":"l"}],["url","title"]]}]}]]`
	doc, err := Decode([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, v116, doc.APIVersion())
	assert.Equal(t, MetaString("T"), doc.Meta.Get("title"))

	// pre-1.16 Link payloads have no attribute slot; they gain an empty one
	para := doc.Blocks[0].(*Para)
	link := para.Inlines[0].(*Link)
	assert.True(t, link.Attr.IsEmpty())
	assert.Equal(t, Target{Url: "url", Title: "title"}, link.Target)
}

func TestDecodeVersionFloor(t *testing.T) {
	_, err := Decode([]byte(`{"pandoc-api-version":[1,11],"meta":{},"blocks":[]}`))
	var unsupported *UnsupportedVersionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, Version{1, 11}, unsupported.Version)
}

func TestDecodeCitationDefaults(t *testing.T) {
	const in = `{"pandoc-api-version":[1,23],"meta":{},"blocks":[` +
		`{"t":"Para","c":[{"t":"Cite","c":[[{"citationId":"doe2020"}],[{"t":"Str","c":"[1]"}]]}]}]}`
	doc, err := Decode([]byte(in))
	require.NoError(t, err)
	cite := doc.Blocks[0].(*Para).Inlines[0].(*Cite)
	require.Len(t, cite.Citations, 1)
	c := cite.Citations[0]
	assert.Equal(t, "doe2020", c.Id)
	assert.Equal(t, NormalCitation, c.Mode)
	assert.Equal(t, 1, c.Hash)
}

func TestDecodeTable(t *testing.T) {
	const in = `{"pandoc-api-version":[1,23],"meta":{},"blocks":[{"t":"Table","c":[` +
		`["",[],[]],` +
		`[null,[{"t":"Para","c":[{"t":"Str","c":"cap"}]}]],` +
		`[[{"t":"AlignLeft"},{"t":"ColWidth","c":0.5}],[{"t":"AlignDefault"},{"t":"ColWidthDefault"}]],` +
		`[["",[],[]],[[["",[],[]],[[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"h"}]}]]]]]],` +
		`[[["",[],[]],0,[],[[["",[],[]],[[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"b"}]}]]]]]]],` +
		`[["",[],[]],[]]]}]}`
	doc, err := Decode([]byte(in))
	require.NoError(t, err)
	table := doc.Blocks[0].(*Table)

	assert.Nil(t, table.Caption.Short, "null short caption stays nil")
	require.Len(t, table.Aligns, 2)
	assert.Equal(t, ColSpec{AlignLeft, ColWidth{Width: 0.5}}, table.Aligns[0])
	assert.Equal(t, ColSpec{AlignDefault, ColWidth{Default: true}}, table.Aligns[1])

	require.Len(t, table.Head.Rows, 1)
	cell := table.Head.Rows[0].Cells[0]
	assert.Equal(t, 1, cell.RowSpan)
	assert.Equal(t, []Block{&Plain{[]Inline{&Str{"h"}}}}, cell.Blocks)

	require.Len(t, table.Bodies, 1)
	assert.Equal(t, 0, table.Bodies[0].RowHeadColumns)
	require.Len(t, table.Bodies[0].Body, 1)
}

func TestDecodeMetaBoolSpellings(t *testing.T) {
	var tests = []struct {
		payload string
		want    MetaBool
	}{
		{`true`, true},
		{`false`, false},
		{`"false"`, false},
		{`"FALSE"`, false},
		{`""`, false},
		{`"0"`, false},
		{`0`, false},
		{`"yes"`, true},
		{`1`, true},
	}
	for _, tt := range tests {
		doc, err := Decode([]byte(`{"meta":{"b":{"t":"MetaBool","c":` + tt.payload + `}},"blocks":[]}`))
		require.NoError(t, err, "payload %s", tt.payload)
		assert.Equal(t, tt.want, doc.Meta.Get("b"), "payload %s", tt.payload)
	}
}

func TestDecodeErrors(t *testing.T) {
	var bad = []struct {
		name string
		in   string
	}{
		{"truncated", `{"blocks":`},
		{"scalar root", `42`},
		{"legacy arity", `[{"unMeta":{}},[],[]]`},
		{"untagged element", `{"meta":{},"blocks":[{"c":[]}]}`},
		{"unknown block", `{"meta":{},"blocks":[{"t":"Paragraph","c":[]}]}`},
		{"unknown inline", `{"meta":{},"blocks":[{"t":"Para","c":[{"t":"Word","c":"x"}]}]}`},
		{"bad attr", `{"meta":{},"blocks":[{"t":"Div","c":[["x",[]],[]]}]}`},
		{"bad version", `{"pandoc-api-version":[1,"x"],"meta":{},"blocks":[]}`},
	}
	for _, tt := range bad {
		_, err := Decode([]byte(tt.in))
		require.Error(t, err, tt.name)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "%s: %v", tt.name, err)
		assert.NotContains(t, pe.Error(), "offset", tt.name)
	}
}
