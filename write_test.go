package pandoc

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeAt runs the encoder for one target version, bypassing the
// process-wide preference.
func encodeAt(t *testing.T, api Version, elt Element) string {
	t.Helper()
	var buf bytes.Buffer
	e := &encoder{w: &buf, api: api}
	require.NoError(t, e.element(elt))
	return buf.String()
}

func TestAppendQuote(t *testing.T) {
	var tests = []struct {
		str, want string
	}{
		{"", `""`},
		{"a", `"a"`},
		{"\"", `"\""`},
		{"a\\b", `"a\\b"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{" nbsp", "\" nbsp\""},
		{"💩", `"💩"`},
	}
	for i := range tests {
		r := appendQuote(nil, tests[i].str)
		v := []byte(tests[i].want)
		if !bytes.Equal(r, v) {
			t.Errorf("expected [%s], got [%s]", v, r)
		}
	}
}

func TestAppendFloat(t *testing.T) {
	var tests = []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{0.05, "5e-2"},
		{1e21, "1e+21"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
	}
	for _, tt := range tests {
		if got := string(appendFloat(nil, tt.f)); got != tt.want {
			t.Errorf("appendFloat(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestEncodeKeyOrder(t *testing.T) {
	doc := &Doc{
		Meta: Meta{
			{"zz", MetaBool(false)},
			{"aa", MetaString("first")},
		},
		Blocks: []Block{&Para{[]Inline{&Str{"hi"}}}},
	}
	require.NoError(t, doc.SetAPIVersion(Version{1, 23, 1}))
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		`{"blocks":[{"c":[{"c":"hi","t":"Str"}],"t":"Para"}],`+
			`"meta":{"aa":{"c":"first","t":"MetaString"},"zz":{"c":false,"t":"MetaBool"}},`+
			`"pandoc-api-version":[1,23,1]}`,
		string(out))
}

func TestEncodeDeterministic(t *testing.T) {
	doc := &Doc{Blocks: []Block{&Para{[]Inline{&Str{"x"}}}}}
	a, err := doc.Encode()
	require.NoError(t, err)
	b, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeLegacyDoc(t *testing.T) {
	doc := &Doc{Blocks: []Block{&Para{[]Inline{&Str{"a"}, SB, &Str{"b"}}}}}
	require.NoError(t, doc.SetAPIVersion(Version{1, 12, 3}))
	out, err := doc.Encode()
	require.NoError(t, err)
	// array form, and SoftBreak does not exist yet
	assert.Equal(t,
		`[{"unMeta":{}},[{"c":[{"c":"a","t":"Str"},{"t":"Space"},{"c":"b","t":"Str"}],"t":"Para"}]]`,
		string(out))
}

func TestEncodeSoftBreak(t *testing.T) {
	assert.Equal(t, `{"t":"SoftBreak"}`, encodeAt(t, Version{1, 16}, SB))
	assert.Equal(t, `{"t":"Space"}`, encodeAt(t, Version{1, 12, 3}, SB))
}

func TestEncodeLinkAttrSlot(t *testing.T) {
	link := &Link{
		Attr:    Attr{Id: "l"},
		Inlines: []Inline{&Str{"x"}},
		Target:  Target{Url: "u", Title: "ti"},
	}
	assert.Equal(t,
		`{"c":[["l",[],[]],[{"c":"x","t":"Str"}],["u","ti"]],"t":"Link"}`,
		encodeAt(t, Version{1, 23}, link))
	// below 1.16 the payload is a 2-tuple and the attributes are dropped
	assert.Equal(t,
		`{"c":[[{"c":"x","t":"Str"}],["u","ti"]],"t":"Link"}`,
		encodeAt(t, Version{1, 12, 3}, link))
}

func TestEncodeLineBlock(t *testing.T) {
	lb := &LineBlock{[][]Inline{
		{&Str{"  a"}},
		{SP, SP, &Str{"b"}},
		{&Str{"c"}},
	}}
	// leading spaces become no-break spaces at any target
	assert.Equal(t,
		`{"c":[[{"c":"`+"  "+`a","t":"Str"}],[{"c":"`+"  "+`b","t":"Str"}],[{"c":"c","t":"Str"}]],"t":"LineBlock"}`,
		encodeAt(t, Version{1, 23}, lb))
	// below 1.18 the element does not exist: one Para, lines joined by LineBreak
	assert.Equal(t,
		`{"c":[{"c":"`+"  "+`a","t":"Str"},{"t":"LineBreak"},{"c":"`+"  "+`b","t":"Str"},{"t":"LineBreak"},{"c":"c","t":"Str"}],"t":"Para"}`,
		encodeAt(t, Version{1, 17}, lb))
}

func TestLineBlockDowngradeLossy(t *testing.T) {
	doc := &Doc{Blocks: []Block{&LineBlock{[][]Inline{{&Str{"a"}}, {&Str{"b"}}}}}}
	require.NoError(t, doc.SetAPIVersion(Version{1, 17}))
	out, err := doc.Encode()
	require.NoError(t, err)
	back, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, back.Blocks, 1)
	_, isPara := back.Blocks[0].(*Para)
	assert.True(t, isPara, "the LineBlock does not come back")
}

func TestEncodeCitation(t *testing.T) {
	cite := &Cite{
		Citations: []*Citation{{
			Id:     "doe2020",
			Prefix: []Inline{&Str{"see"}},
			Mode:   SuppressAuthor,
			Hash:   1,
		}},
		Inlines: []Inline{&Str{"[1]"}},
	}
	// citation keys are written in alphabetical order
	assert.Equal(t,
		`{"c":[[{"citationHash":1,"citationId":"doe2020","citationMode":{"t":"SuppressAuthor"},`+
			`"citationNoteNum":0,"citationPrefix":[{"c":"see","t":"Str"}],"citationSuffix":[]}],`+
			`[{"c":"[1]","t":"Str"}]],"t":"Cite"}`,
		encodeAt(t, Version{1, 23}, cite))
}

func TestEncodeColWidth(t *testing.T) {
	table := &Table{Aligns: []ColSpec{
		{AlignLeft, ColWidth{Width: 0.5}},
		{AlignDefault, ColWidth{Default: true}},
	}}
	out := encodeAt(t, Version{1, 23}, table)
	assert.Contains(t, out, `[{"t":"AlignLeft"},{"c":0.5,"t":"ColWidth"}]`)
	assert.Contains(t, out, `[{"t":"AlignDefault"},{"t":"ColWidthDefault"}]`)
}

func TestEncodeCaptionShort(t *testing.T) {
	fig := &Figure{Caption: Caption{Long: []Block{&Plain{[]Inline{&Str{"cap"}}}}}}
	assert.Equal(t,
		`{"c":[["",[],[]],[null,[{"c":[{"c":"cap","t":"Str"}],"t":"Plain"}]],[]],"t":"Figure"}`,
		encodeAt(t, Version{1, 23}, fig))

	fig.Caption.Short = []Inline{&Str{"s"}}
	assert.Equal(t,
		`{"c":[["",[],[]],[[{"c":"s","t":"Str"}],[{"c":[{"c":"cap","t":"Str"}],"t":"Plain"}]],[]],"t":"Figure"}`,
		encodeAt(t, Version{1, 23}, fig))
}

func TestWriteFragment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Str{"x"}))
	assert.Equal(t, `{"c":"x","t":"Str"}`, buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, MetaString("m")))
	assert.Equal(t, `{"c":"m","t":"MetaString"}`, buf.String())
}

func TestPreferredVersionWins(t *testing.T) {
	require.NoError(t, SetPreferredAPIVersion(Version{1, 12, 3}))
	t.Cleanup(func() { _ = SetPreferredAPIVersion(nil) })

	doc := &Doc{Blocks: []Block{&Para{[]Inline{SB}}}}
	require.NoError(t, doc.SetAPIVersion(Version{1, 23, 1}))
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, `[{"unMeta":{}},[{"c":[{"t":"Space"}],"t":"Para"}]]`, string(out))
}

func TestRoundTrip(t *testing.T) {
	// canonical form: decoding and re-encoding reproduces the bytes, and a
	// second decode reproduces the tree
	const in = `{"blocks":[` +
		`{"c":[{"c":"a","t":"Str"},{"t":"SoftBreak"},{"c":[{"c":"q","t":"Str"}],"t":"Emph"}],"t":"Para"},` +
		`{"c":[["d",["cls"],[["k","v"]]],[{"c":[{"c":"inner","t":"Str"}],"t":"Para"}]],"t":"Div"},` +
		`{"c":[[1,{"t":"Decimal"},{"t":"Period"}],[[{"c":[{"c":"one","t":"Str"}],"t":"Plain"}]]],"t":"OrderedList"},` +
		`{"c":[[[{"c":"term","t":"Str"}],[[{"c":[{"c":"def","t":"Str"}],"t":"Plain"}]]]],"t":"DefinitionList"},` +
		`{"t":"HorizontalRule"},` +
		`{"c":[` +
		`{"c":[{"c":[{"c":"note","t":"Str"}],"t":"Para"}],"t":"Note"},` +
		`{"c":[{"t":"DisplayMath"},"x^2"],"t":"Math"},` +
		`{"c":["html","<b>"],"t":"RawInline"}` +
		`],"t":"Plain"}],` +
		`"meta":{` +
		`"list":{"c":[{"c":"s","t":"MetaString"},{"c":false,"t":"MetaBool"}],"t":"MetaList"},` +
		`"map":{"c":{"inner":{"c":[{"c":"m","t":"Str"}],"t":"MetaInlines"}},"t":"MetaMap"}` +
		`},"pandoc-api-version":[1,23,1]}`

	doc, err := Decode([]byte(in))
	require.NoError(t, err)
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))

	again, err := Decode(out)
	require.NoError(t, err)
	require.Equal(t, doc, again)
}
