package pandoc

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
)

// Decode parses a pandoc JSON document. Both the current object form and
// the legacy two-element array form (pandoc < 1.17) are accepted; legacy
// documents are upgraded to the newest in-memory shape on the way in.
func Decode(data []byte) (*Doc, error) {
	return ReadFrom(bytes.NewReader(data))
}

// ReadFrom decodes a pandoc JSON document from r. See Decode.
func ReadFrom(r io.Reader) (*Doc, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseErrorf("malformed JSON input")
	}
	return docFromValue(v)
}

func docFromValue(v any) (*Doc, error) {
	switch v := v.(type) {
	case []any:
		// pandoc < 1.17 wrote [{"unMeta": ...}, [blocks]]
		if len(v) != 2 {
			return nil, parseErrorf("legacy document must have 2 elements, has %d", len(v))
		}
		wrap, ok := v[0].(map[string]any)
		if !ok {
			return nil, parseErrorf("legacy document metadata is not an object")
		}
		meta, err := metaFromValue(wrap["unMeta"])
		if err != nil {
			return nil, err
		}
		blocks, err := blocksFromValue(v[1])
		if err != nil {
			return nil, err
		}
		return &Doc{Meta: meta, Blocks: blocks, version: v116}, nil

	case map[string]any:
		version := v117
		if raw, ok := v["pandoc-api-version"]; ok {
			var err error
			if version, err = versionFromValue(raw); err != nil {
				return nil, err
			}
		}
		if version.Compare(MinAPIVersion) < 0 {
			return nil, &UnsupportedVersionError{Version: version}
		}
		meta, err := metaFromValue(v["meta"])
		if err != nil {
			return nil, err
		}
		blocks, err := blocksFromValue(v["blocks"])
		if err != nil {
			return nil, err
		}
		return &Doc{Meta: meta, Blocks: blocks, version: version}, nil

	default:
		return nil, parseErrorf("document must be an object or an array, got %s", jsonKind(v))
	}
}

func versionFromValue(v any) (Version, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("pandoc-api-version is not an array")
	}
	if len(l) < 2 {
		return nil, parseErrorf("pandoc-api-version must have at least 2 components, has %d", len(l))
	}
	version := make(Version, 0, len(l))
	for _, c := range l {
		n, ok := c.(json.Number)
		if !ok {
			return nil, parseErrorf("pandoc-api-version component is not a number")
		}
		i, err := n.Int64()
		if err != nil {
			return nil, parseErrorf("pandoc-api-version component %s is not an integer", n)
		}
		version = append(version, int(i))
	}
	return version, nil
}

// jsonKind names the JSON type of a decoded value for error messages.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "value"
	}
}

// ----------- generic shapes -------------

// taggedValue splits a {"t": ..., "c": ...} object into tag and content.
func taggedValue(v any) (Tag, any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", nil, parseErrorf("element is not an object, got %s", jsonKind(v))
	}
	t, ok := obj["t"].(string)
	if !ok {
		return "", nil, parseErrorf("element has no tag")
	}
	return Tag(t), obj["c"], nil
}

func tupleFromValue(v any, n int, name string) ([]any, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("%s content is not an array", name)
	}
	if len(l) != n {
		return nil, parseErrorf("%s content must have %d elements, has %d", name, n, len(l))
	}
	return l, nil
}

func stringFromValue(v any, name string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", parseErrorf("%s is not a string, got %s", name, jsonKind(v))
	}
	return s, nil
}

func intFromValue(v any, name string) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, parseErrorf("%s is not a number, got %s", name, jsonKind(v))
	}
	i, err := n.Int64()
	if err != nil {
		return 0, parseErrorf("%s is not an integer", name)
	}
	return int(i), nil
}

// tagFromValue decodes a payload-free tagged object into one of the
// allowed enumeration constants.
func tagFromValue[T ~string](v any, name string, allowed ...T) (T, error) {
	tag, _, err := taggedValue(v)
	if err != nil {
		return "", err
	}
	for _, t := range allowed {
		if string(t) == string(tag) {
			return t, nil
		}
	}
	return "", parseErrorf("unknown %s %q", name, tag)
}

// ----------- inlines -------------

func inlinesFromValue(v any) ([]Inline, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("inline list is not an array, got %s", jsonKind(v))
	}
	ret := make([]Inline, 0, len(l))
	for _, item := range l {
		i, err := inlineFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, i)
	}
	return ret, nil
}

func inlineListsFromValue(v any) ([][]Inline, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("list of inline lists is not an array")
	}
	ret := make([][]Inline, 0, len(l))
	for _, item := range l {
		line, err := inlinesFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, line)
	}
	return ret, nil
}

func inlineFromValue(v any) (Inline, error) {
	tag, c, err := taggedValue(v)
	if err != nil {
		return nil, err
	}
	switch tag {
	case SpaceTag:
		return SP, nil
	case SoftBreakTag:
		return SB, nil
	case LineBreakTag:
		return LB, nil
	case StrTag:
		s, err := stringFromValue(c, "Str")
		return &Str{s}, err
	case EmphTag:
		l, err := inlinesFromValue(c)
		return &Emph{l}, err
	case UnderlineTag:
		l, err := inlinesFromValue(c)
		return &Underline{l}, err
	case StrongTag:
		l, err := inlinesFromValue(c)
		return &Strong{l}, err
	case StrikeoutTag:
		l, err := inlinesFromValue(c)
		return &Strikeout{l}, err
	case SuperscriptTag:
		l, err := inlinesFromValue(c)
		return &Superscript{l}, err
	case SubscriptTag:
		l, err := inlinesFromValue(c)
		return &Subscript{l}, err
	case SmallCapsTag:
		l, err := inlinesFromValue(c)
		return &SmallCaps{l}, err
	case QuotedTag:
		parts, err := tupleFromValue(c, 2, "Quoted")
		if err != nil {
			return nil, err
		}
		qt, err := tagFromValue(parts[0], "quote type", SingleQuote, DoubleQuote)
		if err != nil {
			return nil, err
		}
		l, err := inlinesFromValue(parts[1])
		return &Quoted{qt, l}, err
	case CiteTag:
		parts, err := tupleFromValue(c, 2, "Cite")
		if err != nil {
			return nil, err
		}
		cs, err := citationsFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesFromValue(parts[1])
		return &Cite{cs, l}, err
	case CodeTag:
		parts, err := tupleFromValue(c, 2, "Code")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		s, err := stringFromValue(parts[1], "Code text")
		return &Code{attr, s}, err
	case MathTag:
		parts, err := tupleFromValue(c, 2, "Math")
		if err != nil {
			return nil, err
		}
		mt, err := tagFromValue(parts[0], "math type", DisplayMath, InlineMath)
		if err != nil {
			return nil, err
		}
		s, err := stringFromValue(parts[1], "Math text")
		return &Math{mt, s}, err
	case RawInlineTag:
		parts, err := tupleFromValue(c, 2, "RawInline")
		if err != nil {
			return nil, err
		}
		f, err := stringFromValue(parts[0], "RawInline format")
		if err != nil {
			return nil, err
		}
		s, err := stringFromValue(parts[1], "RawInline text")
		return &RawInline{f, s}, err
	case LinkTag:
		attr, l, t, err := linkishFromValue(c, "Link")
		return &Link{attr, l, t}, err
	case ImageTag:
		attr, l, t, err := linkishFromValue(c, "Image")
		return &Image{attr, l, t}, err
	case NoteTag:
		b, err := blocksFromValue(c)
		return &Note{b}, err
	case SpanTag:
		parts, err := tupleFromValue(c, 2, "Span")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesFromValue(parts[1])
		return &Span{attr, l}, err
	default:
		return nil, parseErrorf("unknown inline type %q", tag)
	}
}

// linkishFromValue decodes a Link or Image payload. Before api 1.16 the
// payload was a 2-tuple without attributes; those gain an empty attribute
// set on the way in.
func linkishFromValue(c any, name string) (Attr, []Inline, Target, error) {
	parts, ok := c.([]any)
	if !ok {
		return Attr{}, nil, Target{}, parseErrorf("%s content is not an array", name)
	}
	var attr Attr
	switch len(parts) {
	case 3:
		var err error
		if attr, err = attrFromValue(parts[0]); err != nil {
			return Attr{}, nil, Target{}, err
		}
		parts = parts[1:]
	case 2:
		// legacy form, upgraded
	default:
		return Attr{}, nil, Target{}, parseErrorf("%s content must have 2 or 3 elements, has %d", name, len(parts))
	}
	l, err := inlinesFromValue(parts[0])
	if err != nil {
		return Attr{}, nil, Target{}, err
	}
	t, err := targetFromValue(parts[1], name)
	return attr, l, t, err
}

func targetFromValue(v any, name string) (Target, error) {
	parts, err := tupleFromValue(v, 2, name+" target")
	if err != nil {
		return Target{}, err
	}
	url, err := stringFromValue(parts[0], name+" url")
	if err != nil {
		return Target{}, err
	}
	title, err := stringFromValue(parts[1], name+" title")
	return Target{Url: url, Title: title}, err
}

func citationsFromValue(v any) ([]*Citation, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("citation list is not an array")
	}
	ret := make([]*Citation, 0, len(l))
	for _, item := range l {
		c, err := citationFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func citationFromValue(v any) (*Citation, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, parseErrorf("citation is not an object")
	}
	c := NewCitation()
	var err error
	if raw, ok := obj["citationId"]; ok {
		if c.Id, err = stringFromValue(raw, "citationId"); err != nil {
			return nil, err
		}
	}
	if raw, ok := obj["citationPrefix"]; ok {
		if c.Prefix, err = inlinesFromValue(raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := obj["citationSuffix"]; ok {
		if c.Suffix, err = inlinesFromValue(raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := obj["citationMode"]; ok {
		c.Mode, err = tagFromValue(raw, "citation mode", NormalCitation, SuppressAuthor, AuthorInText)
		if err != nil {
			return nil, err
		}
	}
	if raw, ok := obj["citationNoteNum"]; ok {
		if c.NoteNum, err = intFromValue(raw, "citationNoteNum"); err != nil {
			return nil, err
		}
	}
	if raw, ok := obj["citationHash"]; ok {
		if c.Hash, err = intFromValue(raw, "citationHash"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ----------- blocks -------------

func blocksFromValue(v any) ([]Block, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("block list is not an array, got %s", jsonKind(v))
	}
	ret := make([]Block, 0, len(l))
	for _, item := range l {
		b, err := blockFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, b)
	}
	return ret, nil
}

func blockListsFromValue(v any) ([][]Block, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("list of block lists is not an array")
	}
	ret := make([][]Block, 0, len(l))
	for _, item := range l {
		blocks, err := blocksFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, blocks)
	}
	return ret, nil
}

func blockFromValue(v any) (Block, error) {
	tag, c, err := taggedValue(v)
	if err != nil {
		return nil, err
	}
	switch tag {
	case HorizontalRuleTag:
		return HR, nil
	case PlainTag:
		l, err := inlinesFromValue(c)
		return &Plain{l}, err
	case ParaTag:
		l, err := inlinesFromValue(c)
		return &Para{l}, err
	case LineBlockTag:
		l, err := inlineListsFromValue(c)
		return &LineBlock{l}, err
	case CodeBlockTag:
		parts, err := tupleFromValue(c, 2, "CodeBlock")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		s, err := stringFromValue(parts[1], "CodeBlock text")
		return &CodeBlock{attr, s}, err
	case RawBlockTag:
		parts, err := tupleFromValue(c, 2, "RawBlock")
		if err != nil {
			return nil, err
		}
		f, err := stringFromValue(parts[0], "RawBlock format")
		if err != nil {
			return nil, err
		}
		s, err := stringFromValue(parts[1], "RawBlock text")
		return &RawBlock{f, s}, err
	case BlockQuoteTag:
		b, err := blocksFromValue(c)
		return &BlockQuote{b}, err
	case OrderedListTag:
		parts, err := tupleFromValue(c, 2, "OrderedList")
		if err != nil {
			return nil, err
		}
		la, err := listAttrsFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		items, err := blockListsFromValue(parts[1])
		return &OrderedList{la, items}, err
	case BulletListTag:
		items, err := blockListsFromValue(c)
		return &BulletList{items}, err
	case DefinitionListTag:
		l, ok := c.([]any)
		if !ok {
			return nil, parseErrorf("DefinitionList content is not an array")
		}
		items := make([]Definition, 0, len(l))
		for _, item := range l {
			d, err := definitionFromValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, d)
		}
		return &DefinitionList{items}, nil
	case HeaderTag:
		parts, err := tupleFromValue(c, 3, "Header")
		if err != nil {
			return nil, err
		}
		lvl, err := intFromValue(parts[0], "Header level")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[1])
		if err != nil {
			return nil, err
		}
		l, err := inlinesFromValue(parts[2])
		return &Header{attr, lvl, l}, err
	case TableTag:
		return tableFromValue(c)
	case FigureTag:
		parts, err := tupleFromValue(c, 3, "Figure")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		caption, err := captionFromValue(parts[1])
		if err != nil {
			return nil, err
		}
		b, err := blocksFromValue(parts[2])
		return &Figure{attr, caption, b}, err
	case DivTag:
		parts, err := tupleFromValue(c, 2, "Div")
		if err != nil {
			return nil, err
		}
		attr, err := attrFromValue(parts[0])
		if err != nil {
			return nil, err
		}
		b, err := blocksFromValue(parts[1])
		return &Div{attr, b}, err
	default:
		return nil, parseErrorf("unknown block type %q", tag)
	}
}

func listAttrsFromValue(v any) (ListAttrs, error) {
	parts, err := tupleFromValue(v, 3, "list attributes")
	if err != nil {
		return ListAttrs{}, err
	}
	start, err := intFromValue(parts[0], "list start")
	if err != nil {
		return ListAttrs{}, err
	}
	style, err := tagFromValue(parts[1], "list number style",
		DefaultStyle, Example, Decimal, LowerRoman, UpperRoman, LowerAlpha, UpperAlpha)
	if err != nil {
		return ListAttrs{}, err
	}
	delim, err := tagFromValue(parts[2], "list number delimiter",
		DefaultDelim, Period, OneParen, TwoParens)
	return ListAttrs{start, style, delim}, err
}

func definitionFromValue(v any) (Definition, error) {
	parts, err := tupleFromValue(v, 2, "definition item")
	if err != nil {
		return Definition{}, err
	}
	term, err := inlinesFromValue(parts[0])
	if err != nil {
		return Definition{}, err
	}
	def, err := blockListsFromValue(parts[1])
	return Definition{term, def}, err
}

// ----------- attributes -------------

func attrFromValue(v any) (Attr, error) {
	parts, err := tupleFromValue(v, 3, "attributes")
	if err != nil {
		return Attr{}, err
	}
	id, err := stringFromValue(parts[0], "identifier")
	if err != nil {
		return Attr{}, err
	}
	rawClasses, ok := parts[1].([]any)
	if !ok {
		return Attr{}, parseErrorf("class list is not an array")
	}
	var classes []string
	for _, c := range rawClasses {
		s, err := stringFromValue(c, "class")
		if err != nil {
			return Attr{}, err
		}
		classes = append(classes, s)
	}
	rawKVs, ok := parts[2].([]any)
	if !ok {
		return Attr{}, parseErrorf("attribute list is not an array")
	}
	var kvs []KV
	for _, item := range rawKVs {
		pair, err := tupleFromValue(item, 2, "attribute")
		if err != nil {
			return Attr{}, err
		}
		k, err := stringFromValue(pair[0], "attribute key")
		if err != nil {
			return Attr{}, err
		}
		val, err := stringFromValue(pair[1], "attribute value")
		if err != nil {
			return Attr{}, err
		}
		kvs = append(kvs, KV{k, val})
	}
	return Attr{Id: id, Classes: classes, KVs: kvs}, nil
}

// ----------- tables -------------

func tableFromValue(c any) (*Table, error) {
	parts, err := tupleFromValue(c, 6, "Table")
	if err != nil {
		return nil, err
	}
	attr, err := attrFromValue(parts[0])
	if err != nil {
		return nil, err
	}
	caption, err := captionFromValue(parts[1])
	if err != nil {
		return nil, err
	}
	aligns, err := colSpecsFromValue(parts[2])
	if err != nil {
		return nil, err
	}
	head, err := tableHeadFootFromValue(parts[3])
	if err != nil {
		return nil, err
	}
	rawBodies, ok := parts[4].([]any)
	if !ok {
		return nil, parseErrorf("table body list is not an array")
	}
	bodies := make([]*TableBody, 0, len(rawBodies))
	for _, item := range rawBodies {
		b, err := tableBodyFromValue(item)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	foot, err := tableHeadFootFromValue(parts[5])
	return &Table{attr, caption, aligns, head, bodies, foot}, err
}

func captionFromValue(v any) (Caption, error) {
	parts, err := tupleFromValue(v, 2, "caption")
	if err != nil {
		return Caption{}, err
	}
	var short []Inline
	if parts[0] != nil {
		if short, err = inlinesFromValue(parts[0]); err != nil {
			return Caption{}, err
		}
		if short == nil {
			short = []Inline{}
		}
	}
	long, err := blocksFromValue(parts[1])
	return Caption{Short: short, Long: long}, err
}

func colSpecsFromValue(v any) ([]ColSpec, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("column specification list is not an array")
	}
	ret := make([]ColSpec, 0, len(l))
	for _, item := range l {
		parts, err := tupleFromValue(item, 2, "column specification")
		if err != nil {
			return nil, err
		}
		align, err := tagFromValue(parts[0], "alignment",
			AlignLeft, AlignRight, AlignCenter, AlignDefault)
		if err != nil {
			return nil, err
		}
		width, err := colWidthFromValue(parts[1])
		if err != nil {
			return nil, err
		}
		ret = append(ret, ColSpec{align, width})
	}
	return ret, nil
}

func colWidthFromValue(v any) (ColWidth, error) {
	tag, c, err := taggedValue(v)
	if err != nil {
		return ColWidth{}, err
	}
	switch string(tag) {
	case colWidthDefaultTag:
		return DefaultColWidth(), nil
	case colWidthTag:
		n, ok := c.(json.Number)
		if !ok {
			return ColWidth{}, parseErrorf("column width is not a number")
		}
		f, err := n.Float64()
		if err != nil {
			return ColWidth{}, parseErrorf("column width %s is not a number", n)
		}
		return ColWidth{Width: f}, nil
	default:
		return ColWidth{}, parseErrorf("unknown column width %q", tag)
	}
}

func tableHeadFootFromValue(v any) (TableHeadFoot, error) {
	parts, err := tupleFromValue(v, 2, "table head or foot")
	if err != nil {
		return TableHeadFoot{}, err
	}
	attr, err := attrFromValue(parts[0])
	if err != nil {
		return TableHeadFoot{}, err
	}
	rows, err := tableRowsFromValue(parts[1])
	return TableHeadFoot{attr, rows}, err
}

func tableRowsFromValue(v any) ([]*TableRow, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, parseErrorf("table row list is not an array")
	}
	ret := make([]*TableRow, 0, len(l))
	for _, item := range l {
		r, err := tableRowFromValue(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func tableRowFromValue(v any) (*TableRow, error) {
	parts, err := tupleFromValue(v, 2, "table row")
	if err != nil {
		return nil, err
	}
	attr, err := attrFromValue(parts[0])
	if err != nil {
		return nil, err
	}
	rawCells, ok := parts[1].([]any)
	if !ok {
		return nil, parseErrorf("table cell list is not an array")
	}
	cells := make([]*TableCell, 0, len(rawCells))
	for _, item := range rawCells {
		c, err := tableCellFromValue(item)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return &TableRow{attr, cells}, nil
}

func tableCellFromValue(v any) (*TableCell, error) {
	parts, err := tupleFromValue(v, 5, "table cell")
	if err != nil {
		return nil, err
	}
	attr, err := attrFromValue(parts[0])
	if err != nil {
		return nil, err
	}
	align, err := tagFromValue(parts[1], "alignment",
		AlignLeft, AlignRight, AlignCenter, AlignDefault)
	if err != nil {
		return nil, err
	}
	rowSpan, err := intFromValue(parts[2], "row span")
	if err != nil {
		return nil, err
	}
	colSpan, err := intFromValue(parts[3], "column span")
	if err != nil {
		return nil, err
	}
	blocks, err := blocksFromValue(parts[4])
	return &TableCell{attr, align, rowSpan, colSpan, blocks}, err
}

func tableBodyFromValue(v any) (*TableBody, error) {
	parts, err := tupleFromValue(v, 4, "table body")
	if err != nil {
		return nil, err
	}
	attr, err := attrFromValue(parts[0])
	if err != nil {
		return nil, err
	}
	rowHead, err := intFromValue(parts[1], "row head columns")
	if err != nil {
		return nil, err
	}
	head, err := tableRowsFromValue(parts[2])
	if err != nil {
		return nil, err
	}
	body, err := tableRowsFromValue(parts[3])
	return &TableBody{attr, rowHead, head, body}, err
}

// ----------- metadata -------------

// metaFromValue decodes a metadata mapping. JSON objects carry no key
// order, so entries are stored sorted by key to keep decoding
// deterministic.
func metaFromValue(v any) (Meta, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, parseErrorf("metadata is not an object, got %s", jsonKind(v))
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := make(Meta, 0, len(keys))
	for _, k := range keys {
		mv, err := metaValueFromValue(obj[k])
		if err != nil {
			return nil, err
		}
		m = append(m, MetaMapEntry{k, mv})
	}
	return m, nil
}

func metaValueFromValue(v any) (MetaValue, error) {
	tag, c, err := taggedValue(v)
	if err != nil {
		return nil, err
	}
	switch tag {
	case MetaBoolTag:
		return MetaBool(boolOf(c)), nil
	case MetaStringTag:
		s, err := stringFromValue(c, "MetaString")
		return MetaString(s), err
	case MetaMapTag:
		m, err := metaFromValue(c)
		return &MetaMap{m}, err
	case MetaListTag:
		l, ok := c.([]any)
		if !ok {
			return nil, parseErrorf("MetaList content is not an array")
		}
		values := make([]MetaValue, 0, len(l))
		for _, item := range l {
			mv, err := metaValueFromValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, mv)
		}
		return &MetaList{values}, nil
	case MetaInlinesTag:
		l, err := inlinesFromValue(c)
		return &MetaInlines{l}, err
	case MetaBlocksTag:
		b, err := blocksFromValue(c)
		return &MetaBlocks{b}, err
	default:
		return nil, parseErrorf("unknown metadata type %q", tag)
	}
}
