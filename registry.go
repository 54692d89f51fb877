package pandoc

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Category of an element tag. Every tag belongs to exactly one.
type Category int

const (
	CatBlock Category = iota + 1
	CatInline
	CatMeta
	CatDocument
)

func (c Category) String() string {
	switch c {
	case CatBlock:
		return "block"
	case CatInline:
		return "inline"
	case CatMeta:
		return "meta"
	case CatDocument:
		return "document"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// CategoryOf returns the category an element belongs to.
func CategoryOf(e Element) Category {
	switch {
	case IsBlock(e):
		return CatBlock
	case IsInline(e):
		return CatInline
	case IsMeta(e):
		return CatMeta
	default:
		return CatDocument
	}
}

// descriptor is one row of the static tag table: the tag's category, its
// positional arity, and a builder assembling the element from coerced
// positional arguments.
type descriptor struct {
	category Category
	arity    int
	build    func(args []any) (Element, error)
}

// New constructs an element of the given tag from exactly the positional
// arguments the tag declares, coercing scalar arguments (numeric strings,
// loosely typed booleans) into the slot types. Unknown tags yield
// UnknownTagError, wrong argument counts ArityError.
func New(tag Tag, args ...any) (Element, error) {
	d, ok := registry[tag]
	if !ok {
		return nil, &UnknownTagError{TagName: string(tag)}
	}
	if len(args) != d.arity {
		return nil, &ArityError{Name: string(tag), Want: d.arity, Got: len(args)}
	}
	e, err := d.build(args)
	if err != nil {
		return nil, errors.Wrapf(err, "constructing %s", tag)
	}
	return e, nil
}

// TagCategory returns the category of a tag from the closed set, or false
// for tags outside it.
func TagCategory(tag Tag) (Category, bool) {
	d, ok := registry[tag]
	if !ok {
		return 0, false
	}
	return d.category, true
}

var registry = map[Tag]descriptor{
	StrTag: {CatInline, 1, func(a []any) (Element, error) {
		s, err := stringOf(a[0])
		return &Str{s}, err
	}},
	EmphTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Emph{l}, err
	}},
	UnderlineTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Underline{l}, err
	}},
	StrongTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Strong{l}, err
	}},
	StrikeoutTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Strikeout{l}, err
	}},
	SuperscriptTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Superscript{l}, err
	}},
	SubscriptTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Subscript{l}, err
	}},
	SmallCapsTag: {CatInline, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &SmallCaps{l}, err
	}},
	QuotedTag: {CatInline, 2, func(a []any) (Element, error) {
		qt, err := tagOf(a[0], SingleQuote, DoubleQuote)
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[1])
		return &Quoted{qt, l}, err
	}},
	CiteTag: {CatInline, 2, func(a []any) (Element, error) {
		cs, err := citationsArg(a[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[1])
		return &Cite{cs, l}, err
	}},
	CodeTag: {CatInline, 2, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		s, err := stringOf(a[1])
		return &Code{attr, s}, err
	}},
	SpaceTag:     {CatInline, 0, func([]any) (Element, error) { return SP, nil }},
	SoftBreakTag: {CatInline, 0, func([]any) (Element, error) { return SB, nil }},
	LineBreakTag: {CatInline, 0, func([]any) (Element, error) { return LB, nil }},
	MathTag: {CatInline, 2, func(a []any) (Element, error) {
		mt, err := tagOf(a[0], DisplayMath, InlineMath)
		if err != nil {
			return nil, err
		}
		s, err := stringOf(a[1])
		return &Math{mt, s}, err
	}},
	RawInlineTag: {CatInline, 2, func(a []any) (Element, error) {
		f, err := stringOf(a[0])
		if err != nil {
			return nil, err
		}
		s, err := stringOf(a[1])
		return &RawInline{f, s}, err
	}},
	LinkTag: {CatInline, 3, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[1])
		if err != nil {
			return nil, err
		}
		t, err := targetArg(a[2])
		return &Link{attr, l, t}, err
	}},
	ImageTag: {CatInline, 3, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[1])
		if err != nil {
			return nil, err
		}
		t, err := targetArg(a[2])
		return &Image{attr, l, t}, err
	}},
	NoteTag: {CatInline, 1, func(a []any) (Element, error) {
		b, err := blocksArg(a[0])
		return &Note{b}, err
	}},
	SpanTag: {CatInline, 2, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[1])
		return &Span{attr, l}, err
	}},

	PlainTag: {CatBlock, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Plain{l}, err
	}},
	ParaTag: {CatBlock, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &Para{l}, err
	}},
	LineBlockTag: {CatBlock, 1, func(a []any) (Element, error) {
		l, err := inlineListsArg(a[0])
		return &LineBlock{l}, err
	}},
	CodeBlockTag: {CatBlock, 2, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		s, err := stringOf(a[1])
		return &CodeBlock{attr, s}, err
	}},
	RawBlockTag: {CatBlock, 2, func(a []any) (Element, error) {
		f, err := stringOf(a[0])
		if err != nil {
			return nil, err
		}
		s, err := stringOf(a[1])
		return &RawBlock{f, s}, err
	}},
	BlockQuoteTag: {CatBlock, 1, func(a []any) (Element, error) {
		b, err := blocksArg(a[0])
		return &BlockQuote{b}, err
	}},
	OrderedListTag: {CatBlock, 2, func(a []any) (Element, error) {
		la, err := listAttrsArg(a[0])
		if err != nil {
			return nil, err
		}
		items, err := blockListsArg(a[1])
		return &OrderedList{la, items}, err
	}},
	BulletListTag: {CatBlock, 1, func(a []any) (Element, error) {
		items, err := blockListsArg(a[0])
		return &BulletList{items}, err
	}},
	DefinitionListTag: {CatBlock, 1, func(a []any) (Element, error) {
		items, ok := a[0].([]Definition)
		if !ok {
			return nil, errors.Errorf("expected []Definition, got %T", a[0])
		}
		return &DefinitionList{items}, nil
	}},
	HeaderTag: {CatBlock, 3, func(a []any) (Element, error) {
		lvl, err := intOf(a[0])
		if err != nil {
			return nil, err
		}
		attr, err := attrArg(a[1])
		if err != nil {
			return nil, err
		}
		l, err := inlinesArg(a[2])
		return &Header{attr, lvl, l}, err
	}},
	HorizontalRuleTag: {CatBlock, 0, func([]any) (Element, error) { return HR, nil }},
	TableTag: {CatBlock, 6, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		caption, ok := a[1].(Caption)
		if !ok {
			return nil, errors.Errorf("expected Caption, got %T", a[1])
		}
		aligns, ok := a[2].([]ColSpec)
		if !ok {
			return nil, errors.Errorf("expected []ColSpec, got %T", a[2])
		}
		head, ok := a[3].(TableHeadFoot)
		if !ok {
			return nil, errors.Errorf("expected TableHeadFoot, got %T", a[3])
		}
		bodies, ok := a[4].([]*TableBody)
		if !ok {
			return nil, errors.Errorf("expected []*TableBody, got %T", a[4])
		}
		foot, ok := a[5].(TableHeadFoot)
		if !ok {
			return nil, errors.Errorf("expected TableHeadFoot, got %T", a[5])
		}
		return &Table{attr, caption, aligns, head, bodies, foot}, nil
	}},
	FigureTag: {CatBlock, 3, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		caption, ok := a[1].(Caption)
		if !ok {
			return nil, errors.Errorf("expected Caption, got %T", a[1])
		}
		b, err := blocksArg(a[2])
		return &Figure{attr, caption, b}, err
	}},
	DivTag: {CatBlock, 2, func(a []any) (Element, error) {
		attr, err := attrArg(a[0])
		if err != nil {
			return nil, err
		}
		b, err := blocksArg(a[1])
		return &Div{attr, b}, err
	}},

	MetaBoolTag: {CatMeta, 1, func(a []any) (Element, error) {
		return MetaBool(boolOf(a[0])), nil
	}},
	MetaStringTag: {CatMeta, 1, func(a []any) (Element, error) {
		s, err := stringOf(a[0])
		return MetaString(s), err
	}},
	MetaMapTag: {CatMeta, 1, func(a []any) (Element, error) {
		m, err := metaArg(a[0])
		return &MetaMap{m}, err
	}},
	MetaListTag: {CatMeta, 1, func(a []any) (Element, error) {
		l, err := metaValuesArg(a[0])
		return &MetaList{l}, err
	}},
	MetaInlinesTag: {CatMeta, 1, func(a []any) (Element, error) {
		l, err := inlinesArg(a[0])
		return &MetaInlines{l}, err
	}},
	MetaBlocksTag: {CatMeta, 1, func(a []any) (Element, error) {
		b, err := blocksArg(a[0])
		return &MetaBlocks{b}, err
	}},
}

// ----------- scalar coercion -------------
//
// Constructor arguments and decoded metadata may hold scalars without an
// intrinsic type ("3" where a level is meant, 0.5 as json.Number). These
// helpers settle them into the slot types.

func stringOf(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case MetaString:
		return string(v), nil
	case Tag:
		return string(v), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", errors.Errorf("expected string, got %T", v)
	}
}

func intOf(v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
		f, err := v.Float64()
		return int(f), err
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.Errorf("expected integer, got %q", v)
		}
		return int(f), nil
	default:
		return 0, errors.Errorf("expected integer, got %T", v)
	}
}

func floatOf(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.Errorf("expected number, got %q", v)
		}
		return f, nil
	default:
		return 0, errors.Errorf("expected number, got %T", v)
	}
}

// boolOf coerces a loosely typed value into a boolean. False spellings
// are the empty and zero values and the literal false token in either
// case; every other non-empty value is true.
func boolOf(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case MetaBool:
		return bool(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case string:
		if v == "" || v == "0" || strings.EqualFold(v, "false") {
			return false
		}
		return true
	default:
		return true
	}
}

// ----------- composite argument coercion -------------

func inlinesArg(v any) ([]Inline, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []Inline:
		return v, nil
	case []any:
		l := make([]Inline, 0, len(v))
		for _, item := range v {
			i, ok := item.(Inline)
			if !ok {
				return nil, errors.Errorf("expected inline element, got %T", item)
			}
			l = append(l, i)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected inline list, got %T", v)
	}
}

func blocksArg(v any) ([]Block, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []Block:
		return v, nil
	case []any:
		l := make([]Block, 0, len(v))
		for _, item := range v {
			b, ok := item.(Block)
			if !ok {
				return nil, errors.Errorf("expected block element, got %T", item)
			}
			l = append(l, b)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected block list, got %T", v)
	}
}

func metaValuesArg(v any) ([]MetaValue, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []MetaValue:
		return v, nil
	case []any:
		l := make([]MetaValue, 0, len(v))
		for _, item := range v {
			m, ok := item.(MetaValue)
			if !ok {
				return nil, errors.Errorf("expected meta value, got %T", item)
			}
			l = append(l, m)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected meta value list, got %T", v)
	}
}

func metaArg(v any) (Meta, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case Meta:
		return v, nil
	case []MetaMapEntry:
		return Meta(v), nil
	case *MetaMap:
		return v.Entries, nil
	case map[string]MetaValue:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(Meta, 0, len(keys))
		for _, k := range keys {
			m = append(m, MetaMapEntry{k, v[k]})
		}
		return m, nil
	default:
		return nil, errors.Errorf("expected metadata mapping, got %T", v)
	}
}

func inlineListsArg(v any) ([][]Inline, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case [][]Inline:
		return v, nil
	case []any:
		l := make([][]Inline, 0, len(v))
		for _, item := range v {
			line, err := inlinesArg(item)
			if err != nil {
				return nil, err
			}
			l = append(l, line)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected list of inline lists, got %T", v)
	}
}

func blockListsArg(v any) ([][]Block, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case [][]Block:
		return v, nil
	case []any:
		l := make([][]Block, 0, len(v))
		for _, item := range v {
			blocks, err := blocksArg(item)
			if err != nil {
				return nil, err
			}
			l = append(l, blocks)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected list of block lists, got %T", v)
	}
}

func attrArg(v any) (Attr, error) {
	switch v := v.(type) {
	case nil:
		return Attr{}, nil
	case Attr:
		return v, nil
	case *Attr:
		return *v, nil
	default:
		return Attr{}, errors.Errorf("expected attributes, got %T", v)
	}
}

func targetArg(v any) (Target, error) {
	switch v := v.(type) {
	case Target:
		return v, nil
	case *Target:
		return *v, nil
	case string:
		return Target{Url: v}, nil
	case []string:
		switch len(v) {
		case 1:
			return Target{Url: v[0]}, nil
		case 2:
			return Target{Url: v[0], Title: v[1]}, nil
		}
		return Target{}, &ArityError{Name: "Target", Want: 2, Got: len(v)}
	default:
		return Target{}, errors.Errorf("expected target, got %T", v)
	}
}

func citationsArg(v any) ([]*Citation, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []*Citation:
		return v, nil
	case []any:
		l := make([]*Citation, 0, len(v))
		for _, item := range v {
			c, ok := item.(*Citation)
			if !ok {
				return nil, errors.Errorf("expected citation, got %T", item)
			}
			l = append(l, c)
		}
		return l, nil
	default:
		return nil, errors.Errorf("expected citation list, got %T", v)
	}
}

func listAttrsArg(v any) (ListAttrs, error) {
	switch v := v.(type) {
	case nil:
		return ListAttrs{Start: 1, Style: DefaultStyle, Delimiter: DefaultDelim}, nil
	case ListAttrs:
		return v, nil
	case *ListAttrs:
		return *v, nil
	default:
		return ListAttrs{}, errors.Errorf("expected list attributes, got %T", v)
	}
}

func tagOf[T ~string](v any, allowed ...T) (T, error) {
	s, err := stringOf(v)
	if err != nil {
		if t, ok := v.(T); ok {
			s, err = string(t), nil
		} else {
			return "", err
		}
	}
	for _, t := range allowed {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.Errorf("expected one of %v, got %q", allowed, s)
}
