package pandoc

import "strings"

// WalkResult tells Transform what to do with a matched element.
type WalkResult int

const (
	// WalkContinue leaves the element in place.
	WalkContinue WalkResult = iota
	// WalkReplace replaces the element with the returned elements. An
	// empty replacement deletes it, more than one splices siblings in.
	WalkReplace
)

// Walk visits root and every nested element in pre-order, calling fn for
// its side effect. The tree is not rebuilt; mutations made by fn are seen
// by the remaining traversal.
func Walk(root Element, fn func(Element)) {
	fn(root)
	walkChildren(root, fn)
}

func walkInlines(l []Inline, fn func(Element)) {
	for _, e := range l {
		Walk(e, fn)
	}
}

func walkBlocks(l []Block, fn func(Element)) {
	for _, e := range l {
		Walk(e, fn)
	}
}

func walkCaption(c *Caption, fn func(Element)) {
	walkInlines(c.Short, fn)
	walkBlocks(c.Long, fn)
}

func walkRows(rows []*TableRow, fn func(Element)) {
	for _, r := range rows {
		for _, c := range r.Cells {
			walkBlocks(c.Blocks, fn)
		}
	}
}

func walkChildren(e Element, fn func(Element)) {
	switch e := e.(type) {
	case *Doc:
		for _, entry := range e.Meta {
			Walk(entry.Value, fn)
		}
		walkBlocks(e.Blocks, fn)

	// meta
	case *MetaMap:
		for _, entry := range e.Entries {
			Walk(entry.Value, fn)
		}
	case *MetaList:
		for _, v := range e.Entries {
			Walk(v, fn)
		}
	case *MetaInlines:
		walkInlines(e.Inlines, fn)
	case *MetaBlocks:
		walkBlocks(e.Blocks, fn)

	// inlines
	case *Emph:
		walkInlines(e.Inlines, fn)
	case *Underline:
		walkInlines(e.Inlines, fn)
	case *Strong:
		walkInlines(e.Inlines, fn)
	case *Strikeout:
		walkInlines(e.Inlines, fn)
	case *Superscript:
		walkInlines(e.Inlines, fn)
	case *Subscript:
		walkInlines(e.Inlines, fn)
	case *SmallCaps:
		walkInlines(e.Inlines, fn)
	case *Quoted:
		walkInlines(e.Inlines, fn)
	case *Cite:
		for _, c := range e.Citations {
			walkInlines(c.Prefix, fn)
			walkInlines(c.Suffix, fn)
		}
		walkInlines(e.Inlines, fn)
	case *Link:
		walkInlines(e.Inlines, fn)
	case *Image:
		walkInlines(e.Inlines, fn)
	case *Note:
		walkBlocks(e.Blocks, fn)
	case *Span:
		walkInlines(e.Inlines, fn)

	// blocks
	case *Plain:
		walkInlines(e.Inlines, fn)
	case *Para:
		walkInlines(e.Inlines, fn)
	case *LineBlock:
		for _, line := range e.Inlines {
			walkInlines(line, fn)
		}
	case *BlockQuote:
		walkBlocks(e.Blocks, fn)
	case *OrderedList:
		for _, item := range e.Items {
			walkBlocks(item, fn)
		}
	case *BulletList:
		for _, item := range e.Items {
			walkBlocks(item, fn)
		}
	case *DefinitionList:
		for _, item := range e.Items {
			walkInlines(item.Term, fn)
			for _, def := range item.Definition {
				walkBlocks(def, fn)
			}
		}
	case *Header:
		walkInlines(e.Inlines, fn)
	case *Figure:
		walkCaption(&e.Caption, fn)
		walkBlocks(e.Blocks, fn)
	case *Table:
		walkCaption(&e.Caption, fn)
		walkRows(e.Head.Rows, fn)
		for _, b := range e.Bodies {
			walkRows(b.Head, fn)
			walkRows(b.Body, fn)
		}
		walkRows(e.Foot.Rows, fn)
	case *Div:
		walkBlocks(e.Blocks, fn)
	}
}

// QueryRule pairs a selector with a handler producing query results.
type QueryRule[T any] struct {
	Sel *Selector
	Fn  func(Element) []T
}

// Collect builds a QueryRule from a selector literal.
func Collect[T any](selector string, fn func(Element) []T) QueryRule[T] {
	return QueryRule[T]{Sel: MustSelector(selector), Fn: fn}
}

// Query visits every element of the tree in document order (pre-order,
// parents before children) and, for the first rule whose selector matches
// an element, appends the handler's results to the output. A matched
// element's subtree is still visited afterwards.
func Query[T any](root Element, rules ...QueryRule[T]) []T {
	var out []T
	Walk(root, func(e Element) {
		for i := range rules {
			if rules[i].Sel.Matches(e) {
				out = append(out, rules[i].Fn(e)...)
				break
			}
		}
	})
	return out
}

// TransformRule pairs a selector with a rewriting handler. The handler
// returns the replacement elements and WalkReplace, or WalkContinue to
// keep the element.
type TransformRule struct {
	Sel *Selector
	Fn  func(Element) ([]Element, WalkResult)
}

// Rewrite builds a TransformRule from a selector literal.
func Rewrite(selector string, fn func(Element) ([]Element, WalkResult)) TransformRule {
	return TransformRule{Sel: MustSelector(selector), Fn: fn}
}

// Transform rewrites the tree bottom-up: an element's children are
// rewritten before the element itself is tested against the rules, so
// handlers observe already-transformed children. The first matching
// rule's replacement is spliced into the element's slot; replacements
// that do not fit the slot's element type are discarded. The root itself
// can only be replaced one-for-one.
func Transform[E Element](root E, rules ...TransformRule) E {
	transformChildren(root, rules)
	if repl, res := applyRules(root, rules); res == WalkReplace && len(repl) == 1 {
		if v, ok := any(repl[0]).(E); ok {
			return v
		}
	}
	return root
}

func applyRules(e Element, rules []TransformRule) ([]Element, WalkResult) {
	for i := range rules {
		if rules[i].Sel.Matches(e) {
			return rules[i].Fn(e)
		}
	}
	return nil, WalkContinue
}

func transformList[T Element](src []T, rules []TransformRule) []T {
	out := make([]T, 0, len(src))
	for _, item := range src {
		transformChildren(item, rules)
		repl, res := applyRules(item, rules)
		if res != WalkReplace {
			out = append(out, item)
			continue
		}
		for _, r := range repl {
			if v, ok := any(r).(T); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func transformLists[T Element](src [][]T, rules []TransformRule) [][]T {
	for i := range src {
		src[i] = transformList(src[i], rules)
	}
	return src
}

// transformMeta rewrites mapping values in entry order. A mapping slot
// holds exactly one value, so only empty (delete) and one-for-one
// replacements apply.
func transformMeta(m Meta, rules []TransformRule) Meta {
	out := m[:0]
	for _, entry := range m {
		transformChildren(entry.Value, rules)
		repl, res := applyRules(entry.Value, rules)
		if res != WalkReplace {
			out = append(out, entry)
			continue
		}
		if len(repl) == 1 {
			if v, ok := repl[0].(MetaValue); ok {
				entry.Value = v
				out = append(out, entry)
			}
		}
	}
	return out
}

func transformCaption(c *Caption, rules []TransformRule) {
	c.Short = transformList(c.Short, rules)
	c.Long = transformList(c.Long, rules)
}

func transformRows(rows []*TableRow, rules []TransformRule) {
	for _, r := range rows {
		for _, c := range r.Cells {
			c.Blocks = transformList(c.Blocks, rules)
		}
	}
}

func transformChildren(e Element, rules []TransformRule) {
	switch e := e.(type) {
	case *Doc:
		e.Meta = transformMeta(e.Meta, rules)
		e.Blocks = transformList(e.Blocks, rules)

	// meta
	case *MetaMap:
		e.Entries = transformMeta(e.Entries, rules)
	case *MetaList:
		e.Entries = transformList(e.Entries, rules)
	case *MetaInlines:
		e.Inlines = transformList(e.Inlines, rules)
	case *MetaBlocks:
		e.Blocks = transformList(e.Blocks, rules)

	// inlines
	case *Emph:
		e.Inlines = transformList(e.Inlines, rules)
	case *Underline:
		e.Inlines = transformList(e.Inlines, rules)
	case *Strong:
		e.Inlines = transformList(e.Inlines, rules)
	case *Strikeout:
		e.Inlines = transformList(e.Inlines, rules)
	case *Superscript:
		e.Inlines = transformList(e.Inlines, rules)
	case *Subscript:
		e.Inlines = transformList(e.Inlines, rules)
	case *SmallCaps:
		e.Inlines = transformList(e.Inlines, rules)
	case *Quoted:
		e.Inlines = transformList(e.Inlines, rules)
	case *Cite:
		for _, c := range e.Citations {
			c.Prefix = transformList(c.Prefix, rules)
			c.Suffix = transformList(c.Suffix, rules)
		}
		e.Inlines = transformList(e.Inlines, rules)
	case *Link:
		e.Inlines = transformList(e.Inlines, rules)
	case *Image:
		e.Inlines = transformList(e.Inlines, rules)
	case *Note:
		e.Blocks = transformList(e.Blocks, rules)
	case *Span:
		e.Inlines = transformList(e.Inlines, rules)

	// blocks
	case *Plain:
		e.Inlines = transformList(e.Inlines, rules)
	case *Para:
		e.Inlines = transformList(e.Inlines, rules)
	case *LineBlock:
		e.Inlines = transformLists(e.Inlines, rules)
	case *BlockQuote:
		e.Blocks = transformList(e.Blocks, rules)
	case *OrderedList:
		e.Items = transformLists(e.Items, rules)
	case *BulletList:
		e.Items = transformLists(e.Items, rules)
	case *DefinitionList:
		for i := range e.Items {
			e.Items[i].Term = transformList(e.Items[i].Term, rules)
			e.Items[i].Definition = transformLists(e.Items[i].Definition, rules)
		}
	case *Header:
		e.Inlines = transformList(e.Inlines, rules)
	case *Figure:
		transformCaption(&e.Caption, rules)
		e.Blocks = transformList(e.Blocks, rules)
	case *Table:
		transformCaption(&e.Caption, rules)
		transformRows(e.Head.Rows, rules)
		for _, b := range e.Bodies {
			transformRows(b.Head, rules)
			transformRows(b.Body, rules)
		}
		transformRows(e.Foot.Rows, rules)
	case *Div:
		e.Blocks = transformList(e.Blocks, rules)
	}
}

// Stringify concatenates the text of every text-bearing leaf under the
// element: Str, Code, Math and string metadata contribute their literal
// content, spaces and line breaks a single space, everything else
// nothing.
func Stringify(root Element) string {
	var sb strings.Builder
	Walk(root, func(e Element) {
		switch e := e.(type) {
		case *Str:
			sb.WriteString(e.Text)
		case *Code:
			sb.WriteString(e.Text)
		case *Math:
			sb.WriteString(e.Text)
		case MetaString:
			sb.WriteString(string(e))
		case *Space, *SoftBreak, *LineBreak:
			sb.WriteByte(' ')
		}
	})
	return sb.String()
}
