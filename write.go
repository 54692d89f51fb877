package pandoc

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// encoder writes the wire form of a tree for one target api version. All
// object keys are emitted in sorted order ("c" before "t", document keys
// "blocks", "meta", "pandoc-api-version") so equal trees always encode to
// equal bytes.
type encoder struct {
	w   io.Writer
	api Version
}

// Write writes the JSON encoding of elt to w, targeting the preferred
// api version if one is configured and the newest supported one
// otherwise. Documents additionally honor their declared version; use
// (*Doc).WriteTo for those.
func Write(w io.Writer, elt Element) error {
	var declared Version
	if d, ok := elt.(*Doc); ok {
		declared = d.version
	}
	e := &encoder{w: w, api: effectiveVersion(declared)}
	return e.element(elt)
}

func (e *encoder) element(elt Element) error {
	switch elt := elt.(type) {
	case *Doc:
		return e.doc(elt)
	case Inline:
		return e.inline(elt)
	case Block:
		return e.block(elt)
	case MetaValue:
		return e.metaValue(elt)
	default:
		return errors.Errorf("cannot encode %T", elt)
	}
}

// ----------- primitives -------------

func (e *encoder) delim(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

func (e *encoder) raw(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) quote(s string) error {
	_, err := e.w.Write(appendQuote(nil, s))
	return err
}

func (e *encoder) key(name string) error {
	if _, err := e.w.Write(appendQuote(nil, name)); err != nil {
		return err
	}
	return e.delim(':')
}

func (e *encoder) num(n int) error {
	_, err := e.w.Write(strconv.AppendInt(nil, int64(n), 10))
	return err
}

func (e *encoder) float(f float64) error {
	_, err := e.w.Write(appendFloat(nil, f))
	return err
}

// tagged writes {"c":<content>,"t":"<tag>"}.
func (e *encoder) tagged(tag Tag, content func() error) error {
	if err := e.raw(`{"c":`); err != nil {
		return err
	}
	if err := content(); err != nil {
		return err
	}
	if err := e.raw(`,"t":`); err != nil {
		return err
	}
	if err := e.quote(string(tag)); err != nil {
		return err
	}
	return e.delim('}')
}

// bare writes the payload-free form {"t":"<tag>"}.
func (e *encoder) bare(tag Tag) error {
	if err := e.raw(`{"t":`); err != nil {
		return err
	}
	if err := e.quote(string(tag)); err != nil {
		return err
	}
	return e.delim('}')
}

func (e *encoder) tuple(parts ...func() error) error {
	if err := e.delim('['); err != nil {
		return err
	}
	for i, part := range parts {
		if i > 0 {
			if err := e.delim(','); err != nil {
				return err
			}
		}
		if err := part(); err != nil {
			return err
		}
	}
	return e.delim(']')
}

func encodeList[T any](e *encoder, l []T, item func(T) error) error {
	if err := e.delim('['); err != nil {
		return err
	}
	for i := range l {
		if i > 0 {
			if err := e.delim(','); err != nil {
				return err
			}
		}
		if err := item(l[i]); err != nil {
			return err
		}
	}
	return e.delim(']')
}

func (e *encoder) strList(l []string) error {
	return encodeList(e, l, e.quote)
}

// ----------- document -------------

func (e *encoder) doc(d *Doc) error {
	if !e.api.AtLeast(v117) {
		// pandoc < 1.17 array form
		return e.tuple(
			func() error {
				if err := e.delim('{'); err != nil {
					return err
				}
				if err := e.key("unMeta"); err != nil {
					return err
				}
				if err := e.meta(d.Meta); err != nil {
					return err
				}
				return e.delim('}')
			},
			func() error { return e.blocks(d.Blocks) },
		)
	}
	if err := e.raw(`{"blocks":`); err != nil {
		return err
	}
	if err := e.blocks(d.Blocks); err != nil {
		return err
	}
	if err := e.raw(`,"meta":`); err != nil {
		return err
	}
	if err := e.meta(d.Meta); err != nil {
		return err
	}
	if err := e.raw(`,"pandoc-api-version":`); err != nil {
		return err
	}
	if err := encodeList(e, e.api, e.num); err != nil {
		return err
	}
	return e.delim('}')
}

// ----------- attributes -------------

func (e *encoder) attr(a *Attr) error {
	return e.tuple(
		func() error { return e.quote(a.Id) },
		func() error { return e.strList(a.Classes) },
		func() error {
			return encodeList(e, a.KVs, func(kv KV) error {
				return e.tuple(
					func() error { return e.quote(kv.Key) },
					func() error { return e.quote(kv.Value) },
				)
			})
		},
	)
}

func (e *encoder) target(t Target) error {
	return e.tuple(
		func() error { return e.quote(t.Url) },
		func() error { return e.quote(t.Title) },
	)
}

// ----------- inlines -------------

func (e *encoder) inlines(l []Inline) error {
	return encodeList(e, l, e.inline)
}

func (e *encoder) inlineLists(l [][]Inline) error {
	return encodeList(e, l, e.inlines)
}

func (e *encoder) inline(i Inline) error {
	switch i := i.(type) {
	case *Str:
		return e.tagged(StrTag, func() error { return e.quote(i.Text) })
	case *Emph:
		return e.tagged(EmphTag, func() error { return e.inlines(i.Inlines) })
	case *Underline:
		return e.tagged(UnderlineTag, func() error { return e.inlines(i.Inlines) })
	case *Strong:
		return e.tagged(StrongTag, func() error { return e.inlines(i.Inlines) })
	case *Strikeout:
		return e.tagged(StrikeoutTag, func() error { return e.inlines(i.Inlines) })
	case *Superscript:
		return e.tagged(SuperscriptTag, func() error { return e.inlines(i.Inlines) })
	case *Subscript:
		return e.tagged(SubscriptTag, func() error { return e.inlines(i.Inlines) })
	case *SmallCaps:
		return e.tagged(SmallCapsTag, func() error { return e.inlines(i.Inlines) })
	case *Quoted:
		return e.tagged(QuotedTag, func() error {
			return e.tuple(
				func() error { return e.bare(Tag(i.QuoteType)) },
				func() error { return e.inlines(i.Inlines) },
			)
		})
	case *Cite:
		return e.tagged(CiteTag, func() error {
			return e.tuple(
				func() error { return encodeList(e, i.Citations, e.citation) },
				func() error { return e.inlines(i.Inlines) },
			)
		})
	case *Code:
		return e.tagged(CodeTag, func() error {
			return e.tuple(
				func() error { return e.attr(&i.Attr) },
				func() error { return e.quote(i.Text) },
			)
		})
	case *Space:
		return e.bare(SpaceTag)
	case *SoftBreak:
		if !e.api.AtLeast(v116) {
			Logger.Debugf("pandoc: writing SoftBreak as Space for api %s", e.api)
			return e.bare(SpaceTag)
		}
		return e.bare(SoftBreakTag)
	case *LineBreak:
		return e.bare(LineBreakTag)
	case *Math:
		return e.tagged(MathTag, func() error {
			return e.tuple(
				func() error { return e.bare(Tag(i.MathType)) },
				func() error { return e.quote(i.Text) },
			)
		})
	case *RawInline:
		return e.tagged(RawInlineTag, func() error {
			return e.tuple(
				func() error { return e.quote(i.Format) },
				func() error { return e.quote(i.Text) },
			)
		})
	case *Link:
		return e.linkish(LinkTag, &i.Attr, i.Inlines, i.Target)
	case *Image:
		return e.linkish(ImageTag, &i.Attr, i.Inlines, i.Target)
	case *Note:
		return e.tagged(NoteTag, func() error { return e.blocks(i.Blocks) })
	case *Span:
		return e.tagged(SpanTag, func() error {
			return e.tuple(
				func() error { return e.attr(&i.Attr) },
				func() error { return e.inlines(i.Inlines) },
			)
		})
	default:
		return errors.Errorf("cannot encode %T as inline", i)
	}
}

// linkish writes a Link or Image, dropping the attribute slot below api
// 1.16 where the payload was a 2-tuple.
func (e *encoder) linkish(tag Tag, attr *Attr, l []Inline, t Target) error {
	if !e.api.AtLeast(v116) {
		if !attr.IsEmpty() {
			Logger.Debugf("pandoc: dropping %s attributes for api %s", tag, e.api)
		}
		return e.tagged(tag, func() error {
			return e.tuple(
				func() error { return e.inlines(l) },
				func() error { return e.target(t) },
			)
		})
	}
	return e.tagged(tag, func() error {
		return e.tuple(
			func() error { return e.attr(attr) },
			func() error { return e.inlines(l) },
			func() error { return e.target(t) },
		)
	})
}

// citation keys are written in alphabetical order.
func (e *encoder) citation(c *Citation) error {
	if err := e.raw(`{"citationHash":`); err != nil {
		return err
	}
	if err := e.num(c.Hash); err != nil {
		return err
	}
	if err := e.raw(`,"citationId":`); err != nil {
		return err
	}
	if err := e.quote(c.Id); err != nil {
		return err
	}
	if err := e.raw(`,"citationMode":`); err != nil {
		return err
	}
	if err := e.bare(Tag(c.Mode)); err != nil {
		return err
	}
	if err := e.raw(`,"citationNoteNum":`); err != nil {
		return err
	}
	if err := e.num(c.NoteNum); err != nil {
		return err
	}
	if err := e.raw(`,"citationPrefix":`); err != nil {
		return err
	}
	if err := e.inlines(c.Prefix); err != nil {
		return err
	}
	if err := e.raw(`,"citationSuffix":`); err != nil {
		return err
	}
	if err := e.inlines(c.Suffix); err != nil {
		return err
	}
	return e.delim('}')
}

// ----------- blocks -------------

func (e *encoder) blocks(l []Block) error {
	return encodeList(e, l, e.block)
}

func (e *encoder) blockLists(l [][]Block) error {
	return encodeList(e, l, e.blocks)
}

func (e *encoder) block(b Block) error {
	switch b := b.(type) {
	case *Plain:
		return e.tagged(PlainTag, func() error { return e.inlines(b.Inlines) })
	case *Para:
		return e.tagged(ParaTag, func() error { return e.inlines(b.Inlines) })
	case *LineBlock:
		return e.lineBlock(b)
	case *CodeBlock:
		return e.tagged(CodeBlockTag, func() error {
			return e.tuple(
				func() error { return e.attr(&b.Attr) },
				func() error { return e.quote(b.Text) },
			)
		})
	case *RawBlock:
		return e.tagged(RawBlockTag, func() error {
			return e.tuple(
				func() error { return e.quote(b.Format) },
				func() error { return e.quote(b.Text) },
			)
		})
	case *BlockQuote:
		return e.tagged(BlockQuoteTag, func() error { return e.blocks(b.Blocks) })
	case *OrderedList:
		return e.tagged(OrderedListTag, func() error {
			return e.tuple(
				func() error { return e.listAttrs(b.Attrs) },
				func() error { return e.blockLists(b.Items) },
			)
		})
	case *BulletList:
		return e.tagged(BulletListTag, func() error { return e.blockLists(b.Items) })
	case *DefinitionList:
		return e.tagged(DefinitionListTag, func() error {
			return encodeList(e, b.Items, func(d Definition) error {
				return e.tuple(
					func() error { return e.inlines(d.Term) },
					func() error { return e.blockLists(d.Definition) },
				)
			})
		})
	case *HorizontalRule:
		return e.bare(HorizontalRuleTag)
	case *Header:
		return e.tagged(HeaderTag, func() error {
			return e.tuple(
				func() error { return e.num(b.Level) },
				func() error { return e.attr(&b.Attr) },
				func() error { return e.inlines(b.Inlines) },
			)
		})
	case *Table:
		return e.table(b)
	case *Figure:
		return e.tagged(FigureTag, func() error {
			return e.tuple(
				func() error { return e.attr(&b.Attr) },
				func() error { return e.caption(b.Caption) },
				func() error { return e.blocks(b.Blocks) },
			)
		})
	case *Div:
		return e.tagged(DivTag, func() error {
			return e.tuple(
				func() error { return e.attr(&b.Attr) },
				func() error { return e.blocks(b.Blocks) },
			)
		})
	default:
		return errors.Errorf("cannot encode %T as block", b)
	}
}

// lineBlock writes a LineBlock. Leading line spaces become no-break
// spaces at any target; below api 1.18, where the element does not
// exist, the lines collapse into a single Para joined by LineBreak.
func (e *encoder) lineBlock(b *LineBlock) error {
	lines := make([][]Inline, len(b.Inlines))
	for i, line := range b.Inlines {
		lines[i] = hardenLine(line)
	}
	if e.api.AtLeast(v118) {
		return e.tagged(LineBlockTag, func() error { return e.inlineLists(lines) })
	}
	Logger.Debugf("pandoc: writing LineBlock as Para for api %s", e.api)
	var joined []Inline
	for i, line := range lines {
		if i > 0 {
			joined = append(joined, LB)
		}
		joined = append(joined, line...)
	}
	return e.tagged(ParaTag, func() error { return e.inlines(joined) })
}

// hardenLine rewrites the leading run of literal spaces of one line into
// no-break spaces, merging them into the first Str.
func hardenLine(line []Inline) []Inline {
	leading := 0
	for leading < len(line) {
		if _, ok := line[leading].(*Space); !ok {
			break
		}
		leading++
	}
	rest := line[leading:]
	pad := 0
	var text string
	if len(rest) > 0 {
		if s, ok := rest[0].(*Str); ok {
			text = strings.TrimLeft(s.Text, " ")
			pad = len(s.Text) - len(text)
		}
	}
	if leading == 0 && pad == 0 {
		return line
	}
	nbsp := strings.Repeat(" ", leading+pad)
	if pad > 0 {
		out := make([]Inline, 0, len(rest))
		out = append(out, &Str{nbsp + text})
		return append(out, rest[1:]...)
	}
	if len(rest) > 0 {
		if s, ok := rest[0].(*Str); ok {
			out := make([]Inline, 0, len(rest))
			out = append(out, &Str{nbsp + s.Text})
			return append(out, rest[1:]...)
		}
	}
	out := make([]Inline, 0, len(rest)+1)
	out = append(out, &Str{nbsp})
	return append(out, rest...)
}

func (e *encoder) listAttrs(a ListAttrs) error {
	return e.tuple(
		func() error { return e.num(a.Start) },
		func() error { return e.bare(Tag(a.Style)) },
		func() error { return e.bare(Tag(a.Delimiter)) },
	)
}

// ----------- tables -------------

func (e *encoder) table(t *Table) error {
	return e.tagged(TableTag, func() error {
		return e.tuple(
			func() error { return e.attr(&t.Attr) },
			func() error { return e.caption(t.Caption) },
			func() error { return encodeList(e, t.Aligns, e.colSpec) },
			func() error { return e.headFoot(&t.Head) },
			func() error { return encodeList(e, t.Bodies, e.tableBody) },
			func() error { return e.headFoot(&t.Foot) },
		)
	})
}

func (e *encoder) caption(c Caption) error {
	return e.tuple(
		func() error {
			if c.Short == nil {
				return e.raw("null")
			}
			return e.inlines(c.Short)
		},
		func() error { return e.blocks(c.Long) },
	)
}

func (e *encoder) colSpec(c ColSpec) error {
	return e.tuple(
		func() error { return e.bare(Tag(c.Align)) },
		func() error {
			if c.Width.Default {
				return e.bare(Tag(colWidthDefaultTag))
			}
			return e.tagged(Tag(colWidthTag), func() error { return e.float(c.Width.Width) })
		},
	)
}

func (e *encoder) headFoot(hf *TableHeadFoot) error {
	return e.tuple(
		func() error { return e.attr(&hf.Attr) },
		func() error { return encodeList(e, hf.Rows, e.tableRow) },
	)
}

func (e *encoder) tableRow(r *TableRow) error {
	return e.tuple(
		func() error { return e.attr(&r.Attr) },
		func() error { return encodeList(e, r.Cells, e.tableCell) },
	)
}

func (e *encoder) tableCell(c *TableCell) error {
	return e.tuple(
		func() error { return e.attr(&c.Attr) },
		func() error { return e.bare(Tag(c.Align)) },
		func() error { return e.num(c.RowSpan) },
		func() error { return e.num(c.ColSpan) },
		func() error { return e.blocks(c.Blocks) },
	)
}

func (e *encoder) tableBody(b *TableBody) error {
	return e.tuple(
		func() error { return e.attr(&b.Attr) },
		func() error { return e.num(b.RowHeadColumns) },
		func() error { return encodeList(e, b.Head, e.tableRow) },
		func() error { return encodeList(e, b.Body, e.tableRow) },
	)
}

// ----------- metadata -------------

// meta writes a metadata mapping with its keys sorted.
func (e *encoder) meta(m Meta) error {
	entries := make([]MetaMapEntry, len(m))
	copy(entries, m)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	if err := e.delim('{'); err != nil {
		return err
	}
	for i, entry := range entries {
		if i > 0 {
			if err := e.delim(','); err != nil {
				return err
			}
		}
		if err := e.key(entry.Key); err != nil {
			return err
		}
		if err := e.metaValue(entry.Value); err != nil {
			return err
		}
	}
	return e.delim('}')
}

func (e *encoder) metaValue(v MetaValue) error {
	switch v := v.(type) {
	case MetaBool:
		return e.tagged(MetaBoolTag, func() error {
			if v {
				return e.raw("true")
			}
			return e.raw("false")
		})
	case MetaString:
		return e.tagged(MetaStringTag, func() error { return e.quote(string(v)) })
	case *MetaMap:
		return e.tagged(MetaMapTag, func() error { return e.meta(v.Entries) })
	case *MetaList:
		return e.tagged(MetaListTag, func() error { return encodeList(e, v.Entries, e.metaValue) })
	case *MetaInlines:
		return e.tagged(MetaInlinesTag, func() error { return e.inlines(v.Inlines) })
	case *MetaBlocks:
		return e.tagged(MetaBlocksTag, func() error { return e.blocks(v.Blocks) })
	default:
		return errors.Errorf("cannot encode %T as metadata", v)
	}
}

// ----------- text -------------

// pandoc uses different exponent cutoffs than strconv.AppendFloat,
// and it also does not pad the exponent to two digits.
func appendFloat(b []byte, f float64) []byte {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(b, "null"...)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if abs < 1e-1 || abs >= 1e21 {
			format = 'e'
		}
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

func appendQuote(b []byte, s string) []byte {
	const escapable = "\"\\\b\f\n\r\t"
	r := 2
	for i := 0; i < len(s); {
		if j := strings.IndexAny(s[i:], escapable); j >= 0 {
			i += j + 1
			r += j + 2
		} else {
			r += len(s) - i
			break
		}
	}
	p := len(b)
	b = append(b, make([]byte, r)...)
	b[p] = '"'
	p++
	for i := 0; i < len(s); {
		if j := strings.IndexAny(s[i:], escapable); j >= 0 {
			copy(b[p:], s[i:i+j])
			p += j
			b[p] = '\\'
			p++
			switch s[i+j] {
			case '"':
				b[p] = '"'
			case '\\':
				b[p] = '\\'
			case '\b':
				b[p] = 'b'
			case '\f':
				b[p] = 'f'
			case '\n':
				b[p] = 'n'
			case '\r':
				b[p] = 'r'
			case '\t':
				b[p] = 't'
			}
			p++
			i += j + 1
		} else {
			copy(b[p:], s[i:])
			p += len(s) - i
			break
		}
	}
	b[p] = '"'
	return b
}
