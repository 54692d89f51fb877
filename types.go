// Package pandoc implements the [Pandoc] document AST as defined in
// [Pandoc Types], together with the version compatibility layer that maps
// between api revisions of the wire format, a JSON codec, and a generic
// selector-driven tree walker.
//
// [Pandoc]: https://pandoc.org/
// [Pandoc Types]: https://hackage.haskell.org/package/pandoc-types
package pandoc

// Pandoc AST object tag.
type Tag string

func (t Tag) String() string { return string(t) }

// Element is any node of the pandoc AST, including the document root.
// Every element belongs to exactly one of the four categories: block,
// inline, metadata value, or document.
type Element interface {
	Tag() Tag
	element()
}

// Inline element.
type Inline interface {
	Element
	inline()
}

// Block element.
type Block interface {
	Element
	block()
}

// Document metadata value.
type MetaValue interface {
	Element
	meta()
}

// WithAttr is implemented by every element that owns an attribute set.
type WithAttr interface {
	Element
	Attributes() *Attr
}

// Reports whether an element is of a particular type.
//
// Example:
//
//	if pandoc.Is[pandoc.Str](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// IsBlock reports whether the element belongs to the block category.
func IsBlock(e Element) bool { _, ok := e.(Block); return ok }

// IsInline reports whether the element belongs to the inline category.
func IsInline(e Element) bool { _, ok := e.(Inline); return ok }

// IsMeta reports whether the element is a metadata value.
func IsMeta(e Element) bool { _, ok := e.(MetaValue); return ok }

// IsDocument reports whether the element is the document root.
func IsDocument(e Element) bool { _, ok := e.(*Doc); return ok }

const DocumentTag = Tag("Document")

// Doc is the document root: ordered metadata, block list, and the declared
// pandoc api version. The in-memory tree always has the newest shape; the
// declared version only matters when encoding.
type Doc struct {
	Meta   Meta
	Blocks []Block

	version Version
}

func (d *Doc) Tag() Tag { return DocumentTag }
func (d *Doc) element() {}

// APIVersion returns the declared pandoc api version of the document.
func (d *Doc) APIVersion() Version { return d.version }

// SetAPIVersion declares the api version of the document. Versions below
// the supported floor are rejected with UnsupportedVersionError; versions
// lacking a minor component are rejected with ArityError.
func (d *Doc) SetAPIVersion(v Version) error {
	if len(v) < 2 {
		return &ArityError{Name: "pandoc-api-version", Want: 2, Got: len(v)}
	}
	if v.Compare(MinAPIVersion) < 0 {
		return &UnsupportedVersionError{Version: v}
	}
	d.version = v
	return nil
}

// MetaMapEntry is one key/value pair of a metadata mapping.
type MetaMapEntry struct {
	Key   string
	Value MetaValue
}

// Meta is an ordered metadata mapping.
type Meta []MetaMapEntry

// Get returns the value of the given key or nil if the key is not present.
func (m Meta) Get(key string) MetaValue {
	for _, e := range m {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Set sets a value for the given key. A nil value removes the key.
func (m *Meta) Set(key string, value MetaValue) {
	for i, e := range *m {
		if e.Key == key {
			if value == nil {
				*m = append((*m)[:i], (*m)[i+1:]...)
			} else {
				(*m)[i].Value = value
			}
			return
		}
	}
	if value != nil {
		*m = append(*m, MetaMapEntry{key, value})
	}
}

// SetBool sets a boolean value for the given key.
func (m *Meta) SetBool(key string, value bool) { m.Set(key, MetaBool(value)) }

// SetString sets a string value for the given key.
func (m *Meta) SetString(key string, value string) { m.Set(key, MetaString(value)) }

// SetInlines sets a list of inlines for the given key.
func (m *Meta) SetInlines(key string, value ...Inline) { m.Set(key, &MetaInlines{value}) }

// SetBlocks sets a list of blocks for the given key.
func (m *Meta) SetBlocks(key string, value ...Block) { m.Set(key, &MetaBlocks{value}) }

// Metadata mapping value
type MetaMap struct {
	Entries Meta
}

const MetaMapTag = Tag("MetaMap")

func (m *MetaMap) Tag() Tag { return MetaMapTag }
func (m *MetaMap) element() {}
func (m *MetaMap) meta()    {}

// Get returns the value of the given key or nil if the key is not present.
func (m *MetaMap) Get(key string) MetaValue { return m.Entries.Get(key) }

// Set sets a value for the given key. A nil value removes the key.
func (m *MetaMap) Set(key string, value MetaValue) { m.Entries.Set(key, value) }

// Metadata list value
type MetaList struct {
	Entries []MetaValue
}

const MetaListTag = Tag("MetaList")

func (m *MetaList) Tag() Tag { return MetaListTag }
func (m *MetaList) element() {}
func (m *MetaList) meta()    {}

// Metadata inline sequence
type MetaInlines struct {
	Inlines []Inline
}

const MetaInlinesTag = Tag("MetaInlines")

func (m *MetaInlines) Tag() Tag { return MetaInlinesTag }
func (m *MetaInlines) element() {}
func (m *MetaInlines) meta()    {}

// Metadata block sequence
type MetaBlocks struct {
	Blocks []Block
}

const MetaBlocksTag = Tag("MetaBlocks")

func (m *MetaBlocks) Tag() Tag { return MetaBlocksTag }
func (m *MetaBlocks) element() {}
func (m *MetaBlocks) meta()    {}

// Metadata boolean
type MetaBool bool

const MetaBoolTag = Tag("MetaBool")

func (MetaBool) Tag() Tag { return MetaBoolTag }
func (MetaBool) element() {}
func (MetaBool) meta()    {}

// Metadata string
type MetaString string

const MetaStringTag = Tag("MetaString")

func (MetaString) Tag() Tag         { return MetaStringTag }
func (MetaString) element()         {}
func (MetaString) meta()            {}
func (s MetaString) String() string { return string(s) }

// KV is one key/value pair of an attribute set. Keys may repeat.
type KV struct {
	Key   string
	Value string
}

// Attr is the ordered attribute set owned by some elements: identifier,
// class list, and key/value pairs. Classes and keys may repeat; insertion
// order is preserved everywhere.
type Attr struct {
	Id      string
	Classes []string
	KVs     []KV
}

// Attributes returns the attribute set itself; embedding Attr therefore
// makes an element implement WithAttr.
func (a *Attr) Attributes() *Attr { return a }

// ----------- inlines -------------

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) inline()  {}
func (s *Str) element() {}

// Emphasized text (list of inlines)
type Emph struct {
	Inlines []Inline
}

const EmphTag = Tag("Emph")

func (e *Emph) Tag() Tag { return EmphTag }
func (e *Emph) inline()  {}
func (e *Emph) element() {}

// Underlined text (list of inlines)
type Underline struct {
	Inlines []Inline
}

const UnderlineTag = Tag("Underline")

func (u *Underline) Tag() Tag { return UnderlineTag }
func (u *Underline) inline()  {}
func (u *Underline) element() {}

// Strongly emphasized text (list of inlines)
type Strong struct {
	Inlines []Inline
}

const StrongTag = Tag("Strong")

func (s *Strong) Tag() Tag { return StrongTag }
func (s *Strong) inline()  {}
func (s *Strong) element() {}

// Strikeout text (list of inlines)
type Strikeout struct {
	Inlines []Inline
}

const StrikeoutTag = Tag("Strikeout")

func (s *Strikeout) Tag() Tag { return StrikeoutTag }
func (s *Strikeout) inline()  {}
func (s *Strikeout) element() {}

// Superscripted text (list of inlines)
type Superscript struct {
	Inlines []Inline
}

const SuperscriptTag = Tag("Superscript")

func (s *Superscript) Tag() Tag { return SuperscriptTag }
func (s *Superscript) inline()  {}
func (s *Superscript) element() {}

// Subscripted text (list of inlines)
type Subscript struct {
	Inlines []Inline
}

const SubscriptTag = Tag("Subscript")

func (s *Subscript) Tag() Tag { return SubscriptTag }
func (s *Subscript) inline()  {}
func (s *Subscript) element() {}

// Small capitals (list of inlines)
type SmallCaps struct {
	Inlines []Inline
}

const SmallCapsTag = Tag("SmallCaps")

func (s *SmallCaps) Tag() Tag { return SmallCapsTag }
func (s *SmallCaps) inline()  {}
func (s *SmallCaps) element() {}

type QuoteType Tag

const (
	SingleQuote QuoteType = "SingleQuote"
	DoubleQuote QuoteType = "DoubleQuote"
)

// Quoted text (quote type and a list of inlines)
type Quoted struct {
	QuoteType QuoteType
	Inlines   []Inline
}

const QuotedTag = Tag("Quoted")

func (q *Quoted) Tag() Tag { return QuotedTag }
func (q *Quoted) inline()  {}
func (q *Quoted) element() {}

type CitationMode Tag

const (
	NormalCitation CitationMode = "NormalCitation"
	SuppressAuthor CitationMode = "SuppressAuthor"
	AuthorInText   CitationMode = "AuthorInText"
)

// Citation is the owned payload of a Cite inline. It has no independent
// identity in the tree.
type Citation struct {
	Id      string
	Prefix  []Inline
	Suffix  []Inline
	Mode    CitationMode
	NoteNum int
	Hash    int
}

// NewCitation returns a citation with the documented defaults: id
// "missing", empty prefix and suffix, normal mode, note number 0, hash 1.
func NewCitation() *Citation {
	return &Citation{Id: "missing", Mode: NormalCitation, Hash: 1}
}

// Citation group (list of citations and a list of inlines)
type Cite struct {
	Citations []*Citation
	Inlines   []Inline
}

const CiteTag = Tag("Cite")

func (c *Cite) Tag() Tag { return CiteTag }
func (c *Cite) inline()  {}
func (c *Cite) element() {}

// Inline code (literal)
type Code struct {
	Attr
	Text string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) inline()  {}
func (c *Code) element() {}

var SP = &Space{}

// Inter-word space
type Space struct{}

const SpaceTag = Tag("Space")

func (*Space) Tag() Tag { return SpaceTag }
func (*Space) inline()  {}
func (*Space) element() {}

var SB = &SoftBreak{}

// Soft line break
type SoftBreak struct{}

const SoftBreakTag = Tag("SoftBreak")

func (*SoftBreak) Tag() Tag { return SoftBreakTag }
func (*SoftBreak) inline()  {}
func (*SoftBreak) element() {}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag { return LineBreakTag }
func (*LineBreak) inline()  {}
func (*LineBreak) element() {}

type MathType Tag

const (
	DisplayMath MathType = "DisplayMath"
	InlineMath  MathType = "InlineMath"
)

// TeX math (literal)
type Math struct {
	MathType MathType
	Text     string
}

const MathTag = Tag("Math")

func (m *Math) Tag() Tag { return MathTag }
func (m *Math) inline()  {}
func (m *Math) element() {}

// Raw inline
type RawInline struct {
	Format string
	Text   string
}

const RawInlineTag = Tag("RawInline")

func (r *RawInline) Tag() Tag { return RawInlineTag }
func (r *RawInline) inline()  {}
func (r *RawInline) element() {}

// Target of a link or image.
type Target struct {
	Url   string
	Title string
}

// Hyperlink: attributes, alt text (list of inlines), target
type Link struct {
	Attr
	Inlines []Inline
	Target  Target
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag { return LinkTag }
func (l *Link) inline()  {}
func (l *Link) element() {}

// Image: attributes, alt text (list of inlines), target
type Image struct {
	Attr
	Inlines []Inline
	Target  Target
}

const ImageTag = Tag("Image")

func (i *Image) Tag() Tag { return ImageTag }
func (i *Image) inline()  {}
func (i *Image) element() {}

// Footnote or endnote (list of blocks)
type Note struct {
	Blocks []Block
}

const NoteTag = Tag("Note")

func (n *Note) Tag() Tag { return NoteTag }
func (n *Note) inline()  {}
func (n *Note) element() {}

// Generic inline container with attributes
type Span struct {
	Attr
	Inlines []Inline
}

const SpanTag = Tag("Span")

func (s *Span) Tag() Tag { return SpanTag }
func (s *Span) inline()  {}
func (s *Span) element() {}

// ----------- blocks -------------

// Plain text, not a paragraph
type Plain struct {
	Inlines []Inline
}

const PlainTag = Tag("Plain")

func (p *Plain) Tag() Tag { return PlainTag }
func (p *Plain) block()   {}
func (p *Plain) element() {}

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag { return ParaTag }
func (p *Para) block()   {}
func (p *Para) element() {}

// Multiple non-breaking lines
type LineBlock struct {
	Inlines [][]Inline
}

const LineBlockTag = Tag("LineBlock")

func (b *LineBlock) Tag() Tag { return LineBlockTag }
func (b *LineBlock) block()   {}
func (b *LineBlock) element() {}

// Code block (literal)
type CodeBlock struct {
	Attr
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

// Raw block
type RawBlock struct {
	Format string
	Text   string
}

const RawBlockTag = Tag("RawBlock")

func (b *RawBlock) Tag() Tag { return RawBlockTag }
func (b *RawBlock) block()   {}
func (b *RawBlock) element() {}

// Block quote (list of blocks)
type BlockQuote struct {
	Blocks []Block
}

const BlockQuoteTag = Tag("BlockQuote")

func (b *BlockQuote) Tag() Tag { return BlockQuoteTag }
func (b *BlockQuote) block()   {}
func (b *BlockQuote) element() {}

type ListNumberStyle Tag

const (
	DefaultStyle ListNumberStyle = "DefaultStyle"
	Example      ListNumberStyle = "Example"
	Decimal      ListNumberStyle = "Decimal"
	LowerRoman   ListNumberStyle = "LowerRoman"
	UpperRoman   ListNumberStyle = "UpperRoman"
	LowerAlpha   ListNumberStyle = "LowerAlpha"
	UpperAlpha   ListNumberStyle = "UpperAlpha"
)

type ListNumberDelim Tag

const (
	DefaultDelim ListNumberDelim = "DefaultDelim"
	Period       ListNumberDelim = "Period"
	OneParen     ListNumberDelim = "OneParen"
	TwoParens    ListNumberDelim = "TwoParens"
)

type ListAttrs struct {
	Start     int
	Style     ListNumberStyle
	Delimiter ListNumberDelim
}

// Ordered list (attributes and a list of items, each a list of blocks)
type OrderedList struct {
	Attrs ListAttrs
	Items [][]Block
}

const OrderedListTag = Tag("OrderedList")

func (l *OrderedList) Tag() Tag { return OrderedListTag }
func (l *OrderedList) block()   {}
func (l *OrderedList) element() {}

// Bullet list (list of items, each a list of blocks)
type BulletList struct {
	Items [][]Block
}

const BulletListTag = Tag("BulletList")

func (l *BulletList) Tag() Tag { return BulletListTag }
func (l *BulletList) block()   {}
func (l *BulletList) element() {}

type Definition struct {
	Term       []Inline
	Definition [][]Block
}

// Definition list (list of items, each a pair of inlines and a list of blocks)
type DefinitionList struct {
	Items []Definition
}

const DefinitionListTag = Tag("DefinitionList")

func (d *DefinitionList) Tag() Tag { return DefinitionListTag }
func (d *DefinitionList) block()   {}
func (d *DefinitionList) element() {}

var HR = &HorizontalRule{}

// Horizontal rule
type HorizontalRule struct{}

const HorizontalRuleTag = Tag("HorizontalRule")

func (*HorizontalRule) Tag() Tag { return HorizontalRuleTag }
func (*HorizontalRule) block()   {}
func (*HorizontalRule) element() {}

// Header - level (integer), attributes and text (inlines)
type Header struct {
	Attr
	Level   int
	Inlines []Inline
}

const HeaderTag = Tag("Header")

func (h *Header) Tag() Tag { return HeaderTag }
func (h *Header) block()   {}
func (h *Header) element() {}

type Caption struct {
	Short []Inline // nil encodes as null
	Long  []Block
}

type Alignment Tag

const (
	AlignLeft    Alignment = "AlignLeft"
	AlignRight   Alignment = "AlignRight"
	AlignCenter  Alignment = "AlignCenter"
	AlignDefault Alignment = "AlignDefault"
)

type ColWidth struct {
	Width   float64
	Default bool
}

const (
	colWidthTag        = "ColWidth"
	colWidthDefaultTag = "ColWidthDefault"
)

func DefaultColWidth() ColWidth { return ColWidth{Default: true} }

type ColSpec struct {
	Align Alignment
	Width ColWidth
}

type TableHeadFoot struct {
	Attr
	Rows []*TableRow
}

type TableRow struct {
	Attr
	Cells []*TableCell
}

type TableCell struct {
	Attr
	Align   Alignment
	RowSpan int
	ColSpan int
	Blocks  []Block
}

type TableBody struct {
	Attr
	RowHeadColumns int
	Head           []*TableRow
	Body           []*TableRow
}

// Table, with attributes, caption, column alignments and widths, table
// head, table bodies, and table foot
type Table struct {
	Attr
	Caption Caption
	Aligns  []ColSpec
	Head    TableHeadFoot
	Bodies  []*TableBody
	Foot    TableHeadFoot
}

const TableTag = Tag("Table")

func (t *Table) Tag() Tag { return TableTag }
func (t *Table) block()   {}
func (t *Table) element() {}

// Figure, with attributes, caption, and content (list of blocks)
type Figure struct {
	Attr
	Caption Caption
	Blocks  []Block
}

const FigureTag = Tag("Figure")

func (f *Figure) Tag() Tag { return FigureTag }
func (f *Figure) block()   {}
func (f *Figure) element() {}

// Generic block container with attributes
type Div struct {
	Attr
	Blocks []Block
}

const DivTag = Tag("Div")

func (d *Div) Tag() Tag { return DivTag }
func (d *Div) block()   {}
func (d *Div) element() {}
