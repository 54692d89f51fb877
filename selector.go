package pandoc

import (
	"strings"

	"github.com/pkg/errors"
)

// Selector is a parsed element selector. The textual form is one or more
// alternatives separated by '|'; an element matches the selector if it
// matches any alternative. One alternative is
//
//	[name] [:category] [#id | .class] ...
//
// with whitespace between tokens: an optional case-insensitive tag name,
// an optional category keyword (:document, :block, :inline, :meta) and
// any number of identifier and class constraints, all of which must hold.
// Elements without an attribute set never satisfy a '#' or '.' constraint.
// An empty selector matches every element.
//
// Selectors are parsed once and matched many times; build them up front
// with ParseSelector or MustSelector.
type Selector struct {
	src  string
	alts []selectorAlt
}

type selectorAlt struct {
	name     string
	category Category
	ids      []string
	classes  []string
}

// ParseSelector parses the textual selector form.
func ParseSelector(s string) (*Selector, error) {
	sel := &Selector{src: s}
	for _, part := range strings.Split(s, "|") {
		alt, err := parseAlternative(part)
		if err != nil {
			return nil, errors.Wrapf(err, "selector %q", s)
		}
		sel.alts = append(sel.alts, alt)
	}
	return sel, nil
}

// MustSelector is ParseSelector for static selector literals.
func MustSelector(s string) *Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func parseAlternative(s string) (selectorAlt, error) {
	var alt selectorAlt
	for i, tok := range strings.Fields(s) {
		switch tok[0] {
		case '#':
			if len(tok) == 1 {
				return alt, errors.New("empty identifier constraint")
			}
			alt.ids = append(alt.ids, tok[1:])
		case '.':
			if len(tok) == 1 {
				return alt, errors.New("empty class constraint")
			}
			alt.classes = append(alt.classes, tok[1:])
		case ':':
			if alt.category != 0 {
				return alt, errors.New("more than one category keyword")
			}
			switch strings.ToLower(tok[1:]) {
			case "document":
				alt.category = CatDocument
			case "block":
				alt.category = CatBlock
			case "inline":
				alt.category = CatInline
			case "meta":
				alt.category = CatMeta
			default:
				return alt, errors.Errorf("unknown category keyword %q", tok)
			}
		default:
			if i != 0 {
				return alt, errors.Errorf("tag name %q must come first", tok)
			}
			alt.name = tok
		}
	}
	return alt, nil
}

func (s *Selector) String() string { return s.src }

// Matches reports whether the element satisfies any alternative of the
// selector.
func (s *Selector) Matches(e Element) bool {
	for i := range s.alts {
		if s.alts[i].matches(e) {
			return true
		}
	}
	return false
}

func (a *selectorAlt) matches(e Element) bool {
	if a.name != "" && !strings.EqualFold(a.name, string(e.Tag())) {
		return false
	}
	if a.category != 0 && CategoryOf(e) != a.category {
		return false
	}
	if len(a.ids) == 0 && len(a.classes) == 0 {
		return true
	}
	wa, ok := e.(WithAttr)
	if !ok {
		return false
	}
	attr := wa.Attributes()
	for _, id := range a.ids {
		if attr.Id != id {
			return false
		}
	}
	for _, c := range a.classes {
		if !attr.HasClass(c) {
			return false
		}
	}
	return true
}
