package pandoc

import "strings"

// NewAttr builds an attribute set from an ordered list of key/value
// arguments (key, value, key, value, ...). Two keys are reserved:
//
//   - "id" sets the identifier; any scalar value is accepted.
//   - "class" (alias "classes") contributes classes. The value may be a
//     whitespace-separated string, a []string, or an arbitrarily nested
//     sequence of those; it is flattened and split on whitespace, empty
//     tokens are dropped, and the resulting classes keep caller order.
//     Repeated class keys concatenate rather than replace.
//
// Every other key becomes an ordered key/value pair, duplicates included.
// An odd number of arguments is an ArityError.
func NewAttr(args ...any) (Attr, error) {
	if len(args)%2 != 0 {
		return Attr{}, &ArityError{Name: "NewAttr", Want: len(args) + 1, Got: len(args)}
	}
	var a Attr
	for i := 0; i+1 < len(args); i += 2 {
		key, err := stringOf(args[i])
		if err != nil {
			return Attr{}, err
		}
		switch key {
		case "id":
			id, err := stringOf(args[i+1])
			if err != nil {
				return Attr{}, err
			}
			a.Id = id
		case "class", "classes":
			a.Classes = appendClasses(a.Classes, args[i+1])
		default:
			val, err := stringOf(args[i+1])
			if err != nil {
				return Attr{}, err
			}
			a.KVs = append(a.KVs, KV{key, val})
		}
	}
	return a, nil
}

// appendClasses flattens a class specification (string, []string, or a
// nested []any of those) into whitespace-split tokens.
func appendClasses(dst []string, v any) []string {
	switch v := v.(type) {
	case nil:
		return dst
	case string:
		return append(dst, strings.Fields(v)...)
	case []string:
		for _, s := range v {
			dst = append(dst, strings.Fields(s)...)
		}
		return dst
	case []any:
		for _, item := range v {
			dst = appendClasses(dst, item)
		}
		return dst
	default:
		if s, err := stringOf(v); err == nil {
			return append(dst, strings.Fields(s)...)
		}
		return dst
	}
}

// Ident returns the element identifier.
func (a *Attr) Ident() string { return a.Id }

// SetIdent sets the element identifier in place.
func (a *Attr) SetIdent(id string) { a.Id = id }

// HasClass reports whether the class list contains c.
func (a *Attr) HasClass(c string) bool {
	for _, cl := range a.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// HasOneOfClasses reports whether the class list contains any of c.
func (a *Attr) HasOneOfClasses(c ...string) bool {
	for _, cl := range a.Classes {
		for _, want := range c {
			if cl == want {
				return true
			}
		}
	}
	return false
}

// Get returns the first value of the given key, or false if the key is
// not present.
func (a *Attr) Get(key string) (string, bool) {
	for _, kv := range a.KVs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// GetAll returns every value stored under the given key, in order. The
// pair list is a multi-map, so there may be more than one.
func (a *Attr) GetAll(key string) []string {
	var vals []string
	for _, kv := range a.KVs {
		if kv.Key == key {
			vals = append(vals, kv.Value)
		}
	}
	return vals
}

// Add appends a key/value pair, keeping any existing pairs with the same
// key.
func (a *Attr) Add(key, value string) {
	a.KVs = append(a.KVs, KV{key, value})
}

// KeyValues returns a copy of the ordered pair list.
func (a *Attr) KeyValues() []KV {
	return append([]KV(nil), a.KVs...)
}

// SetKeyValues replaces the pair list wholesale, preserving the order of
// the given pairs.
func (a *Attr) SetKeyValues(kvs ...KV) {
	a.KVs = append(a.KVs[:0:0], kvs...)
}

// IsEmpty reports whether the attribute set carries no information.
func (a *Attr) IsEmpty() bool {
	return a.Id == "" && len(a.Classes) == 0 && len(a.KVs) == 0
}

// WithIdent returns a copy of the attributes with the given identifier.
func (a Attr) WithIdent(id string) Attr {
	a.Id = id
	return a
}

// WithClass returns a copy of the attributes with the given class added
// unless already present.
func (a Attr) WithClass(c string) Attr {
	if !a.HasClass(c) {
		a.Classes = append(append([]string(nil), a.Classes...), c)
	}
	return a
}

// WithoutClass returns a copy of the attributes without the given class.
func (a Attr) WithoutClass(c string) Attr {
	for i, cl := range a.Classes {
		if cl == c {
			a.Classes = append(append([]string(nil), a.Classes[:i]...), a.Classes[i+1:]...)
			return a
		}
	}
	return a
}

// WithKV returns a copy of the attributes with the first pair under key
// set to value, appending a new pair if the key is absent.
func (a Attr) WithKV(key, value string) Attr {
	kvs := append([]KV(nil), a.KVs...)
	for i := range kvs {
		if kvs[i].Key == key {
			kvs[i].Value = value
			a.KVs = kvs
			return a
		}
	}
	a.KVs = append(kvs, KV{key, value})
	return a
}

// WithoutKey returns a copy of the attributes without any pair under key.
func (a Attr) WithoutKey(key string) Attr {
	kvs := make([]KV, 0, len(a.KVs))
	for _, kv := range a.KVs {
		if kv.Key != key {
			kvs = append(kvs, kv)
		}
	}
	a.KVs = kvs
	return a
}
