package pandoc

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// NewDocument builds a document from one of three argument shapes:
//
//  1. a single two-element array value, the legacy wire form
//     [metadataWrapper, blockList], giving api version 1.16;
//  2. a single mapping value with keys "meta", "blocks" and optionally
//     "pandoc-api-version" (alias "api-version" or "api_version"),
//     giving the declared version or 1.17;
//  3. positional metadata and block list, optionally followed by
//     key/value override pairs, most notably the target api version.
//
// Argument shapes matching none of the above fail with
// AmbiguousArgumentsError.
func NewDocument(args ...any) (*Doc, error) {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case []any:
			return docFromValue(v)
		case map[string]any:
			return docFromMapping(v)
		}
		return nil, &AmbiguousArgumentsError{Got: len(args)}
	case 0:
		return nil, &AmbiguousArgumentsError{Got: 0}
	}

	if len(args)%2 != 0 {
		return nil, &AmbiguousArgumentsError{Got: len(args)}
	}
	meta, err := metaFromAny(args[0])
	if err != nil {
		return nil, err
	}
	blocks, err := blocksFromAny(args[1])
	if err != nil {
		return nil, err
	}
	d := &Doc{Meta: meta, Blocks: blocks, version: v117}
	for i := 2; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, &AmbiguousArgumentsError{Got: len(args)}
		}
		if err := d.applyOverride(key, args[i+1]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func docFromMapping(m map[string]any) (*Doc, error) {
	d := &Doc{version: v117}
	for key, v := range m {
		var err error
		switch key {
		case "meta":
			d.Meta, err = metaFromAny(v)
		case "blocks":
			d.Blocks, err = blocksFromAny(v)
		case "pandoc-api-version", "api-version", "api_version":
			err = d.applyOverride(key, v)
		default:
			err = errors.Errorf("unknown document field %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Doc) applyOverride(key string, v any) error {
	switch key {
	case "pandoc-api-version", "api-version", "api_version":
		version, err := versionValue(v)
		if err != nil {
			return err
		}
		return d.SetAPIVersion(version)
	case "pandoc-version", "pandoc_version":
		release, err := versionValue(v)
		if err != nil {
			return err
		}
		api, err := RequiredAPIVersion(release)
		if err != nil {
			return err
		}
		return d.SetAPIVersion(api)
	default:
		return errors.Errorf("unknown document override %q", key)
	}
}

func versionValue(v any) (Version, error) {
	switch v := v.(type) {
	case Version:
		return v, nil
	case []int:
		return Version(v), nil
	case string:
		return ParseVersion(v)
	case []any:
		return versionFromValue(v)
	default:
		return nil, errors.Errorf("expected version, got %T", v)
	}
}

// metaFromAny settles a metadata argument: already-typed values pass
// through, raw mapping values decode like wire metadata, mixed mappings
// may hold a typed value per key.
func metaFromAny(v any) (Meta, error) {
	if raw, ok := v.(map[string]any); ok {
		typed := make(map[string]MetaValue, len(raw))
		for k, item := range raw {
			mv, ok := item.(MetaValue)
			if !ok {
				var err error
				if mv, err = metaValueFromValue(item); err != nil {
					return nil, err
				}
			}
			typed[k] = mv
		}
		return metaArg(typed)
	}
	return metaArg(v)
}

func blocksFromAny(v any) ([]Block, error) {
	if raw, ok := v.([]any); ok {
		blocks := make([]Block, 0, len(raw))
		for _, item := range raw {
			b, ok := item.(Block)
			if !ok {
				var err error
				if b, err = blockFromValue(item); err != nil {
					return nil, err
				}
			}
			blocks = append(blocks, b)
		}
		return blocks, nil
	}
	return blocksArg(v)
}

// WriteTo writes the JSON encoding of the document to w, targeting the
// preferred api version if one is configured and the declared version of
// the document otherwise.
func (d *Doc) WriteTo(w io.Writer) error {
	e := &encoder{w: w, api: effectiveVersion(d.version)}
	return e.doc(d)
}

// Encode returns the JSON encoding of the document. The encoding is
// deterministic: structurally equal documents encode to equal bytes.
func (d *Doc) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
