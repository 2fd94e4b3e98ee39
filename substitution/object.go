package substitution

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// FromObject builds a Map from the exported fields of obj. The
// value goes through JSON encoding, so json struct tags rename
// fields. Keys are lower-cased. Nested objects are flattened
// with "." separators, arrays keep their JSON text, and null
// becomes the empty string.
func FromObject(obj any) (Map, error) {
	const errCtx = "extracting substitutions"

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := decodeFlat(raw, strings.ToLower)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// FromJSON builds a Map from a JSON object like FromObject,
// but keeps keys exactly as written.
func FromJSON(raw []byte) (Map, error) {
	const errCtx = "decoding substitutions"

	out, err := decodeFlat(raw, func(s string) string { return s })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

func decodeFlat(raw []byte, keyFn func(string) string) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("value is not an object: %w", err)
	}

	out := make(Map, len(fields))
	if err := flatten(out, "", fields, keyFn); err != nil {
		return nil, err
	}

	return out, nil
}

func flatten(
	out Map,
	prefix string,
	fields map[string]any,
	keyFn func(string) string,
) error {
	for key, val := range fields {
		name := keyFn(key)
		if prefix != "" {
			name = prefix + "." + name
		}

		switch tv := val.(type) {
		case map[string]any:
			if err := flatten(out, name, tv, keyFn); err != nil {
				return err
			}
		case string:
			out[name] = tv
		case json.Number:
			out[name] = tv.String()
		case bool:
			out[name] = fmt.Sprint(tv)
		case nil:
			out[name] = ""
		default:
			by, err := json.Marshal(tv)
			if err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}

			out[name] = string(by)
		}
	}

	return nil
}
