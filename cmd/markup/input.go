package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danderson/markup"
	"github.com/goccy/go-yaml"
)

// decoders maps input format names to functions that decode a
// document into a value the serializer can render.
var decoders = map[string]func([]byte) (any, error){
	"json": decodeJSON,
	"yaml": decodeYAML,
	"toml": decodeTOML,
}

func formatFromName(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// decodeJSON decodes a JSON document. Objects decode to markup.Map so
// that their keys keep document order. Numbers decode to int64 if
// they are integers, float64 otherwise.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			ret := markup.Map{}
			for dec.More() {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				ret = append(ret, markup.KV{Key: k.(string), Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ret, nil
		case '[':
			ret := []any{}
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				ret = append(ret, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ret, nil
		default:
			return nil, fmt.Errorf("unexpected %q", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// decodeYAML decodes a YAML document. Mappings keep document order.
func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// decodeTOML decodes a TOML document. The decoder does not preserve
// key order, so tables render sorted by key.
func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// normalize converts the values produced by the YAML and TOML decoders
// into forms the serializer renders as data.
func normalize(v any) any {
	switch v := v.(type) {
	case yaml.MapSlice:
		ret := make(markup.Map, 0, len(v))
		for _, it := range v {
			ret = append(ret, markup.KV{Key: fmt.Sprint(it.Key), Value: normalize(it.Value)})
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(v))
		for k, e := range v {
			ret[k] = normalize(e)
		}
		return ret
	case []map[string]any:
		ret := make([]any, len(v))
		for i, e := range v {
			ret[i] = normalize(e)
		}
		return ret
	case []any:
		ret := make([]any, len(v))
		for i, e := range v {
			ret[i] = normalize(e)
		}
		return ret
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return v
	}
}
