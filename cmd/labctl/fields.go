package main

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/saturnines/labclient/pkg/transport/rest"
)

// projection selects dotted field paths, e.g. "namespace.full_path", from
// the JSON form of an item. An empty projection keeps the whole item.
type projection []string

func parseFields(list string) projection {
	var p projection
	for _, field := range strings.Split(list, ",") {
		if field = strings.TrimSpace(field); field != "" {
			p = append(p, field)
		}
	}
	return p
}

func (p projection) apply(item any) (any, error) {
	if len(p) == 0 {
		return item, nil
	}

	data, err := rest.EncodeBody(item)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(p))
	for _, path := range p {
		// missing fields are emitted as null so every line has the same keys
		value, _ := lookupField(doc, path)
		out[path] = value
	}
	return out, nil
}

func lookupField(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		fields, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = fields[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
