package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/saturnines/labclient/pkg/errors"
)

// EncodeBody serializes v as JSON, dropping every object member whose value is null.
func EncodeBody(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrValidation, fmt.Sprintf("cannot encode %T as JSON", v))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, errors.WrapError(err, errors.ErrValidation, "cannot re-read encoded body")
	}

	out, err := json.Marshal(omitNulls(generic))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrValidation, "cannot encode body")
	}
	return out, nil
}

// omitNulls removes null members from objects, at any depth. Array elements
// are kept in place so positions stay meaningful.
func omitNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = omitNulls(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = omitNulls(child)
		}
		return t
	default:
		return v
	}
}

// DecodeBody reads r to the end and decodes it into out.
func DecodeBody(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &errors.DecodeError{Target: targetName(out), Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &errors.DecodeError{Target: targetName(out), Err: err}
	}
	return nil
}

func targetName(out any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", out), "*")
}

// errorPayload is the body GitLab sends with non-2xx statuses. message is a
// string most of the time and an object of field errors on validation failures.
type errorPayload struct {
	Message          json.RawMessage `json:"message"`
	Error            json.RawMessage `json:"error"`
	ErrorDescription json.RawMessage `json:"error_description"`
}

// decodeRemoteError maps an error response body to a RemoteError.
func decodeRemoteError(statusCode int, body []byte) *errors.RemoteError {
	remote := &errors.RemoteError{StatusCode: statusCode}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		remote.Message = payload.text()
	}
	if remote.Message == "" {
		remote.Message = fmt.Sprintf("empty or malformed error response (status %d)", statusCode)
	}
	return remote
}

func (p errorPayload) text() string {
	if msg := renderMessage(p.Message); msg != "" {
		return msg
	}
	if msg := renderMessage(p.ErrorDescription); msg != "" {
		return msg
	}
	return renderMessage(p.Error)
}

func renderMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	// {"name":["has already been taken"],"path":["is invalid"]}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err == nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+" "+renderValue(fields[k]))
		}
		return strings.Join(parts, "; ")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}

func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, renderValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
