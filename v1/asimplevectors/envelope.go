package asimplevectors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// All knowledge about the server's inconsistent response shapes lives in
// this file. Every function here is pure.

const (
	resultOkKey    = "Ok"
	snapshotPrefix = "snapshot-"
)

// unwrapResult returns the value stored under key in a result envelope such
// as {"Ok": {...}}. Any other shape, including {"Err": ...}, is an
// *EnvelopeError carrying the raw body.
func unwrapResult(body []byte, key string) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return nil, &EnvelopeError{Field: key, Expected: "a JSON object result envelope", Body: body}
	}
	value, ok := envelope[key]
	if !ok {
		keys := make([]string, 0, len(envelope))
		for k := range envelope {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, &EnvelopeError{
			Field:    key,
			Expected: fmt.Sprintf("key %q in result envelope, got %v", key, keys),
			Body:     body,
		}
	}
	return value, nil
}

// flattenVectors turns the nested listing shape
//
//	{"vectors":[{"id":1,"data":{"data":[0.1,0.2]},"metadata":{...}}],"total_count":1}
//
// into a VectorList whose vectors carry the inner float array directly.
func flattenVectors(body []byte) (*VectorList, error) {
	var wire struct {
		Vectors    *[]json.RawMessage `json:"vectors"`
		TotalCount *int               `json:"total_count"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &EnvelopeError{Field: "vectors", Expected: "a JSON object", Body: body}
	}
	if wire.Vectors == nil {
		return nil, &EnvelopeError{Field: "vectors", Expected: "an array of vectors", Body: body}
	}

	list := &VectorList{Vectors: make([]Vector, 0, len(*wire.Vectors))}
	for i, raw := range *wire.Vectors {
		v, err := flattenVector(raw, fmt.Sprintf("vectors[%d]", i))
		if err != nil {
			err.Body = body
			return nil, err
		}
		list.Vectors = append(list.Vectors, v)
	}

	if wire.TotalCount != nil {
		list.TotalCount = *wire.TotalCount
	} else {
		list.TotalCount = len(list.Vectors)
	}
	return list, nil
}

func flattenVector(raw json.RawMessage, field string) (Vector, *EnvelopeError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Vector{}, &EnvelopeError{Field: field, Expected: "an object"}
	}

	var v Vector
	id, ok := fields["id"]
	if !ok || json.Unmarshal(id, &v.ID) != nil {
		return Vector{}, &EnvelopeError{Field: field + ".id", Expected: "an integer"}
	}

	outer, ok := fields["data"]
	if !ok {
		return Vector{}, &EnvelopeError{Field: field + ".data", Expected: "an object"}
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(outer, &wrapper); err != nil || wrapper == nil {
		return Vector{}, &EnvelopeError{Field: field + ".data", Expected: "an object"}
	}
	inner, ok := wrapper["data"]
	if !ok || isNull(inner) || json.Unmarshal(inner, &v.Data) != nil {
		return Vector{}, &EnvelopeError{Field: field + ".data.data", Expected: "an array of numbers"}
	}

	if md, ok := fields["metadata"]; ok && !isNull(md) {
		if err := json.Unmarshal(md, &v.Metadata); err != nil {
			return Vector{}, &EnvelopeError{Field: field + ".metadata", Expected: "an object"}
		}
	}
	if doc, ok := fields["doc"]; ok && !isNull(doc) {
		if err := json.Unmarshal(doc, &v.Doc); err != nil {
			return Vector{}, &EnvelopeError{Field: field + ".doc", Expected: "a string"}
		}
	}
	if tokens, ok := fields["doc_tokens"]; ok && !isNull(tokens) {
		if err := json.Unmarshal(tokens, &v.DocTokens); err != nil {
			return Vector{}, &EnvelopeError{Field: field + ".doc_tokens", Expected: "an array of strings"}
		}
	}
	return v, nil
}

// decodeKeyValue extracts a stored value. Servers answer with either
// {"text": "..."} or {"value": "..."}; non-string values are returned as
// their JSON text.
func decodeKeyValue(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return "", &EnvelopeError{Field: "text", Expected: "a JSON object", Body: body}
	}
	for _, key := range []string{"text", "value"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
		return string(bytes.TrimSpace(raw)), nil
	}
	return "", &EnvelopeError{Field: "text", Expected: `"text" or "value" key`, Body: body}
}

// ParseSnapshotDate extracts the date token from a snapshot file name:
// "snapshot-20240115.zip" yields "20240115". The token is the second
// "-"-separated segment with everything from the first "." removed.
func ParseSnapshotDate(fileName string) (string, error) {
	if !strings.HasPrefix(fileName, snapshotPrefix) {
		return "", &EnvelopeError{Field: "file_name", Expected: fmt.Sprintf("%q prefix in %q", snapshotPrefix, fileName)}
	}
	segment := strings.Split(fileName, "-")[1]
	date, _, _ := strings.Cut(segment, ".")
	if date == "" {
		return "", &EnvelopeError{Field: "file_name", Expected: fmt.Sprintf("a date token in %q", fileName)}
	}
	return date, nil
}

// normalizeSnapshots decodes a snapshot listing. Both {"snapshots":[...]}
// and a bare array are accepted, and a descriptor's date comes from its
// "date" field when present or is derived from its file name.
func normalizeSnapshots(body []byte) ([]Snapshot, error) {
	var wire []Snapshot
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &wire); err != nil {
			return nil, &EnvelopeError{Field: "snapshots", Expected: "an array of snapshot descriptors", Body: body}
		}
	} else {
		var envelope struct {
			Snapshots *[]Snapshot `json:"snapshots"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Snapshots == nil {
			return nil, &EnvelopeError{Field: "snapshots", Expected: "an array of snapshot descriptors", Body: body}
		}
		wire = *envelope.Snapshots
	}

	for i := range wire {
		if wire[i].Date != "" {
			continue
		}
		date, err := ParseSnapshotDate(wire[i].FileName)
		if err != nil {
			ee := err.(*EnvelopeError)
			ee.Field = fmt.Sprintf("snapshots[%d].file_name", i)
			ee.Body = body
			return nil, ee
		}
		wire[i].Date = date
	}
	return wire, nil
}

// decodeInto unmarshals a flat response body into v.
func decodeInto(body []byte, v interface{}, field, expected string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &EnvelopeError{Field: field, Expected: expected, Body: body}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
