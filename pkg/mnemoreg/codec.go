package mnemoreg

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ToJSON serializes the registry to a JSON object mapping keys to plain
// values: {"a": 1, "b": "x"}. Descriptions are not serialized. A value
// the codec cannot represent fails with an EncodeError.
func (r *Registry[V]) ToJSON() ([]byte, error) {
	return r.encode("json", json.Marshal)
}

// ToYAML serializes the registry to a YAML mapping with the same shape
// as ToJSON.
func (r *Registry[V]) ToYAML() ([]byte, error) {
	return r.encode("yaml", yaml.Marshal)
}

func (r *Registry[V]) encode(format string, marshal func(any) ([]byte, error)) (out []byte, err error) {
	_, span := r.spans.StartCodecSpan(context.Background(), "encode_"+format)
	defer func() { r.spans.EndSpanWithError(span, err) }()

	m, err := r.ToMap()
	if err != nil {
		return nil, err
	}
	out, err = marshal(m)
	if err != nil {
		return nil, &EncodeError{Format: format, Err: err}
	}
	return out, nil
}

// FromJSON creates a new registry from a JSON object produced by ToJSON
// (or any object whose values unmarshal into V). Malformed input fails
// with a DecodeError. Like FromMap, loading bypasses key validation and
// the overwrite policy.
func FromJSON[V any](data []byte, opts ...Option) (*Registry[V], error) {
	var m map[string]V
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &DecodeError{Format: "json", Err: err}
	}
	return FromMap(m, opts...)
}

// FromYAML is FromJSON for YAML input.
func FromYAML[V any](data []byte, opts ...Option) (*Registry[V], error) {
	var m map[string]V
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &DecodeError{Format: "yaml", Err: err}
	}
	return FromMap(m, opts...)
}
