package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSerializationFailed indicates the value could not be encoded.
	// Writes carrying this error must not reach the store.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrDeserializationFailed indicates the envelope could not be
	// reconstructed (corrupted bytes or unknown discriminant).
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// envelope is the JSON wire form. Exactly one payload field is set,
// selected by Kind.
// The record field must not carry omitempty: an empty record is a legal
// payload and would otherwise vanish from the wire form.
type envelope struct {
	Kind   Kind   `json:"kind"`
	Table  *Table `json:"table,omitempty"`
	Array  *Array `json:"array,omitempty"`
	Record Record `json:"record"`
}

// binEnvelope is the gob wire form, used when JSON cannot represent the
// payload (non-finite floats) and for all opaque values.
type binEnvelope struct {
	Kind   Kind
	Table  *Table
	Array  *Array
	Record Record
	Opaque any
}

// Encode serializes a value into an envelope byte payload.
// Tables, arrays and records take the JSON fast path when representable;
// everything else (and any non-finite numeric payload) is gob-encoded.
func Encode(value any) ([]byte, error) {
	switch x := value.(type) {
	case *Table:
		if x == nil {
			return nil, fmt.Errorf("%w: nil table", ErrSerializationFailed)
		}
		if x.finite() {
			return encodeJSON(envelope{Kind: KindTable, Table: x})
		}
		return encodeGob(binEnvelope{Kind: KindTable, Table: x})
	case Table:
		return Encode(&x)
	case *Array:
		if x == nil {
			return nil, fmt.Errorf("%w: nil array", ErrSerializationFailed)
		}
		if x.finite() {
			return encodeJSON(envelope{Kind: KindArray, Array: x})
		}
		return encodeGob(binEnvelope{Kind: KindArray, Array: x})
	case Array:
		return Encode(&x)
	case Record:
		data, err := json.Marshal(envelope{Kind: KindRecord, Record: x})
		if err == nil {
			return data, nil
		}
		// Non-finite floats or other JSON-hostile values inside.
		return encodeGob(binEnvelope{Kind: KindRecord, Record: x})
	case map[string]any:
		return Encode(Record(x))
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrSerializationFailed)
	default:
		return encodeGob(binEnvelope{Kind: KindOpaque, Opaque: value})
	}
}

// Decode reconstructs a value from an envelope byte payload.
// Returns *Table, *Array, Record, or the registered opaque value.
func Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDeserializationFailed)
	}

	// JSON fast path.
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		if v, err := env.value(); err == nil {
			return v, nil
		}
	}

	// Binary fallback; both wire forms share the store's byte space.
	var bin binEnvelope
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&bin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserializationFailed, err)
	}
	return bin.value()
}

func (e envelope) value() (any, error) {
	switch e.Kind {
	case KindTable:
		if e.Table != nil {
			return e.Table, nil
		}
	case KindArray:
		if e.Array != nil {
			return e.Array, nil
		}
	case KindRecord:
		// An empty record arrives with a null payload field; absent is
		// still a record, just an empty one.
		if e.Record == nil {
			return Record{}, nil
		}
		return e.Record, nil
	}
	return nil, fmt.Errorf("%w: envelope kind %q with no payload", ErrDeserializationFailed, e.Kind)
}

func (e binEnvelope) value() (any, error) {
	switch e.Kind {
	case KindTable:
		if e.Table != nil {
			return e.Table, nil
		}
	case KindArray:
		if e.Array != nil {
			return e.Array, nil
		}
	case KindRecord:
		// gob drops zero-length maps from the stream entirely.
		if e.Record == nil {
			return Record{}, nil
		}
		return e.Record, nil
	case KindOpaque:
		if e.Opaque != nil {
			return e.Opaque, nil
		}
	}
	return nil, fmt.Errorf("%w: envelope kind %q with no payload", ErrDeserializationFailed, e.Kind)
}

func encodeJSON(env envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

func encodeGob(env binEnvelope) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return buf.Bytes(), nil
}
