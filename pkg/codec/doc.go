// Package codec serializes cache payloads into store-compatible byte
// envelopes while preserving type identity.
//
// Every supported value is wrapped in an envelope tagged with one of four
// shape discriminants:
//
//   - table:  row/column oriented data with a string index (price frames)
//   - array:  flat numeric data with a dtype tag and shape (weight vectors,
//     covariance matrices)
//   - record: a string-keyed mapping (optimization results, session state)
//   - opaque: anything else, via gob (register the concrete type first)
//
// Encoding prefers JSON so envelopes stay inspectable in the store. Values
// JSON cannot represent losslessly (NaN or Inf cells) fall back to a gob
// envelope transparently; Decode tries JSON first and falls back to gob,
// so both wire forms share the same byte-array address space.
//
// # Basic Usage
//
//	frame := &codec.Table{
//		Columns: []string{"close"},
//		Index:   []string{"2026-08-21"},
//		Cells:   [][]float64{{227.76}},
//	}
//
//	data, err := codec.Encode(frame)
//	if err != nil {
//		return err
//	}
//
//	v, err := codec.Decode(data)
//	if err != nil {
//		// treat as cache miss
//	}
//	frame = v.(*codec.Table)
//
// Decode never panics into the caller: corrupted or unknown envelopes
// return ErrDeserializationFailed, which the store layer folds into a miss.
package codec
