// Package blob provides the BFast encoder and decoder.
//
// # Encoding
//
// An Encoder serializes a value tree into a frame:
//
//	encoder, err := blob.NewEncoder()
//	if err != nil {
//	    return err
//	}
//	data, err := encoder.Encode(value.Record(
//	    value.F("id", value.Int(42)),
//	    value.F("name", value.Text("alice")),
//	), true)
//
// The frame starts with a 6-byte header (magic "BF", flags, version 1, u16 string
// count), followed by the string table of interned record keys and the tagged payload.
// When compression is requested and the frame exceeds 256 bytes, the whole frame is
// compressed (see package compress).
//
// Record keys are interned: each distinct key is stored once in the string table and
// records refer to it by id, assigned in first-seen order.
//
// # Record Batches
//
// A sequence of more than 8 records is encoded against the field layout of its first
// record. Keys are looked up once per batch instead of once per record. Later records
// are projected onto that layout:
//   - a layout field missing from a record is encoded as Null
//   - a field not in the layout is dropped
//
// Batches whose records share the same keys in the same order encode byte-identically to
// the generic path. Disable the batch path with WithBatchFastPath(false) to keep every
// record exactly as given.
//
// # Decoding
//
// A Decoder reads back both compressed and uncompressed frames:
//
//	decoder, err := blob.NewDecoder()
//	if err != nil {
//	    return err
//	}
//	v, err := decoder.Decode(data)
//
// The frame does not record which codec compressed it. Encoder and decoder must agree
// on the codec through WithCompression and WithDecoderCompression; both default to LZ4.
//
// # Limits
//
// Sequences and records nest at most 128 levels by default, on both sides. Record keys
// are at most 255 bytes and a frame holds at most 65535 string table entries.
//
// # Concurrency
//
// An Encoder is not safe for concurrent use; create one per goroutine. A Decoder holds
// no per-call state and can be shared.
package blob
