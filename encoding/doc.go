// Package encoding provides the low-level building blocks of the BFast wire format
// that are shared by the encoder and the decoder.
//
//   - VarStringEncoder / DecodeVarStrings: the u8-length-prefixed strings of the
//     string table that follows the frame header.
//   - NumericRawEncoder / NumericRawDecoder: the raw little-endian float64 blob
//     carried by the NumericArray tag. On little-endian hosts the blob is copied
//     directly between memory and the wire.
//
// Most users should use the blob package or the top-level bfast package instead.
package encoding
