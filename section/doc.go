// Package section defines the fixed-size header that opens every BFast frame.
//
// # Frame Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (6 bytes, fixed)                                  │
//	│  - Magic (2 bytes): "BF"                                 │
//	│  - Flags (1 byte): bit 0 = compressed                    │
//	│  - Version (1 byte): 1                                   │
//	│  - String count (2 bytes, u16 little-endian)             │
//	├──────────────────────────────────────────────────────────┤
//	│ String table: count × (u8 length + UTF-8 bytes)          │
//	├──────────────────────────────────────────────────────────┤
//	│ Payload: one tagged value                                │
//	└──────────────────────────────────────────────────────────┘
//
// The header is written last, once the string table and payload sizes are known, into
// space reserved at the start of the frame. Writes go through bounds-checked
// fixed-offset puts on the frame buffer.
package section
