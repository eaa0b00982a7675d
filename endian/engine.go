// Package endian provides the byte order used by the BFast wire format.
//
// BFast is little-endian throughout. The Engine returned by GetLittleEndianEngine
// combines binary.ByteOrder and binary.AppendByteOrder so encoders can append fixed
// width integers without temporary slices:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(len(text)))
//
// IsNativeLittleEndian lets the float64 array path copy memory directly when the
// host layout already matches the wire layout.
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeLittle = checkNativeLittle()

func checkNativeLittle() bool {
	// 0x0100 stores 0x00 first on little-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x00
}

// CheckEndianness returns the host byte order.
func CheckEndianness() binary.ByteOrder {
	if nativeLittle {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian.
func IsNativeLittleEndian() bool {
	return nativeLittle
}

// GetLittleEndianEngine returns the wire engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
