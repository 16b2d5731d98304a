package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// CBOR major types.
const (
	majorUint   byte = 0
	majorNint   byte = 1
	majorBytes  byte = 2
	majorText   byte = 3
	majorArray  byte = 4
	majorMap    byte = 5
	majorTag    byte = 6
	majorSimple byte = 7
)

const (
	addInfoUint8      byte = 24
	addInfoUint16     byte = 25
	addInfoUint32     byte = 26
	addInfoUint64     byte = 27
	addInfoIndefinite byte = 31

	headFloat32 byte = 0xfa
	headFloat64 byte = 0xfb
)

func getMajorType(b byte) byte { return b >> 5 }

func getAddInfo(b byte) byte { return b & 0x1f }

func makeByte(major, addInfo byte) byte { return major<<5 | addInfo }

// headSize returns the encoded size of an item head carrying v.
func headSize(v uint64) int {
	switch {
	case v <= 23:
		return 1
	case v <= 0xff:
		return 2
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// appendHead appends the shortest head for major type major and argument v.
func appendHead(dst []byte, major byte, v uint64) []byte {
	switch {
	case v <= 23:
		return append(dst, makeByte(major, byte(v)))
	case v <= 0xff:
		return append(dst, makeByte(major, addInfoUint8), byte(v))
	case v <= 0xffff:
		dst = append(dst, makeByte(major, addInfoUint16))
		return binary.BigEndian.AppendUint16(dst, uint16(v))
	case v <= 0xffffffff:
		dst = append(dst, makeByte(major, addInfoUint32))
		return binary.BigEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, makeByte(major, addInfoUint64))
		return binary.BigEndian.AppendUint64(dst, v)
	}
}

// reservedSimple reports whether v falls in the range that a one-byte
// extended simple value may not carry.
func reservedSimple(v uint64) bool { return v >= 24 && v < 32 }

// appendSimple appends v as a simple value: 0xe0|v below 24, 0xf8 v from 32.
func appendSimple(dst []byte, v uint8) []byte {
	return appendHead(dst, majorSimple, uint64(v))
}

// head is a parsed item head.
type head struct {
	major      byte
	arg        uint64 // length, count or value; raw bits for floats
	size       int    // bytes taken by the head itself
	indefinite bool
}

// readHead parses the item head at the start of b.
func readHead(b []byte) (head, error) {
	if len(b) < 1 {
		return head{}, io.ErrUnexpectedEOF
	}
	h := head{major: getMajorType(b[0]), size: 1}
	ai := getAddInfo(b[0])

	switch {
	case ai < addInfoUint8:
		h.arg = uint64(ai)
	case ai <= addInfoUint64:
		n := 1 << (ai - addInfoUint8)
		if len(b) < 1+n {
			return head{}, io.ErrUnexpectedEOF
		}
		switch n {
		case 1:
			h.arg = uint64(b[1])
		case 2:
			h.arg = uint64(binary.BigEndian.Uint16(b[1:]))
		case 4:
			h.arg = uint64(binary.BigEndian.Uint32(b[1:]))
		case 8:
			h.arg = binary.BigEndian.Uint64(b[1:])
		}
		h.size += n
	case ai == addInfoIndefinite:
		switch h.major {
		case majorBytes, majorText, majorArray, majorMap:
			h.indefinite = true
		default:
			return head{}, fmt.Errorf("indefinite length not allowed for major type %d", h.major)
		}
	default:
		return head{}, fmt.Errorf("reserved additional information %d", ai)
	}
	return h, nil
}

// describe names the item type that starts with b, for error details.
func describe(b byte) string {
	switch getMajorType(b) {
	case majorUint:
		return "unsigned integer"
	case majorNint:
		return "negative integer"
	case majorBytes:
		return "byte string"
	case majorText:
		return "text string"
	case majorArray:
		return "array"
	case majorMap:
		return "map"
	case majorTag:
		return "tag"
	}
	switch b {
	case 0xf4, 0xf5:
		return "boolean"
	case 0xf6:
		return "null"
	case 0xf7:
		return "undefined"
	case 0xf9:
		return "float16"
	case headFloat32:
		return "float32"
	case headFloat64:
		return "float64"
	}
	return "simple value"
}
