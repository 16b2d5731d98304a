package inspect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// FormatHex returns a hexdump -C style listing of data.
func FormatHex(data []byte) string {
	if len(data) == 0 {
		return "(empty)\n"
	}
	return hex.Dump(data)
}

// FormatHexCompact returns data as space-separated hex bytes.
func FormatHexCompact(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// ParseHex reads hex bytes, ignoring whitespace and an optional 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// FormatDiag returns the CBOR diagnostic notation of the first item in
// data, noting any bytes that follow it.
func FormatDiag(data []byte) (string, error) {
	diag, rest, err := wire.Diagnose(data)
	if err != nil {
		return "", err
	}
	if len(rest) > 0 {
		diag += fmt.Sprintf("\n(%d trailing bytes)", len(rest))
	}
	return diag, nil
}
