package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventFields(t *testing.T) {
	f := Event{
		Operation:  OperationEncode,
		Category:   CategoryOverflow,
		Schema:     "bm_rbr_data",
		Size:       100,
		ExtraBytes: 57,
	}.Fields()

	assert.Equal(t, Fields{
		"op":          "ENCODE",
		"category":    "OVERFLOW",
		"schema":      "bm_rbr_data",
		"size":        100,
		"extra_bytes": 57,
	}, f)
}

func TestEventFieldsError(t *testing.T) {
	f := Event{
		Operation: OperationDecode,
		Category:  CategoryError,
		Error:     &ErrorEventData{Kind: "MALFORMED_INPUT", Message: "unexpected EOF"},
	}.Fields()

	assert.Equal(t, "MALFORMED_INPUT", f["error_kind"])
	assert.Equal(t, "unexpected EOF", f["error_msg"])
	assert.NotContains(t, f, "error_context")
	assert.NotContains(t, f, "size")
}
