package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSequenceToken(t *testing.T) {
	token := EncodeSequenceToken("box-1", 42)
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "+", "Token must be safe in a query string")
	assert.NotContains(t, token, "/", "Token must be safe in a query string")

	seq, err := DecodeSequenceToken(token, "box-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
}

func TestDecodeSequenceTokenErrors(t *testing.T) {
	_, err := DecodeSequenceToken("this is not base64!", "box-1")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeSequenceToken(EncodeMultiFieldToken("box-1"), "box-1")
	assert.Error(t, err, "Should return an error for a missing field")
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeSequenceToken(EncodeSequenceToken("box-2", 3), "box-1")
	assert.Error(t, err, "A token from another box must be rejected")

	_, err = DecodeSequenceToken(EncodeMultiFieldToken("box-1", "abc"), "box-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")

	_, err = DecodeSequenceToken(EncodeMultiFieldToken("box-1", "0"), "box-1")
	assert.Error(t, err, "Sequence numbers start at 1")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"2026-03-14", "txn-1", "CASH_DEPOSIT"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)

	decoded, err = DecodeMultiFieldToken(EncodeMultiFieldToken())
	require.NoError(t, err)
	assert.Equal(t, []string{""}, decoded, "An empty token decodes to one empty field")
}
