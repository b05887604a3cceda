package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Tokens travel in query strings, so the URL-safe alphabet is used.
var tokenEncoding = base64.RawURLEncoding

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return tokenEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeSequenceToken creates a cursor pointing just past seq in the log of moneyBoxID.
func EncodeSequenceToken(moneyBoxID string, seq int64) string {
	return EncodeMultiFieldToken(moneyBoxID, strconv.FormatInt(seq, 10))
}

// DecodeSequenceToken parses a cursor made by EncodeSequenceToken. The token must belong
// to moneyBoxID so a cursor from one box cannot page through another.
func DecodeSequenceToken(token, moneyBoxID string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != moneyBoxID {
		return 0, fmt.Errorf("pagination token belongs to another money box")
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse)")
	}
	return seq, nil
}
