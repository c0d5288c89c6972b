package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

const tokenSeparator = "|"

// EncodeDateBasedToken creates an opaque cursor from the timestamp and ID of
// the last transaction on a page. The next page starts strictly before that
// (timestamp, ID) position; the ID breaks ties between entries sharing a
// timestamp.
func EncodeDateBasedToken(date time.Time, id string) string {
	payload := date.Format(timeFormat) + tokenSeparator + id
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// DecodeDateBasedToken decodes a cursor produced by EncodeDateBasedToken.
func DecodeDateBasedToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	datePart, id, found := strings.Cut(string(decodedBytes), tokenSeparator)
	if !found {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (missing separator)")
	}

	date, err := time.Parse(timeFormat, datePart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, id, nil
}
