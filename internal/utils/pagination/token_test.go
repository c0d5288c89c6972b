package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDateBasedToken(t *testing.T) {
	// Test with a known date
	testDate := time.Date(2024, 11, 3, 9, 15, 0, 0, time.UTC)
	token := EncodeDateBasedToken(testDate, "txn-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, testDate, decodedDate, "Date should match after decode")
	assert.Equal(t, "txn-42", decodedID, "ID should match after decode")

	// Test with current time, including nanosecond precision
	now := time.Now().UTC()
	nowToken := EncodeDateBasedToken(now, "txn-43")

	decodedNow, _, err := DecodeDateBasedToken(nowToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, now.Equal(decodedNow), "Date should match after decode")
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test valid base64 without the separator
	noSeparator := "bm90YWRhdGU=" // base64("notadate")
	_, _, err = DecodeDateBasedToken(noSeparator)
	assert.Error(t, err, "Should return an error when the separator is missing")
	assert.Contains(t, err.Error(), "separator", "Error should mention the missing separator")

	// Test valid base64 with separator but no parseable date
	notADate := "bm90YWRhdGV8dHhuLTE=" // base64("notadate|txn-1")
	_, _, err = DecodeDateBasedToken(notADate)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")
}
