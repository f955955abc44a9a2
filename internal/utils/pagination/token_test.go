package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	date := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(date, "txn-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(decodedDate), "Date should match after decode")
	assert.Equal(t, "txn-42", decodedID)

	// Zero time values survive as well
	zeroToken := EncodeCursor(time.Time{}, "x")
	decodedZero, _, err := DecodeCursor(zeroToken)
	require.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
}

func TestDecodeCursorError(t *testing.T) {
	_, _, err := DecodeCursor("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	missingID := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeCursor(missingID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|txn-1"))
	_, _, err = DecodeCursor(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}
