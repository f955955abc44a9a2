package database

import (
	"errors"
	"io"
	"io/fs"
	"regexp"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numericColumn = regexp.MustCompile(`(?i)\b(amount|rate)\s+(?:TYPE\s+)?NUMERIC(\s*\([^)]*\))?`)

// Amounts and rates are decimals of arbitrary scale, so after all migrations
// their columns must not round.
func TestMigrations_MoneyColumnsKeepFullPrecision(t *testing.T) {
	src, err := (&file.File{}).Open("file://../../migrations")
	require.NoError(t, err)
	defer src.Close()

	finalType := map[string]string{}
	version, err := src.First()
	require.NoError(t, err)
	for {
		r, _, err := src.ReadUp(version)
		require.NoError(t, err)
		body, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())

		for _, m := range numericColumn.FindAllStringSubmatch(string(body), -1) {
			finalType[m[1]] = m[2]
		}

		version, err = src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
	}

	require.Contains(t, finalType, "amount")
	require.Contains(t, finalType, "rate")
	for column, precision := range finalType {
		assert.Empty(t, precision, "column %s is declared NUMERIC%s", column, precision)
	}
}
