package ingest

import (
	"strings"
	"testing"

	"folio/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	in := "\ufeffSymbol, Shares ,price,date,broker\n" +
		"AAPL,10,100,2024-01-01,ib\n" +
		"\n" +
		"msft,5,300.5,2024-02-01\n"
	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, portfolio.RawRow{"symbol": "AAPL", "shares": "10", "price": "100", "date": "2024-01-01", "broker": "ib"}, rows[0])
	assert.Equal(t, portfolio.RawRow{"symbol": "msft", "shares": "5", "price": "300.5", "date": "2024-02-01"}, rows[1])
}

func TestReadRows_EmptyInput(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRows_ExtraCellsWithoutHeaderAreDropped(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("symbol,shares,price,date\nAAPL,1,2,2024-01-01,extra\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 4)
}

func TestReadRows_FeedsValidation(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("symbol,shares,price,date\nAAPL,10,100,2024-01-01\n,5,10,2024-01-01\n"))
	require.NoError(t, err)
	_, err = portfolio.Validate(rows)
	require.Error(t, err)
	assert.Equal(t, "Row 2: Missing required fields (symbol, shares, price, date)", err.Error())
}
