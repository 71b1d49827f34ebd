package ingest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte("date,description,amount,currency\n" +
		"10-01-2025,Grocery run,42.5,USD\n" +
		"11-01-2025, Lunch ,10,EUR\n")

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Date:        "10-01-2025",
		Description: "Grocery run",
		Amount:      42.5,
		AmountRaw:   "42.5",
		Currency:    "USD",
	}, rows[0])
	assert.Equal(t, "Lunch", rows[1].Description, "cell values are trimmed")
}

func TestParseHeaderNormalization(t *testing.T) {
	data := []byte("\uFEFFDate , DESCRIPTION ,Amount,Currency\n" +
		"10-01-2025,Coffee,3.5,USD\n")

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Description)
	assert.Equal(t, "10-01-2025", rows[0].Date, "BOM on the first header cell is stripped")
}

func TestParseOptionalIDColumn(t *testing.T) {
	data := []byte("id,date,description,amount,currency\n" +
		"6f1f4d3e-8a3b-4c2d-9e1f-2a3b4c5d6e7f,10-01-2025,Coffee,3.5,USD\n" +
		",11-01-2025,Tea,2,USD\n")

	rows, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "6f1f4d3e-8a3b-4c2d-9e1f-2a3b4c5d6e7f", rows[0].ID)
	assert.Empty(t, rows[1].ID)
}

func TestParseAmountCoercion(t *testing.T) {
	data := []byte("date,description,amount,currency\n" +
		"10-01-2025,Empty cell,,USD\n" +
		"10-01-2025,Not a number,abc,USD\n")

	rows, err := Parse(data)
	require.NoError(t, err)

	assert.Zero(t, rows[0].Amount, "empty amount coerces to zero")
	assert.Equal(t, "", rows[0].AmountRaw)
	assert.True(t, math.IsNaN(rows[1].Amount), "unparseable amount coerces to NaN")
	assert.Equal(t, "abc", rows[1].AmountRaw)
}

func TestParseShortRecord(t *testing.T) {
	data := []byte("date,description,amount,currency\n" +
		"10-01-2025,Short row\n")

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Currency, "cells past the record length read as empty")
	assert.Zero(t, rows[0].Amount)
}

func TestParseMissingHeaders(t *testing.T) {
	data := []byte("date,description\n10-01-2025,Coffee\n")

	_, err := Parse(data)
	require.ErrorIs(t, err, ErrMissingHeaders)
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "currency")
}

func TestParseMalformed(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		_, err := Parse(nil)
		require.ErrorIs(t, err, ErrMalformedCSV)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := Parse([]byte("date,description,amount,currency\n\"broken,x,1,USD\n"))
		require.ErrorIs(t, err, ErrMalformedCSV)
	})
}

func TestParseHeaderOnly(t *testing.T) {
	rows, err := Parse([]byte("date,description,amount,currency\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
