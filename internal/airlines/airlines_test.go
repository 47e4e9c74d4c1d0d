package airlines_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/airlines"
)

// TestNormalizeFlightNumber verifies ICAO-prefixed flight numbers rewrite
// to IATA form and everything else passes through.
func TestNormalizeFlightNumber(t *testing.T) {
	require.Equal(t, "F91234", airlines.NormalizeFlightNumber("FFT1234"))
	require.Equal(t, "AA3075", airlines.NormalizeFlightNumber("AAL3075"))
	require.Equal(t, "F91234", airlines.NormalizeFlightNumber("F91234"))
	require.Equal(t, "XYZ99", airlines.NormalizeFlightNumber("XYZ99"), "unmapped ICAO prefix passes through")
	require.Equal(t, "F9 1234", airlines.NormalizeFlightNumber("F9 1234"))
	require.Empty(t, airlines.NormalizeFlightNumber(""))
}

// TestName verifies display-name lookup falls back to the code.
func TestName(t *testing.T) {
	require.Equal(t, "Frontier Airlines", airlines.Name("F9"))
	require.Equal(t, "ZZ", airlines.Name("ZZ"))
}
