// Package airlines maps between airline code systems. Some status feeds
// identify the operating carrier by its 3-letter ICAO code; the rest of
// the system speaks 2-letter IATA commercial codes.
package airlines

import "regexp"

// ICAOToIATA covers the carriers the status feeds are known to return.
// Unmapped codes pass through unchanged.
var ICAOToIATA = map[string]string{
	"AAL": "AA", "DAL": "DL", "UAL": "UA", "SWA": "WN", "FFT": "F9",
	"NKS": "NK", "JBU": "B6", "ASA": "AS", "AAY": "G4", "HAL": "HA",
	"SCX": "SY", "BAW": "BA", "AFR": "AF", "DLH": "LH", "ACA": "AC",
	"KLM": "KL", "EIN": "EI", "RYR": "FR", "EZY": "U2", "VOI": "VY",
	"ANA": "NH", "JAL": "JL", "CPA": "CX", "QFA": "QF", "UAE": "EK",
	"ETH": "ET", "THY": "TK", "SIA": "SQ", "CSN": "CZ", "CCA": "CA",
}

// Names maps IATA codes to display names for normalized legs.
var Names = map[string]string{
	"F9": "Frontier Airlines", "AA": "American Airlines", "UA": "United Airlines",
	"DL": "Delta Air Lines", "WN": "Southwest Airlines", "B6": "JetBlue Airways",
	"NK": "Spirit Airlines", "AS": "Alaska Airlines", "G4": "Allegiant Air",
	"SY": "Sun Country Airlines", "HA": "Hawaiian Airlines",
}

var icaoFlightNum = regexp.MustCompile(`^([A-Z]{3})(\d+)$`)

// Name returns the display name for an IATA code, or the code itself when
// unknown.
func Name(iata string) string {
	if n, ok := Names[iata]; ok {
		return n
	}
	return iata
}

// NormalizeFlightNumber rewrites an ICAO-prefixed flight number to its
// IATA form (AAL3075 -> AA3075). Anything else passes through unchanged.
func NormalizeFlightNumber(flightNum string) string {
	m := icaoFlightNum.FindStringSubmatch(flightNum)
	if m == nil {
		return flightNum
	}
	if iata, ok := ICAOToIATA[m[1]]; ok {
		return iata + m[2]
	}
	return flightNum
}
