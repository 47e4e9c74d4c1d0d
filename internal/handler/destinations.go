package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Destination is one airport the target carrier serves, for populating
// origin/destination pickers.
type Destination struct {
	Code string `json:"code"`
	City string `json:"city"`
}

// frontierDestinations is a static snapshot of the Frontier route map.
var frontierDestinations = []Destination{
	{"ATL", "Atlanta"},
	{"AUS", "Austin"},
	{"BNA", "Nashville"},
	{"BOS", "Boston"},
	{"BUF", "Buffalo"},
	{"BWI", "Baltimore"},
	{"CLE", "Cleveland"},
	{"CLT", "Charlotte"},
	{"CUN", "Cancun"},
	{"CVG", "Cincinnati"},
	{"DEN", "Denver"},
	{"DFW", "Dallas"},
	{"DTW", "Detroit"},
	{"FLL", "Fort Lauderdale"},
	{"IAH", "Houston"},
	{"LAS", "Las Vegas"},
	{"LAX", "Los Angeles"},
	{"MCI", "Kansas City"},
	{"MCO", "Orlando"},
	{"MIA", "Miami"},
	{"MSP", "Minneapolis"},
	{"MSY", "New Orleans"},
	{"OAK", "Oakland"},
	{"ONT", "Ontario"},
	{"ORD", "Chicago"},
	{"PHL", "Philadelphia"},
	{"PHX", "Phoenix"},
	{"PUJ", "Punta Cana"},
	{"RDU", "Raleigh-Durham"},
	{"SAN", "San Diego"},
	{"SAT", "San Antonio"},
	{"SEA", "Seattle"},
	{"SFO", "San Francisco"},
	{"SJU", "San Juan"},
	{"SLC", "Salt Lake City"},
	{"SMF", "Sacramento"},
	{"TPA", "Tampa"},
}

func DestinationsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"destinations": frontierDestinations,
		"count":        len(frontierDestinations),
	})
}
