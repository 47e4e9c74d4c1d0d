package providers

import "strings"

// GoWild redemption heuristics. Pass seats are released from the last
// remaining economy inventory, and pass-coverable fares sit at the bottom
// of the fare range.
const (
	lowFareThreshold  = 99.0
	lastSeatThreshold = 5
)

// gowildEligible decides whether a leg qualifies for GoWild pass
// redemption. The operating carrier must match the target carrier; any
// mismatch is ineligible regardless of fare. A matching carrier qualifies
// on fare class, low fare, or last-seat availability.
func gowildEligible(carrier, targetCarrier string, fareClass *string, price *float64, seats *int) bool {
	if carrier != targetCarrier {
		return false
	}
	if fareClass != nil {
		switch strings.ToLower(*fareClass) {
		case "economy", "basic economy":
			return true
		}
	}
	if price != nil && *price <= lowFareThreshold {
		return true
	}
	if seats != nil && *seats <= lastSeatThreshold {
		return true
	}
	return false
}
