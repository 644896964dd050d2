package models

// Availability is the per-cycle reachability of a target.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityReachable
	AvailabilityUnreachable
)

// String returns string representation of Availability
func (a Availability) String() string {
	switch a {
	case AvailabilityReachable:
		return "reachable"
	case AvailabilityUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// OutageEvent is the edge produced when the aggregated site_down flag flips.
type OutageEvent int

const (
	OutageEventNone OutageEvent = iota
	OutageEventDown
	OutageEventRecovered
)

// String returns string representation of OutageEvent
func (e OutageEvent) String() string {
	switch e {
	case OutageEventDown:
		return "down"
	case OutageEventRecovered:
		return "recovered"
	default:
		return "none"
	}
}
