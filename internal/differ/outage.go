package differ

import "github.com/aleister1102/slotwatch/internal/models"

// AggregateSiteDown ORs the per-target availabilities of one cycle: the site
// is down when any target was unreachable.
func AggregateSiteDown(availabilities map[string]models.Availability) bool {
	for _, a := range availabilities {
		if a == models.AvailabilityUnreachable {
			return true
		}
	}
	return false
}

// OutageTransition returns the edge between the previous and current site_down
// values. Repeated identical states produce OutageEventNone.
func OutageTransition(wasDown, isDown bool) models.OutageEvent {
	switch {
	case !wasDown && isDown:
		return models.OutageEventDown
	case wasDown && !isDown:
		return models.OutageEventRecovered
	default:
		return models.OutageEventNone
	}
}

// EvaluateOutage combines AggregateSiteDown and OutageTransition.
func EvaluateOutage(wasDown bool, availabilities map[string]models.Availability) (bool, models.OutageEvent) {
	isDown := AggregateSiteDown(availabilities)
	return isDown, OutageTransition(wasDown, isDown)
}
