package differ

import (
	"strings"

	"github.com/aleister1102/slotwatch/internal/common"
)

// NotifyPolicy decides which diffs are worth a notification.
type NotifyPolicy string

const (
	// PolicyAddedOrRemoved notifies on any change.
	PolicyAddedOrRemoved NotifyPolicy = "added_or_removed"
	// PolicyAddedOnly notifies only when new items appear; removals are
	// absorbed into the next snapshot silently.
	PolicyAddedOnly NotifyPolicy = "added_only"
)

// ParseNotifyPolicy parses a configured policy name. Empty selects PolicyAddedOrRemoved.
func ParseNotifyPolicy(value string) (NotifyPolicy, error) {
	switch NotifyPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyAddedOrRemoved:
		return PolicyAddedOrRemoved, nil
	case PolicyAddedOnly:
		return PolicyAddedOnly, nil
	default:
		return "", common.NewValidationError("notify_policy", value, "must be one of added_or_removed, added_only")
	}
}

// ShouldNotify applies the policy to a diff.
func (p NotifyPolicy) ShouldNotify(diff ItemDiff) bool {
	if p == PolicyAddedOnly {
		return len(diff.Added) > 0
	}
	return diff.HasChanges()
}

func (p NotifyPolicy) String() string {
	return string(p)
}
