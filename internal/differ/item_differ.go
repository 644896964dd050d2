package differ

import "github.com/aleister1102/slotwatch/internal/models"

// ItemDiff lists the items that appeared and disappeared between two snapshots.
type ItemDiff struct {
	Added   []string
	Removed []string
}

// HasChanges reports whether anything was added or removed.
func (d ItemDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// Diff computes the set difference in both directions. Added keeps the order
// of current, Removed keeps the order of prior. Inputs are de-duplicated
// first, so repeated items are reported once.
func Diff(prior, current []string) ItemDiff {
	prior = models.Dedupe(prior)
	current = models.Dedupe(current)

	priorSet := toSet(prior)
	currentSet := toSet(current)

	diff := ItemDiff{
		Added:   make([]string, 0),
		Removed: make([]string, 0),
	}
	for _, item := range current {
		if _, ok := priorSet[item]; !ok {
			diff.Added = append(diff.Added, item)
		}
	}
	for _, item := range prior {
		if _, ok := currentSet[item]; !ok {
			diff.Removed = append(diff.Removed, item)
		}
	}
	return diff
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Reconciliation is the outcome of comparing one target's snapshots.
type Reconciliation struct {
	Diff         ItemDiff
	ShouldNotify bool
	// Next replaces the stored snapshot items. It always equals the
	// de-duplicated current items, whatever the notification decision.
	Next []string
}

// Reconciler applies a notification policy on top of Diff. It holds no
// mutable state and is safe for concurrent use.
type Reconciler struct {
	policy NotifyPolicy
}

// NewReconciler creates a Reconciler for the given policy.
func NewReconciler(policy NotifyPolicy) *Reconciler {
	return &Reconciler{policy: policy}
}

// Policy returns the configured notification policy.
func (r *Reconciler) Policy() NotifyPolicy {
	return r.policy
}

// Reconcile compares prior and current items of one target.
func (r *Reconciler) Reconcile(prior, current []string) Reconciliation {
	diff := Diff(prior, current)
	return Reconciliation{
		Diff:         diff,
		ShouldNotify: r.policy.ShouldNotify(diff),
		Next:         models.Dedupe(current),
	}
}
