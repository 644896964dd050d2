package differ

import (
	"math/rand"
	"testing"

	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name            string
		prior           []string
		current         []string
		expectedAdded   []string
		expectedRemoved []string
	}{
		{
			name:            "one added one removed",
			prior:           []string{"A", "B"},
			current:         []string{"B", "C"},
			expectedAdded:   []string{"C"},
			expectedRemoved: []string{"A"},
		},
		{
			name:            "first run",
			prior:           nil,
			current:         []string{"X"},
			expectedAdded:   []string{"X"},
			expectedRemoved: []string{},
		},
		{
			name:            "everything disappeared",
			prior:           []string{"A", "B"},
			current:         []string{},
			expectedAdded:   []string{},
			expectedRemoved: []string{"A", "B"},
		},
		{
			name:            "reordering is not a change",
			prior:           []string{"A", "B", "C"},
			current:         []string{"C", "A", "B"},
			expectedAdded:   []string{},
			expectedRemoved: []string{},
		},
		{
			name:            "added keeps current order",
			prior:           []string{"M"},
			current:         []string{"Z", "M", "A", "K"},
			expectedAdded:   []string{"Z", "A", "K"},
			expectedRemoved: []string{},
		},
		{
			name:            "removed keeps prior order",
			prior:           []string{"Z", "A", "K", "M"},
			current:         []string{"M"},
			expectedAdded:   []string{},
			expectedRemoved: []string{"Z", "A", "K"},
		},
		{
			name:            "duplicates reported once",
			prior:           []string{"A", "A"},
			current:         []string{"B", "B", "B"},
			expectedAdded:   []string{"B"},
			expectedRemoved: []string{"A"},
		},
		{
			name:            "identity is exact text",
			prior:           []string{"termín 1"},
			current:         []string{"Termín 1"},
			expectedAdded:   []string{"Termín 1"},
			expectedRemoved: []string{"termín 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Diff(tt.prior, tt.current)
			assert.Equal(t, tt.expectedAdded, diff.Added)
			assert.Equal(t, tt.expectedRemoved, diff.Removed)
		})
	}
}

func TestDiff_SetProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	randomItems := func() []string {
		n := rng.Intn(10)
		items := make([]string, n)
		for i := range items {
			items[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return items
	}

	for i := 0; i < 500; i++ {
		prior := randomItems()
		current := randomItems()
		diff := Diff(prior, current)

		assert.Equal(t, orderedMinus(current, prior), diff.Added, "prior=%v current=%v", prior, current)
		assert.Equal(t, orderedMinus(prior, current), diff.Removed, "prior=%v current=%v", prior, current)

		same := Diff(current, current)
		assert.Empty(t, same.Added)
		assert.Empty(t, same.Removed)
	}
}

// orderedMinus returns the unique elements of a missing from b, in a's order.
func orderedMinus(a, b []string) []string {
	out := []string{}
	for _, x := range models.Dedupe(a) {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			out = append(out, x)
		}
	}
	return out
}

func TestReconciler_Reconcile(t *testing.T) {
	t.Run("added or removed policy", func(t *testing.T) {
		r := NewReconciler(PolicyAddedOrRemoved)

		res := r.Reconcile([]string{"A", "B"}, []string{"B", "C"})
		assert.Equal(t, []string{"C"}, res.Diff.Added)
		assert.Equal(t, []string{"A"}, res.Diff.Removed)
		assert.Equal(t, []string{"B", "C"}, res.Next)
		assert.True(t, res.ShouldNotify)

		res = r.Reconcile([]string{"A", "B"}, []string{"B"})
		assert.True(t, res.ShouldNotify)
		assert.Equal(t, []string{"B"}, res.Next)
	})

	t.Run("added only policy absorbs removals", func(t *testing.T) {
		r := NewReconciler(PolicyAddedOnly)

		res := r.Reconcile([]string{"A", "B"}, []string{"B"})
		assert.False(t, res.ShouldNotify)
		assert.Equal(t, []string{"A"}, res.Diff.Removed)
		assert.Equal(t, []string{"B"}, res.Next)

		res = r.Reconcile(nil, []string{"X"})
		assert.True(t, res.ShouldNotify)
		assert.Equal(t, []string{"X"}, res.Next)
	})

	t.Run("idempotent", func(t *testing.T) {
		r := NewReconciler(PolicyAddedOrRemoved)
		first := r.Reconcile([]string{"A"}, []string{"B", "C", "B"})
		second := r.Reconcile(first.Next, []string{"B", "C", "B"})
		assert.False(t, second.ShouldNotify)
		assert.False(t, second.Diff.HasChanges())
		assert.Equal(t, first.Next, second.Next)
	})

	t.Run("empty extraction is a valid snapshot", func(t *testing.T) {
		r := NewReconciler(PolicyAddedOrRemoved)
		res := r.Reconcile(nil, nil)
		assert.False(t, res.ShouldNotify)
		require.NotNil(t, res.Next)
		assert.Empty(t, res.Next)
	})
}

func TestParseNotifyPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected NotifyPolicy
		wantErr  bool
	}{
		{input: "", expected: PolicyAddedOrRemoved},
		{input: "added_or_removed", expected: PolicyAddedOrRemoved},
		{input: " ADDED_ONLY ", expected: PolicyAddedOnly},
		{input: "removed_only", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := ParseNotifyPolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
		})
	}
}

func TestEvaluateOutage(t *testing.T) {
	reachable := map[string]models.Availability{
		"a": models.AvailabilityReachable,
		"b": models.AvailabilityReachable,
	}
	partial := map[string]models.Availability{
		"a": models.AvailabilityReachable,
		"b": models.AvailabilityUnreachable,
	}

	tests := []struct {
		name           string
		wasDown        bool
		availabilities map[string]models.Availability
		expectedDown   bool
		expectedEvent  models.OutageEvent
	}{
		{name: "stays up", wasDown: false, availabilities: reachable, expectedDown: false, expectedEvent: models.OutageEventNone},
		{name: "goes down when any target fails", wasDown: false, availabilities: partial, expectedDown: true, expectedEvent: models.OutageEventDown},
		{name: "stays down silently", wasDown: true, availabilities: partial, expectedDown: true, expectedEvent: models.OutageEventNone},
		{name: "recovers", wasDown: true, availabilities: reachable, expectedDown: false, expectedEvent: models.OutageEventRecovered},
		{name: "no targets", wasDown: false, availabilities: nil, expectedDown: false, expectedEvent: models.OutageEventNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down, event := EvaluateOutage(tt.wasDown, tt.availabilities)
			assert.Equal(t, tt.expectedDown, down)
			assert.Equal(t, tt.expectedEvent, event)
		})
	}
}
