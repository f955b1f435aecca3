package rest

import (
	"testing"

	"github.com/tgarmenliev/sofaccess-api/internal/model"
)

// counters applies deltas the way the mutation paths do, starting from
// {0,0}, so tests can walk a moderation history without a store.
type counters struct {
	total    int
	resolved int
}

func (c *counters) apply(totalDelta, resolvedDelta int) {
	c.total += totalDelta
	c.resolved += resolvedDelta
}

func snapshot(id int64, reportType string, visible bool) model.ReportSnapshot {
	return model.ReportSnapshot{ID: id, Type: reportType, IsVisible: visible}
}

func TestResolveCounterDelta(t *testing.T) {
	testCases := []struct {
		name      string
		snapshots []model.ReportSnapshot
		expected  int
	}{
		{
			name:      "visible open report counts",
			snapshots: []model.ReportSnapshot{snapshot(1, "Счупен тротоар", true)},
			expected:  1,
		},
		{
			name:      "invisible report contributes nothing",
			snapshots: []model.ReportSnapshot{snapshot(1, "Счупен тротоар", false)},
			expected:  0,
		},
		{
			name:      "already resolved report contributes nothing",
			snapshots: []model.ReportSnapshot{snapshot(1, model.ResolvedSentinel, true)},
			expected:  0,
		},
		{
			name:      "legacy sentinel spelling is also resolved",
			snapshots: []model.ReportSnapshot{snapshot(1, model.ResolvedSentinelLegacy, true)},
			expected:  0,
		},
		{
			name: "mixed set counts only visible unresolved",
			snapshots: []model.ReportSnapshot{
				snapshot(1, "Счупен тротоар", true),
				snapshot(2, model.ResolvedSentinel, true),
				snapshot(3, "Стълби без рампа", false),
			},
			expected: 1,
		},
		{
			name:      "empty set",
			snapshots: nil,
			expected:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveCounterDelta(tc.snapshots); got != tc.expected {
				t.Errorf("resolveCounterDelta() = %d; want %d", got, tc.expected)
			}
		})
	}
}

func TestVisibilityCounterDelta(t *testing.T) {
	testCases := []struct {
		name             string
		prior            model.ReportSnapshot
		newVisible       bool
		expectedTotal    int
		expectedResolved int
	}{
		{"publish open report", snapshot(1, "Друго", false), true, 1, 0},
		{"publish resolved report", snapshot(1, model.ResolvedSentinel, false), true, 1, 1},
		{"publish legacy resolved report", snapshot(1, model.ResolvedSentinelLegacy, false), true, 1, 1},
		{"hide open report", snapshot(1, "Друго", true), false, -1, 0},
		{"hide resolved report", snapshot(1, model.ResolvedSentinel, true), false, -1, -1},
		{"no-op publish", snapshot(1, "Друго", true), true, 0, 0},
		{"no-op hide", snapshot(1, model.ResolvedSentinel, false), false, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotTotal, gotResolved := visibilityCounterDelta(tc.prior, tc.newVisible)
			if gotTotal != tc.expectedTotal || gotResolved != tc.expectedResolved {
				t.Errorf("visibilityCounterDelta() = (%d, %d); want (%d, %d)",
					gotTotal, gotResolved, tc.expectedTotal, tc.expectedResolved)
			}
		})
	}
}

func TestDeleteCounterDelta(t *testing.T) {
	testCases := []struct {
		name             string
		prior            model.ReportSnapshot
		expectedTotal    int
		expectedResolved int
	}{
		{"delete never-published report", snapshot(1, "Друго", false), 0, 0},
		{"delete hidden resolved report", snapshot(1, model.ResolvedSentinel, false), 0, 0},
		{"delete visible open report", snapshot(1, "Друго", true), -1, 0},
		{"delete visible resolved report", snapshot(1, model.ResolvedSentinel, true), -1, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotTotal, gotResolved := deleteCounterDelta(tc.prior)
			if gotTotal != tc.expectedTotal || gotResolved != tc.expectedResolved {
				t.Errorf("deleteCounterDelta() = (%d, %d); want (%d, %d)",
					gotTotal, gotResolved, tc.expectedTotal, tc.expectedResolved)
			}
		})
	}
}

// TestVisibilityRoundTrip checks that toggling visibility on and off
// again returns the counters to where they started, for both open and
// resolved reports.
func TestVisibilityRoundTrip(t *testing.T) {
	for _, reportType := range []string{"Счупен тротоар", model.ResolvedSentinel} {
		t.Run(reportType, func(t *testing.T) {
			c := counters{total: 3, resolved: 1}
			start := c

			hidden := snapshot(1, reportType, false)
			c.apply(visibilityCounterDelta(hidden, true))

			visible := snapshot(1, reportType, true)
			c.apply(visibilityCounterDelta(visible, false))

			if c != start {
				t.Errorf("counters after round trip = %+v; want %+v", c, start)
			}
		})
	}
}

// TestModerationScenario walks the documented lifecycle: submit →
// publish → bulk resolve → delete, asserting the counters at each
// step.
func TestModerationScenario(t *testing.T) {
	var c counters

	// create report A: invisible by construction, no counter effects
	a := snapshot(1, "Счупен тротоар", false)
	if c.total != 0 || c.resolved != 0 {
		t.Fatalf("after create: counters = %+v; want {0 0}", c)
	}

	// toggle A visible
	c.apply(visibilityCounterDelta(a, true))
	a.IsVisible = true
	if c.total != 1 || c.resolved != 0 {
		t.Fatalf("after publish: counters = %+v; want {1 0}", c)
	}

	// bulk-resolve [A]
	c.apply(0, resolveCounterDelta([]model.ReportSnapshot{a}))
	a.Type = model.ResolvedSentinel
	if c.total != 1 || c.resolved != 1 {
		t.Fatalf("after resolve: counters = %+v; want {1 1}", c)
	}

	// resolving again must not double-count
	c.apply(0, resolveCounterDelta([]model.ReportSnapshot{a}))
	if c.total != 1 || c.resolved != 1 {
		t.Fatalf("after re-resolve: counters = %+v; want {1 1}", c)
	}

	// delete A
	c.apply(deleteCounterDelta(a))
	if c.total != 0 || c.resolved != 0 {
		t.Fatalf("after delete: counters = %+v; want {0 0}", c)
	}
}

// TestResolvedNeverExceedsTotal drives a sequential moderation history
// through every mutation path and checks the aggregate invariant. The
// invariant is only guaranteed for sequential histories; racing
// administrators can still skew the counters.
func TestResolvedNeverExceedsTotal(t *testing.T) {
	var c counters

	reports := map[int64]*model.ReportSnapshot{
		1: {ID: 1, Type: "Счупен тротоар"},
		2: {ID: 2, Type: model.ResolvedSentinelLegacy},
		3: {ID: 3, Type: "Стълби без рампа"},
	}

	check := func(step string) {
		t.Helper()
		if c.resolved > c.total {
			t.Fatalf("%s: resolved %d > total %d", step, c.resolved, c.total)
		}
		if c.total < 0 || c.resolved < 0 {
			t.Fatalf("%s: negative counter %+v", step, c)
		}
	}

	toggle := func(id int64, visible bool) {
		prior := *reports[id]
		c.apply(visibilityCounterDelta(prior, visible))
		reports[id].IsVisible = visible
	}
	resolve := func(ids ...int64) {
		var snapshots []model.ReportSnapshot
		for _, id := range ids {
			snapshots = append(snapshots, *reports[id])
		}
		c.apply(0, resolveCounterDelta(snapshots))
		for _, id := range ids {
			reports[id].Type = model.ResolvedSentinel
		}
	}

	toggle(1, true)
	check("publish 1")
	toggle(2, true) // pre-resolved report becomes visible: both counters move
	check("publish 2")
	resolve(1, 2) // one already resolved: resolved moves by exactly 1
	check("resolve 1,2")
	if c.total != 2 || c.resolved != 2 {
		t.Fatalf("after resolve: counters = %+v; want {2 2}", c)
	}
	toggle(3, true)
	check("publish 3")
	toggle(1, false)
	check("hide 1")
	c.apply(deleteCounterDelta(*reports[2]))
	check("delete 2")
	if c.total != 1 || c.resolved != 0 {
		t.Fatalf("final counters = %+v; want {1 0}", c)
	}
}
