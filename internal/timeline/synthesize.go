package timeline

import (
	"strings"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/progress"
)

const mainBranchTitle = "Critical Path"

// Synthesize builds the branching timeline for a case. res must come from
// progress.Calculate over the same records.
//
// Cancelled, malformed and out-of-catalog records produce no events. The main
// branch is the longest dependency chain of required-service events (of any
// events when the case has no required ones); every other event joins the
// parallel branch of its service type.
func Synthesize(cat *catalog.Catalog, category domain.CaseCategory, records []domain.ServiceRecord, res progress.Result) (Traffic, error) {
	entry, err := cat.RequiredAndOptional(category)
	if err != nil {
		return Traffic{}, err
	}

	g := buildGraph(entry, progress.Screen(entry, records).Valid, res)

	eligible := func(n *node) bool { return n.class == catalog.ClassRequired }
	if !g.hasRequired() {
		eligible = func(*node) bool { return true }
	}
	chain := g.longestChain(eligible)

	// branchOf maps node index to branch position: 0 is main, 1.. parallel.
	branchOf := make([]int, len(g.nodes))
	onMain := make([]bool, len(g.nodes))
	for _, i := range chain {
		onMain[i] = true
	}

	var groups [][]int
	groupOf := make(map[domain.ServiceType]int)
	for i, n := range g.nodes {
		if onMain[i] {
			continue
		}
		st := n.event.ServiceType
		gi, ok := groupOf[st]
		if !ok {
			gi = len(groups)
			groupOf[st] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
		branchOf[i] = gi + 1
	}

	t := Traffic{
		MainBranch:       g.branch(MainBranchID, mainBranchTitle, chain, cat),
		ParallelBranches: make([]Branch, 0, len(groups)),
		MergePoints:      []MergePoint{},
	}
	ids := []string{MainBranchID}
	for _, members := range groups {
		st := g.nodes[members[0]].event.ServiceType
		b := g.branch(ParallelBranchID(st), string(st), members, cat)
		t.ParallelBranches = append(t.ParallelBranches, b)
		ids = append(ids, b.ID)
	}

	for i, n := range g.nodes {
		if mp, ok := mergePoint(n, branchOf[i], branchOf, ids); ok {
			t.MergePoints = append(t.MergePoints, mp)
		}
	}

	return t, nil
}

// ParallelBranchID returns the branch ID for a service type's parallel branch,
// e.g. "branch-document-preparation".
func ParallelBranchID(st domain.ServiceType) string {
	return "branch-" + strings.ReplaceAll(strings.ToLower(string(st)), "_", "-")
}

// mergePoint reports whether n consumes output from a branch other than its
// own, listing every branch that holds one of its dependencies in branch
// order.
func mergePoint(n *node, own int, branchOf []int, ids []string) (MergePoint, bool) {
	present := make([]bool, len(ids))
	foreign := false
	for _, j := range n.deps {
		present[branchOf[j]] = true
		if branchOf[j] != own {
			foreign = true
		}
	}
	if !foreign {
		return MergePoint{}, false
	}
	mp := MergePoint{EventID: n.event.ID}
	for b, ok := range present {
		if ok {
			mp.BranchIDs = append(mp.BranchIDs, ids[b])
		}
	}
	return mp, true
}

func (g *graph) hasRequired() bool {
	for _, n := range g.nodes {
		if n.class == catalog.ClassRequired {
			return true
		}
	}
	return false
}

// branch assembles a branch from node indices already in chronological order.
func (g *graph) branch(id, title string, members []int, cat *catalog.Catalog) Branch {
	b := Branch{
		ID:     id,
		Title:  title,
		Events: make([]Event, 0, len(members)),
	}

	var total, done float64
	for _, i := range members {
		n := g.nodes[i]
		b.Events = append(b.Events, n.event)
		w := cat.WeightOf(n.event.ServiceType)
		total += w
		if n.completed() {
			done += w
		}
	}
	b.Progress = progress.WeightedPct(done, total)
	b.Status = g.branchStatus(members)
	return b
}

// branchStatus is completed when every event is, in progress when any event
// is, blocked when the earliest event waits on an unmet dependency, and
// pending otherwise.
func (g *graph) branchStatus(members []int) EventStatus {
	if len(members) == 0 {
		return EventPending
	}
	allDone, anyActive := true, false
	for _, i := range members {
		switch g.nodes[i].event.Status {
		case EventCompleted:
		case EventInProgress:
			anyActive = true
			allDone = false
		default:
			allDone = false
		}
	}
	switch {
	case allDone:
		return EventCompleted
	case anyActive:
		return EventInProgress
	case g.unmet(g.nodes[members[0]]):
		return EventBlocked
	}
	return EventPending
}
