package timeline

import (
	"fmt"
	"sort"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/progress"
)

// node is a working copy of one event while the graph is built.
type node struct {
	event      Event
	class      catalog.Class
	deps       []int // indices into the sorted node slice, ascending
	unresolved bool  // an explicit dependency did not match any event
}

func (n *node) completed() bool { return n.event.Status == EventCompleted }

// graph is the chronologically sorted event list with resolved dependencies.
type graph struct {
	nodes []*node
	index map[string]int
}

// buildGraph converts usable records into sorted nodes and links them.
// Records are sorted by effective date, ties broken by record ID, so the
// result does not depend on input order.
func buildGraph(entry catalog.Entry, records []domain.ServiceRecord, res progress.Result) *graph {
	alreadyDone := make(map[domain.ServiceType]bool, len(res.CompletedServices))
	for _, st := range res.CompletedServices {
		alreadyDone[st] = true
	}

	var usable []domain.ServiceRecord
	for _, r := range records {
		if r.Status != domain.RecordCancelled {
			usable = append(usable, r)
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		di, dj := usable[i].EffectiveDate(), usable[j].EffectiveDate()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return usable[i].ID < usable[j].ID
	})

	g := &graph{
		nodes: make([]*node, 0, len(usable)),
		index: make(map[string]int, len(usable)),
	}
	for _, r := range usable {
		if _, dup := g.index[r.ID]; !dup {
			g.index[r.ID] = len(g.nodes)
		}
		g.nodes = append(g.nodes, &node{
			event: newEvent(r, alreadyDone[r.ServiceType]),
			class: entry.Classify(r.ServiceType),
		})
	}

	g.link(usable)
	g.markBlocked()
	return g
}

// link resolves explicit dependencies and fills in the implicit default: a
// record without an explicit list follows the most recent completed
// required-service event before it.
func (g *graph) link(sorted []domain.ServiceRecord) {
	lastRequiredDone := -1
	for i, n := range g.nodes {
		if explicit := sorted[i].DependsOn; len(explicit) > 0 {
			seen := make(map[int]bool, len(explicit))
			for _, id := range explicit {
				j, ok := g.index[id]
				if !ok {
					n.unresolved = true
					continue
				}
				if j == i || seen[j] {
					continue
				}
				seen[j] = true
				n.deps = append(n.deps, j)
			}
			sort.Ints(n.deps)
		} else if lastRequiredDone >= 0 {
			n.deps = []int{lastRequiredDone}
		}

		n.event.Dependencies = make([]string, 0, len(n.deps))
		for _, j := range n.deps {
			n.event.Dependencies = append(n.event.Dependencies, g.nodes[j].event.ID)
		}

		if n.class == catalog.ClassRequired && n.completed() {
			lastRequiredDone = i
		}
	}
}

// markBlocked turns pending events with unmet dependencies into blocked ones.
func (g *graph) markBlocked() {
	for _, n := range g.nodes {
		if n.event.Status == EventPending && g.unmet(n) {
			n.event.Status = EventBlocked
		}
	}
}

// unmet reports a dependency that is unresolved or not yet completed.
func (g *graph) unmet(n *node) bool {
	if n.unresolved {
		return true
	}
	for _, j := range n.deps {
		if !g.nodes[j].completed() {
			return true
		}
	}
	return false
}

// longestChain returns node indices of the longest dependency chain among
// eligible nodes, in chronological order. Only edges from earlier to later
// nodes count, so cycles in declared dependencies cannot loop. Among equally
// long chains the one ending latest wins; predecessors prefer the earliest
// candidate.
func (g *graph) longestChain(eligible func(*node) bool) []int {
	length := make([]int, len(g.nodes))
	prev := make([]int, len(g.nodes))
	best := -1

	for i, n := range g.nodes {
		if !eligible(n) {
			continue
		}
		length[i], prev[i] = 1, -1
		for _, j := range n.deps {
			if j >= i || !eligible(g.nodes[j]) {
				continue
			}
			if length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if best == -1 || length[i] >= length[best] {
			best = i
		}
	}

	if best == -1 {
		return nil
	}
	chain := make([]int, length[best])
	for k, i := len(chain)-1, best; i != -1; k, i = k-1, prev[i] {
		chain[k] = i
	}
	return chain
}

func newEvent(r domain.ServiceRecord, typeAlreadyDone bool) Event {
	ev := Event{
		ID:           r.ID,
		Title:        r.ServiceType.Label(),
		Status:       eventStatus(r.Status),
		Date:         r.EffectiveDate(),
		ServiceType:  r.ServiceType,
		Dependencies: []string{},
	}
	if r.EndTime != nil {
		secs := int64(r.EndTime.Sub(r.StartTime).Seconds())
		ev.Duration = &secs
	}
	ev.Description = describe(r, ev.Status, typeAlreadyDone)
	return ev
}

func eventStatus(s domain.RecordStatus) EventStatus {
	switch s {
	case domain.RecordCompleted:
		return EventCompleted
	case domain.RecordInProgress:
		return EventInProgress
	default:
		return EventPending
	}
}

func describe(r domain.ServiceRecord, status EventStatus, typeAlreadyDone bool) string {
	if r.Notes != "" {
		return r.Notes
	}
	label := r.ServiceType.Label()
	switch {
	case status == EventCompleted:
		return fmt.Sprintf("%s completed", label)
	case typeAlreadyDone:
		return fmt.Sprintf("Follow-up %s; an earlier session is already complete", label)
	case status == EventInProgress:
		return fmt.Sprintf("%s in progress", label)
	default:
		return fmt.Sprintf("%s scheduled", label)
	}
}
