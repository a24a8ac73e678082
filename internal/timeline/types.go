// Package timeline turns a case's flat service log into a branching timeline:
// one critical-path branch, parallel branches per service type and the merge
// points where branches converge.
package timeline

import (
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
)

// EventStatus is the display state of an event or a whole branch.
type EventStatus string

const (
	EventCompleted  EventStatus = "completed"
	EventInProgress EventStatus = "in_progress"
	EventPending    EventStatus = "pending"
	EventBlocked    EventStatus = "blocked"
)

// MainBranchID identifies the critical-path branch.
const MainBranchID = "main"

// Event is one service record placed on the timeline.
type Event struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Status       EventStatus        `json:"status"`
	Date         time.Time          `json:"date"`
	ServiceType  domain.ServiceType `json:"serviceType"`
	Duration     *int64             `json:"duration"` // seconds
	Dependencies []string           `json:"dependencies"`
}

// Branch is an ordered run of events with its own weighted progress.
type Branch struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Events   []Event     `json:"events"`
	Status   EventStatus `json:"status"`
	Progress int         `json:"progress"`
}

// MergePoint marks an event that consumes the output of other branches.
// BranchIDs lists every branch holding one of the event's dependencies.
type MergePoint struct {
	EventID   string   `json:"eventId"`
	BranchIDs []string `json:"branchIds"`
}

// Traffic is the full timeline of a case.
type Traffic struct {
	MainBranch       Branch       `json:"mainBranch"`
	ParallelBranches []Branch     `json:"parallelBranches"`
	MergePoints      []MergePoint `json:"mergePoints"`
}

// Branches returns the main branch followed by the parallel branches.
func (t Traffic) Branches() []Branch {
	out := make([]Branch, 0, 1+len(t.ParallelBranches))
	out = append(out, t.MainBranch)
	return append(out, t.ParallelBranches...)
}

// EventCount is the number of events across all branches.
func (t Traffic) EventCount() int {
	n := 0
	for _, b := range t.Branches() {
		n += len(b.Events)
	}
	return n
}
