package domain

import "time"

// ProgressKind tags the elements of a progress sequence.
type ProgressKind int

// Progress sequence element kinds.
const (
	ProgressUpdateKind ProgressKind = iota + 1
	ProgressEmpty
	ProgressComplete
	ProgressCancelled
)

// ProgressUpdate reports how far the countdown over a catalog has advanced.
type ProgressUpdate struct {
	Processed          int
	Total              int
	PercentComplete    float64
	EstimatedRemaining time.Duration
}

// ProgressEvent is one element of a progress sequence. Update is only
// meaningful when Kind is ProgressUpdateKind.
type ProgressEvent struct {
	Kind   ProgressKind
	Update ProgressUpdate
}
