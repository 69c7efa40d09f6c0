package domain

// VideoFile is the video payload attached to an inbound upload.
type VideoFile struct {
	ExternalID  string // Provider id used to fetch or re-send the file
	StableID    string // Provider id unique per file content, the dedup key
	DisplayName string // Optional file name
	MimeType    string // Optional MIME type
	SizeBytes   int64  // Optional size, 0 when unknown
}

// VideoEvent is an inbound upload from a user. Video is nil when the message
// carried no video.
type VideoEvent struct {
	UserID int64
	Video  *VideoFile
}

// VideoRecord is one indexed video as persisted in a user's collection.
type VideoRecord struct {
	ExternalID  string
	StableID    string
	DisplayName string
	MimeType    string
	SizeBytes   int64
	ChannelID   string // Binding channel at insertion time, empty when none was set
}

// NewVideoRecord builds the record persisted for a video under the given binding.
func NewVideoRecord(v VideoFile, binding UserBinding) VideoRecord {
	return VideoRecord{
		ExternalID:  v.ExternalID,
		StableID:    v.StableID,
		DisplayName: v.DisplayName,
		MimeType:    v.MimeType,
		SizeBytes:   v.SizeBytes,
		ChannelID:   binding.ChannelID,
	}
}

// IngestOutcome describes what Ingest did with a video.
type IngestOutcome int

// Ingest outcomes.
const (
	OutcomeIndexed IngestOutcome = iota + 1
	OutcomeDuplicateSkipped
)

// String returns the metric label for the outcome.
func (o IngestOutcome) String() string {
	switch o {
	case OutcomeIndexed:
		return "indexed"
	case OutcomeDuplicateSkipped:
		return "duplicate"
	default:
		return "unknown"
	}
}

// IngestResult is the non-error result of ingesting a video.
type IngestResult struct {
	Outcome     IngestOutcome
	ExternalID  string // Set for OutcomeIndexed
	DisplayName string // Set for OutcomeDuplicateSkipped, may be empty
}
