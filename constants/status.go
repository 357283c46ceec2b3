package constants

// Stage names a pipeline step as recorded in the processing log.
type Stage string

// Stable values (these exact strings appear in the log file).
const (
	StageMerge   Stage = "MERGE"
	StageOCR     Stage = "OCR"
	StageReport  Stage = "REPORT"
	StageArchive Stage = "ARCHIVE"
	StageDone    Stage = "COMPLETE"
	StageMoved   Stage = "MOVED_ERROR"
)

// Outcome is the per-package result of a pipeline pass.
type Outcome string

const (
	OutcomeOK      Outcome = "OK"
	OutcomeError   Outcome = "ERROR"
	OutcomeIgnored Outcome = "IGNORED"
	OutcomeLimit   Outcome = "LIMIT"
)

// State is the lifecycle state of a package within one run.
type State string

const (
	StatePending     State = "PENDING"
	StateMerging     State = "MERGING"
	StateOCRing      State = "OCRING"
	StateExtracting  State = "EXTRACTING"
	StateValidated   State = "VALIDATED"
	StateArchived    State = "ARCHIVED"
	StateFailed      State = "FAILED"
	StateQuarantined State = "QUARANTINED"
)

// Verdict is the overall result of a package report.
type Verdict string

const (
	VerdictApproved    Verdict = "APPROVED"
	VerdictRedFlag     Verdict = "REJECTED_RED_FLAG"
	VerdictNeedsReview Verdict = "NEEDS_REVIEW"
	VerdictIncomplete  Verdict = "INCOMPLETE"
)
