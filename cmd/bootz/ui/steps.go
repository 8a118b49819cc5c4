package ui

type stepStatus string

const (
	stepPending stepStatus = "pending"
	stepRunning stepStatus = "running"
	stepDone    stepStatus = "done"
	stepFailed  stepStatus = "failed"
)

// stepState is one row of the bootstrap checklist. The bootstrap
// sequence is flat, so there is no parent/child nesting.
type stepState struct {
	ID      string
	Title   string
	Status  stepStatus
	Message string
}

type stepSnapshot struct {
	Steps []stepState
}
