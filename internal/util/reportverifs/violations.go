package reportverifs

// Rejection is the structured diagnostic of a failed verification: which
// target failed and what was observed. It is logged, never returned to the
// submitter.
type Rejection struct {
	Message string `json:"message"`
}

// Violation names the verifier that produced a Rejection.
type Violation struct {
	Rejection
	Name string `json:"name"`
}
