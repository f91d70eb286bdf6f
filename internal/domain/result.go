package domain

// Status is the outcome of a single test as recorded in a result artifact
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
	StatusUnknown Status = "unknown"
)

// IsFailure reports whether the status counts as a failure in summaries
func (s Status) IsFailure() bool {
	return s == StatusFailed || s == StatusBroken
}

// Result is one test result artifact (<uuid>-result.json)
type Result struct {
	UUID          string        `json:"uuid"`
	HistoryID     string        `json:"historyId,omitempty"`
	Name          string        `json:"name"`
	FullName      string        `json:"fullName,omitempty"`
	Description   string        `json:"description,omitempty"`
	Status        Status        `json:"status"`
	StatusDetails StatusDetails `json:"statusDetails"`
	Stage         string        `json:"stage,omitempty"`
	Start         int64         `json:"start"` // unix millis
	Stop          int64         `json:"stop"`  // unix millis
	Labels        []Label       `json:"labels,omitempty"`
	Attachments   []Attachment  `json:"attachments,omitempty"`

	// Path of the artifact on disk, not serialized
	Path string `json:"-"`
}

// StatusDetails carries the failure message and trace
type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// Label is a name/value tag (suite, feature, severity, tag...)
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment points at a file stored next to the result
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// DurationMillis returns the test duration in milliseconds
func (r Result) DurationMillis() int64 {
	if r.Stop < r.Start {
		return 0
	}
	return r.Stop - r.Start
}

// Label returns the first label value with the given name
func (r Result) Label(name string) string {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Value
		}
	}
	return ""
}
