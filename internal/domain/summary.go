package domain

// SummaryMeta contains counts for a rendered report
type SummaryMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	BrokenTests     int     `json:"broken_tests"`
	SkippedTests    int     `json:"skipped_tests"`
	UnknownTests    int     `json:"unknown_tests"`
	DurationSeconds float64 `json:"duration_seconds"`
	ResultsDir      string  `json:"results_dir"`
	ReportDir       string  `json:"report_dir"`
	Timestamp       string  `json:"timestamp"`
}

// Summary is the stored output of a generate run
type Summary struct {
	Meta     SummaryMeta `json:"meta"`
	Failures []Result    `json:"failures"`
}
