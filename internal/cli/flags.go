package cli

import "allurectl/internal/config"

// Flags holds command-line flags
type Flags struct {
	Verbose       bool
	ShowFailures  bool
	FailureFilter string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Verbose:       f.Verbose,
		ShowFailures:  f.ShowFailures,
		FailureFilter: f.FailureFilter,
	}
}
