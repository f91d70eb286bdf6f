package execution

import (
	"context"
	"strings"
)

// Invocation describes one external process call
type Invocation struct {
	Name string
	Args []string
	// Quiet captures output instead of streaming it to the terminal
	Quiet bool
}

// String renders the invocation as a shell-like command line
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

// Executor runs external processes. Run returns nil only if the process
// exited zero; a missing executable wraps exec.ErrNotFound.
type Executor interface {
	Run(ctx context.Context, inv Invocation) error
}
