package browsertest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"allurectl/internal/domain"
	"allurectl/internal/storage"
)

// PageOption decorates the report entry of a test
type PageOption func(*domain.Result)

// WithLabel adds a report label
func WithLabel(name, value string) PageOption {
	return func(r *domain.Result) {
		r.Labels = append(r.Labels, domain.Label{Name: name, Value: value})
	}
}

// WithTitle overrides the displayed test name
func WithTitle(title string) PageOption {
	return func(r *domain.Result) { r.Name = title }
}

// WithDescription sets the test description
func WithDescription(description string) PageOption {
	return func(r *domain.Result) { r.Description = description }
}

// WithSeverity sets the severity label (blocker, critical, normal, minor, trivial)
func WithSeverity(severity string) PageOption {
	return WithLabel("severity", severity)
}

// WithEpic, WithFeature and WithStory place the test in the behaviours tree
func WithEpic(epic string) PageOption       { return WithLabel("epic", epic) }
func WithFeature(feature string) PageOption { return WithLabel("feature", feature) }
func WithStory(story string) PageOption     { return WithLabel("story", story) }

// WithTag adds a tag label, the equivalent of a test marker
func WithTag(tag string) PageOption {
	return WithLabel("tag", tag)
}

// recorder accumulates one test's report entry and implements Attacher
type recorder struct {
	writer *storage.ResultWriter
	result domain.Result
	now    func() time.Time
}

func newRecorder(t testing.TB, writer *storage.ResultWriter, opts ...PageOption) *recorder {
	rec := &recorder{writer: writer, now: time.Now}

	name := t.Name()
	rec.result = domain.Result{
		Name:     name[strings.LastIndex(name, "/")+1:],
		FullName: name,
		Stage:    "finished",
		Start:    rec.now().UnixMilli(),
		Labels: []domain.Label{
			{Name: "suite", Value: strings.SplitN(name, "/", 2)[0]},
			{Name: "framework", Value: "playwright-go"},
			{Name: "language", Value: "go"},
		},
	}
	for _, opt := range opts {
		opt(&rec.result)
	}
	return rec
}

// Attach implements Attacher
func (r *recorder) Attach(name, mimeType, ext string, body []byte) error {
	att, err := r.writer.WriteAttachment(name, mimeType, ext, body)
	if err != nil {
		return err
	}
	r.result.Attachments = append(r.result.Attachments, att)
	return nil
}

// finish stamps the outcome of t and writes the result artifact
func (r *recorder) finish(t testing.TB) error {
	r.result.Stop = r.now().UnixMilli()
	r.result.Status = statusOf(t)
	if r.result.Status == domain.StatusFailed {
		r.result.StatusDetails.Message = fmt.Sprintf("%s failed, see attachments and test log", t.Name())
	}

	if _, err := r.writer.WriteResult(&r.result); err != nil {
		return fmt.Errorf("record result for %s: %w", t.Name(), err)
	}
	return nil
}

func statusOf(t testing.TB) domain.Status {
	switch {
	case t.Failed():
		return domain.StatusFailed
	case t.Skipped():
		return domain.StatusSkipped
	default:
		return domain.StatusPassed
	}
}
