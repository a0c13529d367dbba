// Package doctor runs health checks over the configuration, the catalog and
// the saved undo history.
package doctor

import (
	"context"
	"encoding/json"
)

type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckItem is one line of a check's report.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Result groups the items reported by a single check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

func (r *Result) Pass(label, detail string) { r.add(StatusPass, label, detail) }

func (r *Result) Warn(label, detail string) { r.add(StatusWarn, label, detail) }

func (r *Result) Fail(label, detail string) { r.add(StatusFail, label, detail) }

func (r *Result) add(status Status, label, detail string) {
	r.Items = append(r.Items, CheckItem{Label: label, Status: status, Detail: detail})
}

type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll runs checks in order. Checks not yet started when ctx is cancelled
// are skipped.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if ctx.Err() != nil {
			break
		}
		results = append(results, check.Run(ctx))
	}
	return results
}

// Tally counts items by status across results.
type Tally struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Healthy reports whether nothing failed. Warnings do not count.
func (t Tally) Healthy() bool {
	return t.Failed == 0
}

func Count(results []Result) Tally {
	var t Tally
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				t.Passed++
			case StatusWarn:
				t.Warned++
			case StatusFail:
				t.Failed++
			}
		}
	}
	return t
}
