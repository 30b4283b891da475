package domain

import "time"

// ProviderResult is the outcome of one provider's action within a dispatch.
type ProviderResult struct {
	Provider string
	Err      error
	Duration time.Duration
}

// OK returns true if the provider's action succeeded.
func (r ProviderResult) OK() bool {
	return r.Err == nil
}

// DispatchReport aggregates every handled provider for one request.
// Results are in registration order.
type DispatchReport struct {
	Request Request
	Results []ProviderResult
	DryRun  bool
}

// Handled returns true if at least one provider claimed the request.
func (r *DispatchReport) Handled() bool {
	return r != nil && len(r.Results) > 0
}

// Failed returns the results whose action returned an error.
func (r *DispatchReport) Failed() []ProviderResult {
	if r == nil {
		return nil
	}
	var failed []ProviderResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Succeeded returns true if at least one provider ran and none failed.
func (r *DispatchReport) Succeeded() bool {
	return r.Handled() && len(r.Failed()) == 0
}

// Providers returns the names of the handled providers in order.
func (r *DispatchReport) Providers() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		names[i] = res.Provider
	}
	return names
}

// DispatchStatus is the state of one provider within a dispatch.
type DispatchStatus string

// Dispatch statuses.
const (
	DispatchStarted   DispatchStatus = "started"
	DispatchSucceeded DispatchStatus = "succeeded"
	DispatchFailed    DispatchStatus = "failed"
	DispatchPlanned   DispatchStatus = "planned"
)

// DispatchEvent is emitted to the user while a dispatch runs.
type DispatchEvent struct {
	Provider string
	Request  Request
	Status   DispatchStatus
	Err      error
}
