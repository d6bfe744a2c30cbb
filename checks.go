// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hubforge/githubkit/internal/api"
)

// CheckRunStatus is the lifecycle phase of a check run or check suite.
type CheckRunStatus string

// Check run statuses known to the GitHub API.
const (
	CheckRunStatusQueued     CheckRunStatus = "queued"
	CheckRunStatusInProgress CheckRunStatus = "in_progress"
	CheckRunStatusCompleted  CheckRunStatus = "completed"
)

// String implements [fmt.Stringer].
func (s CheckRunStatus) String() string {
	if s == CheckRunStatusInProgress {
		return "in progress"
	}
	return string(s)
}

// CheckRunConclusion is the outcome of a completed check run or check
// suite.
type CheckRunConclusion string

// Check run conclusions known to the GitHub API.
const (
	CheckRunConclusionSuccess        CheckRunConclusion = "success"
	CheckRunConclusionFailure        CheckRunConclusion = "failure"
	CheckRunConclusionNeutral        CheckRunConclusion = "neutral"
	CheckRunConclusionSkipped        CheckRunConclusion = "skipped"
	CheckRunConclusionCancelled      CheckRunConclusion = "cancelled"
	CheckRunConclusionTimedOut       CheckRunConclusion = "timed_out"
	CheckRunConclusionActionRequired CheckRunConclusion = "action_required"
	CheckRunConclusionStale          CheckRunConclusion = "stale"
)

// String implements [fmt.Stringer].
func (c CheckRunConclusion) String() string {
	switch c {
	case CheckRunConclusionTimedOut:
		return "timed out"
	case CheckRunConclusionActionRequired:
		return "action required"
	default:
		return string(c)
	}
}

// CheckRunOutput is the rich output GitHub renders for a check run.
type CheckRunOutput struct {
	// Title of the check run.
	Title string `json:"title"`

	// Summary of the check run. Supports markdown.
	Summary string `json:"summary"`

	// Details of the check run. Supports markdown.
	Text string `json:"text,omitempty"`
}

// CheckSuite groups the check runs created for a push. Its status and
// conclusion are derived from its check runs.
type CheckSuite struct {
	// Unique id of the check suite.
	ID int64 `json:"id"`

	// Head commit the suite was created for.
	HeadSHA string `json:"head_sha,omitempty"`

	// Status of the check suite.
	Status CheckRunStatus `json:"status,omitempty"`

	// Conclusion of the check suite. Only set once completed.
	Conclusion CheckRunConclusion `json:"conclusion,omitempty"`

	// Latest number of check runs that are part of the suite.
	LatestCheckRunsCount int64 `json:"latest_check_runs_count,omitempty"`
}

// CheckRun performs an arbitrary task for a push, e.g. running tests or
// static analysis, and reports its outcome back to GitHub.
//
// The conclusion of a check run is only set when its status is
// completed.
type CheckRun struct {
	// Unique id of the check run.
	ID int64 `json:"id"`

	// Name of the check run.
	Name string `json:"name"`

	// Head commit the run was created for.
	HeadSHA string `json:"head_sha,omitempty"`

	// Status of the check run.
	Status CheckRunStatus `json:"status,omitempty"`

	// Conclusion of the check run. Only set once completed.
	Conclusion CheckRunConclusion `json:"conclusion,omitempty"`

	// Time at which the run was started.
	StartedAt *api.Timestamp `json:"started_at,omitempty"`

	// Time at which the run completed.
	CompletedAt *api.Timestamp `json:"completed_at,omitempty"`

	// Rich output rendered for the run.
	Output *CheckRunOutput `json:"output,omitempty"`

	// Check suite the run belongs to.
	CheckSuite *CheckSuite `json:"check_suite,omitempty"`
}

// CreateCheckRunInput is the payload for [Client.CreateCheckRun].
type CreateCheckRunInput struct {
	// Name of the check run. Required.
	Name string `json:"name"`

	// Head commit to create the run for. Required.
	HeadSHA string `json:"head_sha"`

	Status      CheckRunStatus     `json:"status,omitempty"`
	Conclusion  CheckRunConclusion `json:"conclusion,omitempty"`
	CompletedAt *api.Timestamp     `json:"completed_at,omitempty"`
	Output      *CheckRunOutput    `json:"output,omitempty"`
}

// UpdateCheckRunInput is the payload for [Client.UpdateCheckRun]. Empty
// fields are left unchanged.
type UpdateCheckRunInput struct {
	Name        string             `json:"name,omitempty"`
	Status      CheckRunStatus     `json:"status,omitempty"`
	Conclusion  CheckRunConclusion `json:"conclusion,omitempty"`
	CompletedAt *api.Timestamp     `json:"completed_at,omitempty"`
	Output      *CheckRunOutput    `json:"output,omitempty"`
}

// checkRunsResponse is the list envelope of the check runs endpoint.
type checkRunsResponse struct {
	TotalCount int64      `json:"total_count"`
	CheckRuns  []CheckRun `json:"check_runs"`
}

// checkSuitesResponse is the list envelope of the check suites endpoint.
type checkSuitesResponse struct {
	TotalCount  int64        `json:"total_count"`
	CheckSuites []CheckSuite `json:"check_suites"`
}

// CreateCheckRun creates a new check run for a head commit.
func (c *Client) CreateCheckRun(ctx context.Context, installationID uint64, owner, repo string, input CreateCheckRunInput) (*CheckRun, error) {
	path, err := url.JoinPath("repos", owner, repo, "check-runs")
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid check run path: %w", err)
	}
	return Post[*CheckRun](ctx, c, installationID, path, input)
}

// UpdateCheckRun updates an existing check run, typically to flip its
// status or record a conclusion and output.
func (c *Client) UpdateCheckRun(ctx context.Context, installationID uint64, owner, repo string, checkRunID int64, input UpdateCheckRunInput) (*CheckRun, error) {
	path, err := url.JoinPath("repos", owner, repo, "check-runs",
		strconv.FormatInt(checkRunID, 10))
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid check run path: %w", err)
	}
	return Patch[*CheckRun](ctx, c, installationID, path, input)
}

// ListCheckRuns lists the check runs of a check suite. Returns a single
// page, which covers the suite sizes apps create in practice.
func (c *Client) ListCheckRuns(ctx context.Context, installationID uint64, owner, repo string, checkSuiteID int64) ([]CheckRun, error) {
	path, err := url.JoinPath("repos", owner, repo, "check-suites",
		strconv.FormatInt(checkSuiteID, 10), "check-runs")
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid check suite path: %w", err)
	}

	resp, err := Get[checkRunsResponse](ctx, c, installationID, path)
	if err != nil {
		return nil, err
	}
	return resp.CheckRuns, nil
}

// ListCheckSuites lists the check suites created for a commit. Returns
// a single page.
func (c *Client) ListCheckSuites(ctx context.Context, installationID uint64, owner, repo, ref string) ([]CheckSuite, error) {
	path, err := url.JoinPath("repos", owner, repo, "commits", ref, "check-suites")
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid commit path: %w", err)
	}

	resp, err := Get[checkSuitesResponse](ctx, c, installationID, path)
	if err != nil {
		return nil, err
	}
	return resp.CheckSuites, nil
}
