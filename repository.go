// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"context"
	"fmt"
	"net/url"
)

// Visibility indicates who can see a resource. Private resources are
// only accessible to the owner, team members and collaborators; public
// resources can be seen by anyone.
type Visibility string

// Repository visibilities known to the GitHub API.
const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// Repository stores source code on GitHub. Repositories are the core
// resource, almost everything else is organized around them.
//
// Repositories are uniquely identified by the combination of their
// owner and name. The numeric id never changes, even when the
// repository is renamed.
type Repository struct {
	// Unique id of the repository.
	ID int64 `json:"id"`

	// Name of the repository, without the owner prefix.
	Name string `json:"name"`

	// Description of the repository. May be empty.
	Description string `json:"description,omitempty"`

	// Owner of the repository.
	Owner Account `json:"owner"`

	// Visibility of the repository.
	Visibility Visibility `json:"visibility"`
}

// FullName returns the owner's login and the repository's name joined
// with a slash. The combination uniquely identifies a repository on
// GitHub and is the form used to reference repositories externally.
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner.Login, r.Name)
}

// String implements [fmt.Stringer].
func (r Repository) String() string {
	return r.FullName()
}

// GetRepository fetches a single repository by owner and name.
func (c *Client) GetRepository(ctx context.Context, installationID uint64, owner, repo string) (*Repository, error) {
	path, err := url.JoinPath("repos", owner, repo)
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid repository path: %w", err)
	}
	return Get[*Repository](ctx, c, installationID, path)
}
