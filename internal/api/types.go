// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package api

// Repository is the fragment of a repository payload the token
// exchange response includes.
type Repository struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// InstallationTokenResponse is returned by the installation access
// token endpoint.
//
// https://docs.github.com/en/rest/apps/apps?apiVersion=2022-11-28#create-an-installation-access-token-for-an-app
type InstallationTokenResponse struct {
	Token        string            `json:"token,omitempty"`
	Exp          *Timestamp        `json:"expires_at,omitempty"`
	Permissions  map[string]string `json:"permissions,omitempty"`
	Repositories []*Repository     `json:"repositories,omitempty"`
}

// ErrorResponse is GitHub's error envelope. Not all error responses
// carry it.
type ErrorResponse struct {
	Message          string `json:"message,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// ContentsResponse is returned by the repository contents endpoint for
// a single file.
//
// https://docs.github.com/en/rest/repos/contents?apiVersion=2022-11-28#get-repository-content
type ContentsResponse struct {
	Type     string `json:"type,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Name     string `json:"name,omitempty"`
	Path     string `json:"path,omitempty"`
	SHA      string `json:"sha,omitempty"`
	Content  string `json:"content,omitempty"`
}
