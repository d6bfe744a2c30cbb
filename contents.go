// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hubforge/githubkit/internal/api"
)

// File is a single file downloaded from a repository.
type File struct {
	// Name of the file, without directories.
	Name string

	// Path of the file within the repository.
	Path string

	// Git blob SHA of the file.
	SHA string

	// Size of the file in bytes, as reported by the API.
	Size int64

	// Decoded file content.
	Content []byte
}

// GetFile downloads a single file from a repository.
//
// When the path resolves to a directory instead of a file, this fails
// with [ErrPathIsDirectory].
func (c *Client) GetFile(ctx context.Context, installationID uint64, owner, repo, path string) (*File, error) {
	p, err := url.JoinPath("repos", owner, repo, "contents", path)
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid contents path: %w", err)
	}

	// The contents endpoint returns an object for a file and an array
	// for a directory, so the body shape has to be inspected before
	// decoding.
	raw, err := Get[json.RawMessage](ctx, c, installationID, p)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, fmt.Errorf("%w: %s", ErrPathIsDirectory, path)
	}

	contents := api.ContentsResponse{}
	if err = json.Unmarshal(raw, &contents); err != nil {
		return nil, &DecodeError{err: err}
	}

	if contents.Type == "dir" {
		return nil, fmt.Errorf("%w: %s", ErrPathIsDirectory, path)
	}

	data, err := decodeContent(contents)
	if err != nil {
		return nil, err
	}

	return &File{
		Name:    contents.Name,
		Path:    contents.Path,
		SHA:     contents.SHA,
		Size:    contents.Size,
		Content: data,
	}, nil
}

// decodeContent decodes the content field of a contents response.
// GitHub wraps base64 payloads with newlines.
func decodeContent(contents api.ContentsResponse) ([]byte, error) {
	switch contents.Encoding {
	case "base64":
		data, err := base64.StdEncoding.DecodeString(
			string(bytes.ReplaceAll([]byte(contents.Content), []byte("\n"), nil)))
		if err != nil {
			return nil, &DecodeError{err: fmt.Errorf("invalid base64 content: %w", err)}
		}
		return data, nil
	case "", "none":
		// Large files omit inline content.
		return []byte(contents.Content), nil
	default:
		return nil, &DecodeError{
			err: fmt.Errorf("unsupported content encoding: %q", contents.Encoding),
		}
	}
}
