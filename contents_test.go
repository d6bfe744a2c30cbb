// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFile(t *testing.T) {
	t.Run("base64-file", func(t *testing.T) {
		content := "# hello-world\n\nA sample repository.\n"
		// GitHub wraps base64 payloads with newlines every 60 chars.
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		wrapped := encoded[:20] + "\n" + encoded[20:]

		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/README.md",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprintf(w, `{
						"type": "file",
						"name": "README.md",
						"path": "README.md",
						"sha": "3d21ec53a331a6f037a91c368710b99387d012c1",
						"size": %d,
						"encoding": "base64",
						"content": %q
					}`, len(content), wrapped)
				})
		})
		client := newTestClient(t, mux)

		file, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "README.md")
		require.NoError(t, err)
		assert.Equal(t, "README.md", file.Name)
		assert.Equal(t, "README.md", file.Path)
		assert.Equal(t, "3d21ec53a331a6f037a91c368710b99387d012c1", file.SHA)
		assert.Equal(t, int64(len(content)), file.Size)
		assert.Equal(t, []byte(content), file.Content)
	})

	t.Run("nested-path", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/docs/guide.md",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `{
						"type": "file",
						"name": "guide.md",
						"path": "docs/guide.md",
						"encoding": "base64",
						"content": "Z3VpZGU="
					}`)
				})
		})
		client := newTestClient(t, mux)

		file, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "docs/guide.md")
		require.NoError(t, err)
		assert.Equal(t, []byte("guide"), file.Content)
	})

	t.Run("directory-returns-array", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/docs",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `[
						{"type": "file", "name": "guide.md", "path": "docs/guide.md"}
					]`)
				})
		})
		client := newTestClient(t, mux)

		_, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "docs")
		require.ErrorIs(t, err, ErrPathIsDirectory)
	})

	t.Run("directory-object", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/docs",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `{"type": "dir", "name": "docs", "path": "docs"}`)
				})
		})
		client := newTestClient(t, mux)

		_, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "docs")
		require.ErrorIs(t, err, ErrPathIsDirectory)
	})

	t.Run("none-encoding-large-file", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/big.bin",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `{
						"type": "file",
						"name": "big.bin",
						"path": "big.bin",
						"size": 3145728,
						"encoding": "none",
						"content": ""
					}`)
				})
		})
		client := newTestClient(t, mux)

		file, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "big.bin")
		require.NoError(t, err)
		assert.Empty(t, file.Content)
		assert.Equal(t, int64(3145728), file.Size)
	})

	t.Run("unsupported-encoding", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/odd.bin",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `{
						"type": "file",
						"name": "odd.bin",
						"encoding": "rot13",
						"content": "abcd"
					}`)
				})
		})
		client := newTestClient(t, mux)

		_, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "odd.bin")
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("invalid-base64", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {
			mux.HandleFunc("GET /repos/octocat/hello-world/contents/broken",
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `{
						"type": "file",
						"name": "broken",
						"encoding": "base64",
						"content": "!!! not base64 !!!"
					}`)
				})
		})
		client := newTestClient(t, mux)

		_, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "broken")
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("missing-file", func(t *testing.T) {
		mux := resourceMux(func(mux *http.ServeMux) {})
		client := newTestClient(t, mux)

		_, err := client.GetFile(context.Background(), 42, "octocat", "hello-world", "nope.md")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}
