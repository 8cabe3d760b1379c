package github_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/zerosource"
	zsgithub "github.com/fwojciec/zerosource/github"
	"github.com/google/go-github/v58/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *zsgithub.Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return zsgithub.NewSource(client)
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	t.Run("parses owner and repo", func(t *testing.T) {
		t.Parallel()

		loc, err := zsgithub.ParseLocation("github:octo/app")

		require.NoError(t, err)
		assert.Equal(t, zsgithub.Location{Owner: "octo", Repo: "app"}, loc)
		assert.Equal(t, "github:octo/app", loc.String())
	})

	t.Run("parses ref", func(t *testing.T) {
		t.Parallel()

		loc, err := zsgithub.ParseLocation("github:octo/app@v1.2.0")

		require.NoError(t, err)
		assert.Equal(t, "v1.2.0", loc.Ref)
		assert.Equal(t, "github:octo/app@v1.2.0", loc.String())
	})

	t.Run("rejects malformed locations", func(t *testing.T) {
		t.Parallel()

		for _, location := range []string{"octo/app", "github:octo", "github:/app", "github:octo/", "github:a/b/c"} {
			_, err := zsgithub.ParseLocation(location)
			require.Error(t, err, location)
			assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err), location)
		}
	})
}

func TestSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("decodes README content", func(t *testing.T) {
		t.Parallel()

		readme := "# My App\n\n## Description\nDoes things.\n"
		var gotRef string
		src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/octo/app/readme", r.URL.Path)
			gotRef = r.URL.Query().Get("ref")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"type":"file","encoding":"base64","name":"README.md","path":"README.md","sha":"abc","content":%q}`,
				base64.StdEncoding.EncodeToString([]byte(readme)))
		})

		doc, err := src.Load(context.Background(), "github:octo/app@main")

		require.NoError(t, err)
		assert.Equal(t, "main", gotRef)
		assert.Equal(t, readme, doc.Content)
		assert.Equal(t, "octo/app", doc.Title)
		assert.Equal(t, "github:octo/app@main", doc.Location)
		assert.Equal(t, "README.md", doc.Metadata["path"])
	})

	t.Run("returns ENOTFOUND for missing README", func(t *testing.T) {
		t.Parallel()

		src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		_, err := src.Load(context.Background(), "github:octo/missing")

		require.Error(t, err)
		assert.Equal(t, zerosource.ENOTFOUND, zerosource.ErrorCode(err))
	})

	t.Run("returns error for server failures", func(t *testing.T) {
		t.Parallel()

		src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		})

		_, err := src.Load(context.Background(), "github:octo/app")

		require.Error(t, err)
		assert.Equal(t, zerosource.EINTERNAL, zerosource.ErrorCode(err))
	})

	t.Run("rejects malformed location before calling API", func(t *testing.T) {
		t.Parallel()

		src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("API should not be called")
		})

		_, err := src.Load(context.Background(), "github:nope")

		require.Error(t, err)
		assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
	})
}
