package gh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient("test-token", server.URL)
	require.NoError(t, err)
	return client
}

func TestListRepositoriesPaginatesUntilEmpty(t *testing.T) {
	var requestedPages []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/repos", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("per_page"))
		require.Equal(t, "updated", r.URL.Query().Get("sort"))
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)
		switch page {
		case "1":
			fmt.Fprint(w, `[{"name": "alpha", "full_name": "spam/alpha"}, {"name": "beta", "full_name": "spam/beta"}]`)
		case "2":
			fmt.Fprint(w, `[{"name": "gamma", "full_name": "spam/gamma"}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))

	repos, err := client.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, requestedPages)
	require.Len(t, repos, 3)
	require.Equal(t, "spam/alpha", repos[0].FullName)
	require.Equal(t, "spam/gamma", repos[2].FullName)
}

func TestGetContentsDecodesBase64(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/spam/widget/contents/README.md", r.URL.Path)
		require.Equal(t, "main", r.URL.Query().Get("ref"))
		// GitHub wraps the base64 payload with newlines.
		content := base64.StdEncoding.EncodeToString([]byte("# Widget\n"))
		body := map[string]string{
			"name":     "README.md",
			"path":     "README.md",
			"sha":      "abc123",
			"content":  content[:4] + "\n" + content[4:],
			"encoding": "base64",
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))

	file, err := client.GetContents(context.Background(), "spam", "widget", "README.md", "main")
	require.NoError(t, err)
	require.Equal(t, "# Widget\n", file.Text)
	require.Equal(t, "abc123", file.SHA)
}

func TestGetContentsNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))

	_, err := client.GetContents(context.Background(), "spam", "widget", "README.md", "")
	require.Error(t, err)
	require.True(t, IsNotFound(err))
	require.False(t, IsHTTPUnauthorized(err))
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	}))

	_, err := client.ListRepositories(context.Background())
	require.Error(t, err)
	require.True(t, IsHTTPUnauthorized(err))
	require.False(t, IsNotFound(err))
}

func TestUpdateRepository(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PATCH", r.Method)
		require.Equal(t, "/repos/spam/widget", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{}`)
	}))

	err := client.UpdateRepository(context.Background(), "spam", "widget", UpdateRepositoryOpts{
		Description: Ptr("a widget maker"),
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"description": "a widget maker"}, body)
}

func TestReplaceAllTopics(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PUT", r.Method)
		require.Equal(t, "/repos/spam/widget/topics", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{}`)
	}))

	err := client.ReplaceAllTopics(context.Background(), "spam", "widget", []string{"go", "cli"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"names": []any{"go", "cli"}}, body)
}

func TestPutContents(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PUT", r.Method)
		require.Equal(t, "/repos/spam/widget/contents/README.md", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	}))

	err := client.PutContents(context.Background(), "spam", "widget", "README.md", PutContentsOpts{
		Message: "docs: add README",
		Content: "# Widget",
	})
	require.NoError(t, err)
	require.Equal(t, "docs: add README", body["message"])
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("# Widget")), body["content"])
	_, hasSHA := body["sha"]
	require.False(t, hasSHA)
}

func TestGetTree(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/spam/widget/git/trees/main", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{"tree": [{"path": "go.mod", "type": "blob"}, {"path": "cmd", "type": "tree"}], "truncated": false}`)
	}))

	tree, err := client.GetTree(context.Background(), "spam", "widget", "main")
	require.NoError(t, err)
	require.Len(t, tree.Entries, 2)
	require.Equal(t, "go.mod", tree.Entries[0].Path)
	require.Equal(t, "blob", tree.Entries[1].Type)
	require.False(t, tree.Truncated)
}
