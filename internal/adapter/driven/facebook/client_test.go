package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClientWithBaseURL(srv.URL, "secret-token")
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchRecentPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page1/feed", r.URL.Path)
		assert.Equal(t, "secret-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "id,permalink_url", r.URL.Query().Get("fields"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		writeJSON(t, w, map[string]any{"data": []map[string]any{
			{"id": "p1", "permalink_url": "https://fb.example/p1"},
			{"id": "p2"},
			{"permalink_url": "https://fb.example/no-id"},
		}})
	})

	posts, err := c.FetchRecentPosts(context.Background(), "page1", 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "https://fb.example/p1", posts[0].Permalink)
	assert.Equal(t, "p2", posts[1].ID)
}

func TestFetchRecentPosts_APIError_RedactsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad request for access_token=secret-token"}}`))
	})

	_, err := c.FetchRecentPosts(context.Background(), "page1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.NotContains(t, err.Error(), "secret-token")
	assert.Contains(t, err.Error(), "access_token=REDACTED")
}

func TestFetchComments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p1/comments", r.URL.Path)
		assert.Equal(t, "stream", r.URL.Query().Get("filter"))
		assert.Equal(t, "chronological", r.URL.Query().Get("order"))

		writeJSON(t, w, map[string]any{"data": []map[string]any{
			{
				"id":            "c1",
				"message":       "  Do you deliver?  ",
				"from":          map[string]any{"id": "u1", "name": "Ada"},
				"created_time":  "2026-08-30T12:00:00+0000",
				"permalink_url": "https://fb.example/c1",
			},
			{"id": "c2", "message": "   "},
			{
				"id":      "c3",
				"message": "Nested answer",
				"parent":  map[string]any{"id": "c1"},
			},
		}})
	})

	comments, err := c.FetchComments(context.Background(), "p1", 50, true)
	require.NoError(t, err)
	require.Len(t, comments, 2, "blank-message comments are dropped")

	first := comments[0]
	assert.Equal(t, "c1", first.ID)
	assert.Equal(t, "Do you deliver?", first.Message, "messages arrive trimmed")
	assert.Equal(t, "u1", first.AuthorID)
	assert.Equal(t, "Ada", first.AuthorName)
	assert.Equal(t, "p1", first.PostID)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), first.CreatedAt.UTC())

	assert.Equal(t, "c3", comments[1].ID)
}

func TestFetchComments_ExcludesNested(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"data": []map[string]any{
			{"id": "c1", "message": "Top level"},
			{"id": "c2", "message": "Nested", "parent": map[string]any{"id": "c1"}},
		}})
	})

	comments, err := c.FetchComments(context.Background(), "p1", 50, false)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestPostReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/c1/comments", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Thanks for reaching out!", r.PostForm.Get("message"))

		writeJSON(t, w, map[string]any{"id": "reply1"})
	})

	id, err := c.PostReply(context.Background(), "c1", "Thanks for reaching out!")
	require.NoError(t, err)
	assert.Equal(t, "reply1", id)
}

func TestPostReply_MissingID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"success": true})
	})

	_, err := c.PostReply(context.Background(), "c1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestFetchComment_VisibilityFlags(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reply1", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"id":         "reply1",
			"message":    "Thanks!",
			"is_hidden":  true,
			"is_private": false,
		})
	})

	comment, err := c.FetchComment(context.Background(), "reply1")
	require.NoError(t, err)
	assert.Equal(t, "reply1", comment.ID)
	assert.Equal(t, "Thanks!", comment.Message)
	assert.True(t, comment.IsHidden)
	assert.False(t, comment.IsPrivate)
}

func TestSetHidden(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/c1", r.URL.Path)
		require.NoError(t, r.ParseForm())
		got = r.PostForm.Get("is_hidden")
		writeJSON(t, w, map[string]any{"success": true})
	})

	require.NoError(t, c.SetHidden(context.Background(), "c1", false))
	assert.Equal(t, "false", got)
}
