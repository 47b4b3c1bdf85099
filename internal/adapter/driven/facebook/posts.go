package facebook

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pagepilot/internal/domain/model"
	"pagepilot/internal/redact"
)

// createdTimeLayout is the Graph API timestamp format (ISO 8601 with a
// colonless zone offset).
const createdTimeLayout = "2006-01-02T15:04:05-0700"

type graphActor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type graphRef struct {
	ID string `json:"id"`
}

type graphPost struct {
	ID           string `json:"id"`
	PermalinkURL string `json:"permalink_url"`
}

type graphComment struct {
	ID           string      `json:"id"`
	Message      string      `json:"message"`
	From         *graphActor `json:"from"`
	CreatedTime  string      `json:"created_time"`
	PermalinkURL string      `json:"permalink_url"`
	Parent       *graphRef   `json:"parent"`
	IsHidden     bool        `json:"is_hidden"`
	IsPrivate    bool        `json:"is_private"`
}

type feedResponse struct {
	Data []graphPost `json:"data"`
}

type commentsResponse struct {
	Data []graphComment `json:"data"`
}

// FetchRecentPosts returns up to limit recent posts from the page feed,
// most recent first (Graph default ordering).
func (c *Client) FetchRecentPosts(ctx context.Context, pageID string, limit int) ([]model.Post, error) {
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"fields": "id,permalink_url",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&feedResponse{}).
		Get("/" + pageID + "/feed")
	if err != nil {
		return nil, fmt.Errorf("fetch feed for page %s: %s", pageID, redact.Tokens(err.Error()))
	}
	if res.IsError() {
		return nil, apiError("fetch feed", res)
	}

	feed := res.Result().(*feedResponse)
	posts := make([]model.Post, 0, len(feed.Data))
	for _, p := range feed.Data {
		if p.ID == "" {
			continue
		}
		posts = append(posts, model.Post{ID: p.ID, Permalink: p.PermalinkURL})
	}

	return posts, nil
}

// FetchComments returns up to limit comments for a post in chronological
// order. Comments with empty messages are dropped; threaded replies are
// dropped unless includeNested is set. filter=stream flattens the thread
// tree into a single sequence.
func (c *Client) FetchComments(ctx context.Context, postID string, limit int, includeNested bool) ([]model.Comment, error) {
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"fields": "id,message,from,created_time,permalink_url,parent",
			"filter": "stream",
			"order":  "chronological",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&commentsResponse{}).
		Get("/" + postID + "/comments")
	if err != nil {
		return nil, fmt.Errorf("fetch comments for post %s: %s", postID, redact.Tokens(err.Error()))
	}
	if res.IsError() {
		return nil, apiError("fetch comments", res)
	}

	body := res.Result().(*commentsResponse)
	comments := make([]model.Comment, 0, len(body.Data))
	for _, gc := range body.Data {
		if strings.TrimSpace(gc.Message) == "" {
			continue
		}
		if !includeNested && gc.Parent != nil && gc.Parent.ID != "" {
			continue
		}
		comments = append(comments, mapComment(gc, postID))
	}

	return comments, nil
}

func mapComment(gc graphComment, postID string) model.Comment {
	c := model.Comment{
		ID:        gc.ID,
		Message:   strings.TrimSpace(gc.Message),
		PostID:    postID,
		Permalink: gc.PermalinkURL,
		IsHidden:  gc.IsHidden,
		IsPrivate: gc.IsPrivate,
	}
	if gc.From != nil {
		c.AuthorID = gc.From.ID
		c.AuthorName = gc.From.Name
	}
	if t, err := time.Parse(createdTimeLayout, gc.CreatedTime); err == nil {
		c.CreatedAt = t
	}
	return c
}
