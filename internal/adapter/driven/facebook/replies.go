package facebook

import (
	"context"
	"fmt"

	"pagepilot/internal/domain/model"
	"pagepilot/internal/redact"
)

type createdResponse struct {
	ID string `json:"id"`
}

// PostReply publishes a reply under the given comment and returns the
// identifier of the created reply.
func (c *Client) PostReply(ctx context.Context, commentID string, message string) (string, error) {
	res, err := c.r(ctx).
		SetFormData(map[string]string{"message": message}).
		SetResult(&createdResponse{}).
		Post("/" + commentID + "/comments")
	if err != nil {
		return "", fmt.Errorf("post reply to comment %s: %s", commentID, redact.Tokens(err.Error()))
	}
	if res.IsError() {
		return "", apiError("post reply", res)
	}

	created := res.Result().(*createdResponse)
	if created.ID == "" {
		return "", fmt.Errorf("post reply to comment %s: response missing id", commentID)
	}

	return created.ID, nil
}

// FetchComment retrieves the stored copy of a single comment including its
// hidden/private visibility flags.
func (c *Client) FetchComment(ctx context.Context, commentID string) (*model.Comment, error) {
	res, err := c.r(ctx).
		SetQueryParam("fields", "id,message,from,created_time,permalink_url,is_hidden,is_private,parent").
		SetResult(&graphComment{}).
		Get("/" + commentID)
	if err != nil {
		return nil, fmt.Errorf("fetch comment %s: %s", commentID, redact.Tokens(err.Error()))
	}
	if res.IsError() {
		return nil, apiError("fetch comment", res)
	}

	gc := res.Result().(*graphComment)
	comment := mapComment(*gc, "")
	return &comment, nil
}

// SetHidden hides or unhides a comment.
func (c *Client) SetHidden(ctx context.Context, commentID string, hidden bool) error {
	res, err := c.r(ctx).
		SetFormData(map[string]string{"is_hidden": fmt.Sprintf("%t", hidden)}).
		Post("/" + commentID)
	if err != nil {
		return fmt.Errorf("set hidden on comment %s: %s", commentID, redact.Tokens(err.Error()))
	}
	if res.IsError() {
		return apiError("set hidden", res)
	}

	return nil
}
