package external

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/config"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Comment is the enrichment payload stored on a ticket: the body of a
// remotely fetched comment with newlines flattened, and its author.
type Comment struct {
	Text string
	User string
}

type wireComment struct {
	Body  string `json:"body"`
	Email string `json:"email"`
}

// CommentClient fetches pseudo-random comments from the external source.
type CommentClient struct {
	baseURL string
	client  *http.Client
}

// NewCommentClient builds a client with the configured fixed timeout.
func NewCommentClient(cfg config.ExternalConfig) *CommentClient {
	return &CommentClient{
		baseURL: strings.TrimRight(cfg.CommentsBaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// FetchRandomComment retrieves the comment collection and picks one at
// random. Any failure leaves the caller free to keep ticket state
// untouched.
func (c *CommentClient) FetchRandomComment(ctx context.Context) (*Comment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/comments", nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("fetch comments: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInternalError(fmt.Errorf("external comment source returned status %d", resp.StatusCode))
	}

	var comments []wireComment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("decode comments: %w", err))
	}
	if len(comments) == 0 {
		return nil, apperrors.NewNotFound("No comments found.", nil)
	}

	picked := comments[rand.Intn(len(comments))]
	return MapComment(picked.Body, picked.Email), nil
}

// MapComment converts a raw external comment into the stored form:
// newlines are replaced with spaces, the email becomes the author.
func MapComment(body, email string) *Comment {
	return &Comment{
		Text: strings.ReplaceAll(body, "\n", " "),
		User: email,
	}
}
