package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/config"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newTestClient(baseURL string) *CommentClient {
	return NewCommentClient(config.ExternalConfig{CommentsBaseURL: baseURL, TimeoutSeconds: 2})
}

func TestFetchRandomComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"body":"first\nline","email":"a@example.com"},{"body":"second","email":"b@example.com"}]`))
	}))
	defer server.Close()

	comment, err := newTestClient(server.URL).FetchRandomComment(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, comment.Text, "\n")
	assert.Contains(t, comment.User, "@example.com")
}

func TestFetchRandomCommentEmptyCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRandomComment(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFetchRandomCommentUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRandomComment(context.Background())
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestMapCommentFlattensNewlines(t *testing.T) {
	comment := MapComment("line one\nline two\nline three", "user@example.com")
	assert.Equal(t, "line one line two line three", comment.Text)
	assert.Equal(t, "user@example.com", comment.User)
}
