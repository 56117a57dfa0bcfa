package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"
	"glassstore/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	sent []apiclient.ReviewRequest
	page *apiclient.ReviewPage
	err  error
}

func (s *stubAPI) CreateReview(_ context.Context, req apiclient.ReviewRequest) (*domain.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, req)
	return &domain.Review{ID: "r1", ProductID: req.ProductID, Rating: req.Rating, Comment: req.Comment}, nil
}

func (s *stubAPI) ListReviews(context.Context, string) (*apiclient.ReviewPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func TestSubmitRejectsZeroRating(t *testing.T) {
	api := &stubAPI{}
	_, err := New(api, logging.Discard()).Submit(context.Background(), Draft{ProductID: "p1", Rating: 0, Comment: "nice"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rating", vErr.Field)
	assert.Empty(t, api.sent)
}

func TestSubmitJoinsTitleAndComment(t *testing.T) {
	api := &stubAPI{}
	svc := New(api, logging.Discard())

	_, err := svc.Submit(context.Background(), Draft{ProductID: "p1", Rating: 5, Title: "Great", Comment: "Clear glass"})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), Draft{ProductID: "p1", Rating: 4, Comment: "Fine"})
	require.NoError(t, err)

	require.Len(t, api.sent, 2)
	assert.Equal(t, "Great\n\nClear glass", api.sent[0].Comment)
	assert.Equal(t, "Fine", api.sent[1].Comment)
}

func TestSubmitLengthLimits(t *testing.T) {
	svc := New(&stubAPI{}, logging.Discard())
	_, err := svc.Submit(context.Background(), Draft{ProductID: "p1", Rating: 3, Title: strings.Repeat("x", 101), Comment: "ok"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestSubmitWrapsBackendError(t *testing.T) {
	api := &stubAPI{err: &apiclient.HTTPStatusError{Status: 400, Body: `{"error":"Rating must be between 1 and 5"}`}}
	_, err := New(api, logging.Discard()).Submit(context.Background(), Draft{ProductID: "p1", Rating: 3, Comment: "ok"})
	var statusErr *apiclient.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]domain.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 0}})
	assert.Equal(t, 3, stats.TotalReviews)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, [5]int{0, 0, 0, 2, 1}, stats.RatingDistribution)

	assert.Equal(t, domain.RatingStats{}, Summarize(nil))
}

func TestLoadUsesServerStatsWhenPresent(t *testing.T) {
	reviews := []domain.Review{
		{ID: "a", Rating: 3, CreatedAt: "2025-01-01T00:00:00"},
		{ID: "b", Rating: 5, CreatedAt: "2025-02-01T00:00:00"},
	}
	api := &stubAPI{page: &apiclient.ReviewPage{Reviews: reviews}}
	svc := New(api, logging.Discard())

	page, err := svc.Load(context.Background(), "p1", SortNewest)
	require.NoError(t, err)
	assert.Equal(t, "b", page.Reviews[0].ID)
	assert.Equal(t, 4.0, page.Stats.AverageRating)

	api.page.Stats = &domain.RatingStats{AverageRating: 4.9, TotalReviews: 10}
	page, err = svc.Load(context.Background(), "p1", SortRating)
	require.NoError(t, err)
	assert.Equal(t, 4.9, page.Stats.AverageRating)
	assert.Equal(t, "b", page.Reviews[0].ID)
}
