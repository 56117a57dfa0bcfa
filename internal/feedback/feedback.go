// Package feedback submits and summarizes product reviews.
package feedback

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	MaxTitleLength   = 100
	MaxCommentLength = 1000
)

type reviewAPI interface {
	CreateReview(ctx context.Context, req apiclient.ReviewRequest) (*domain.Review, error)
	ListReviews(ctx context.Context, productID string) (*apiclient.ReviewPage, error)
}

type Service struct {
	api    reviewAPI
	logger *logrus.Entry
}

func New(api reviewAPI, logger *logrus.Entry) *Service {
	return &Service{api: api, logger: logger}
}

// Draft is the review form.
type Draft struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Submit validates d and posts it. A rating of 0 means no star was picked and is
// rejected before any network call.
func (s *Service) Submit(ctx context.Context, d Draft) (*domain.Review, error) {
	productID := strings.TrimSpace(d.ProductID)
	title := strings.TrimSpace(d.Title)
	comment := strings.TrimSpace(d.Comment)
	switch {
	case productID == "":
		return nil, domain.Invalid("product_id", "required")
	case d.Rating < 1 || d.Rating > 5:
		return nil, domain.Invalid("rating", "must be between 1 and 5")
	case comment == "":
		return nil, domain.Invalid("comment", "required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return nil, domain.Invalid("title", fmt.Sprintf("at most %d characters", MaxTitleLength))
	case utf8.RuneCountInString(comment) > MaxCommentLength:
		return nil, domain.Invalid("comment", fmt.Sprintf("at most %d characters", MaxCommentLength))
	}

	body := comment
	if title != "" {
		body = title + "\n\n" + comment
	}
	review, err := s.api.CreateReview(ctx, apiclient.ReviewRequest{ProductID: productID, Rating: d.Rating, Comment: body})
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"product_id": productID, "rating": d.Rating}).Info("review submitted")
	return review, nil
}

// Page is the review list of one product with its summary.
type Page struct {
	Reviews []domain.Review    `json:"reviews"`
	Stats   domain.RatingStats `json:"stats"`
}

// Load fetches the reviews of a product. Stats are computed locally when the
// backend does not send them.
func (s *Service) Load(ctx context.Context, productID string, by SortOrder) (*Page, error) {
	res, err := s.api.ListReviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	stats := Summarize(res.Reviews)
	if res.Stats != nil {
		stats = *res.Stats
	}
	return &Page{Reviews: SortReviews(res.Reviews, by), Stats: stats}, nil
}

// Summarize computes the rating stats of reviews. The average is rounded to one
// decimal. Ratings outside 1..5 are ignored.
func Summarize(reviews []domain.Review) domain.RatingStats {
	var stats domain.RatingStats
	sum := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		stats.RatingDistribution[r.Rating-1]++
		stats.TotalReviews++
		sum += r.Rating
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*10) / 10
	}
	return stats
}

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortRating SortOrder = "rating"
)

// SortReviews returns a sorted copy. Newest compares created_at as text, which
// orders the backend's ISO-8601 timestamps.
func SortReviews(reviews []domain.Review, by SortOrder) []domain.Review {
	out := append([]domain.Review(nil), reviews...)
	switch by {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	}
	return out
}
