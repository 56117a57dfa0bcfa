package domain

// Review is a customer review of a product.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// RatingStats summarizes the reviews of one product. RatingDistribution[i] counts
// reviews with rating i+1.
type RatingStats struct {
	AverageRating      float64 `json:"average_rating"`
	TotalReviews       int     `json:"total_reviews"`
	RatingDistribution [5]int  `json:"rating_distribution"`
}
