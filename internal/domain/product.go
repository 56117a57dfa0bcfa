package domain

// Product is a glass product priced per square foot.
type Product struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	Name           string   `json:"name" yaml:"name" validate:"required"`
	Category       string   `json:"category" yaml:"category"`
	Description    string   `json:"description" yaml:"description"`
	BasePrice      float64  `json:"basePrice" yaml:"basePrice" validate:"gte=0"`
	Image          string   `json:"image,omitempty" yaml:"image"`
	Specifications []string `json:"specifications" yaml:"specifications"`
	InStock        bool     `json:"in_stock,omitempty" yaml:"inStock"`
	StockQuantity  int      `json:"stock_quantity,omitempty" yaml:"stockQuantity"`
}

// NewProduct is the body of POST /products.
type NewProduct struct {
	Name           string   `json:"name" validate:"required"`
	Category       string   `json:"category" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	BasePrice      float64  `json:"basePrice" validate:"gt=0"`
	Image          string   `json:"image,omitempty"`
	Specifications []string `json:"specifications" validate:"required"`
}

// GiftProduct is a fixed-price gift item from the gifts view.
type GiftProduct struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty" yaml:"originalPrice"`
	Image         string   `json:"image" yaml:"image"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewCount   int      `json:"reviewCount" yaml:"reviewCount"`
	Popular       bool     `json:"popular" yaml:"popular"`
	Category      string   `json:"category" yaml:"category"`
	Features      []string `json:"features" yaml:"features"`
}
