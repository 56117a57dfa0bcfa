package httpserver

import (
	"net/http"
	"strings"

	"glassstore/internal/catalog"
	"glassstore/internal/domain"

	"github.com/gin-gonic/gin"
)

// productView is a product with its display image already resolved.
type productView struct {
	domain.Product
	DisplayImage catalog.ResolvedImage `json:"display_image"`
}

func toProductView(p domain.Product) productView {
	return productView{
		Product: p,
		DisplayImage: catalog.ResolveProductImage(catalog.ImageInput{
			Image:       p.Image,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
		}),
	}
}

type giftView struct {
	domain.GiftProduct
	DisplayImage catalog.ResolvedImage `json:"display_image"`
}

func (h *handlers) listProducts(c *gin.Context) {
	listing, err := h.deps.Catalog.ListProducts(c.Request.Context(), catalog.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]productView, 0, len(listing.Products))
	for _, p := range listing.Products {
		views = append(views, toProductView(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   views,
		"categories": listing.Categories,
		"cached":     listing.Cached,
		"notice":     listing.Notice,
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Catalog.GetProduct(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductView(*p)})
}

func (h *handlers) listGifts(c *gin.Context) {
	gifts, categories := h.deps.Catalog.Gifts(c.Query("category"), catalog.ParseGiftSort(c.Query("sort")))
	views := make([]giftView, 0, len(gifts))
	for _, g := range gifts {
		views = append(views, giftView{
			GiftProduct: g,
			DisplayImage: catalog.ResolveProductImage(catalog.ImageInput{
				Image:       g.Image,
				Name:        g.Name,
				Description: g.Description,
				Category:    g.Category,
			}),
		})
	}
	c.JSON(http.StatusOK, gin.H{"gifts": views, "categories": categories})
}
