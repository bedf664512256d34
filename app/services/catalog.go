package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/pkg/cache"
	"github.com/shashiranjanraj/fitsetup/pkg/storage"
)

const (
	productCachePrefix = "products:"
	productCacheTTL    = 5 * time.Minute

	// LowStockThreshold marks products needing restock on the admin dashboard.
	LowStockThreshold = 10
)

// ProductStore is the slice of the product repository the catalog needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, f repositories.ProductFilter) ([]models.Product, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ImageUpload is one uploaded file from a multipart form.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type ProductInput struct {
	Name        string                 `json:"name" validate:"required,max=200"`
	SKU         string                 `json:"sku" validate:"nullable,max=50"`
	Description string                 `json:"description" validate:"nullable,max=5000"`
	ShortDesc   string                 `json:"shortDesc" validate:"nullable,max=300"`
	Price       float64                `json:"price" validate:"required,gt=0"`
	Discount    float64                `json:"discount" validate:"gte=0,lte=100"`
	Category    string                 `json:"category" validate:"required,in=Strength,Cardio,Functional,Accessories,Other"`
	SubCategory string                 `json:"subCategory" validate:"nullable,max=100"`
	Stock       int                    `json:"stock" validate:"gte=0"`
	Featured    bool                   `json:"featured"`
	Specs       map[string]interface{} `json:"specs"`
}

// ListQuery mirrors the catalog listing query string.
type ListQuery struct {
	Category    string
	SubCategory string
	Featured    *bool
	Search      string
	Sort        string
	Page        int
	PerPage     int
}

// ProductPage is a catalog listing page.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"perPage"`
}

// CatalogService owns products and their image gallery. Listings are cached
// in Redis; any catalog mutation drops the whole product cache prefix.
type CatalogService struct {
	products ProductStore
	images   storage.Disk
}

func NewCatalogService(products ProductStore, images storage.Disk) *CatalogService {
	return &CatalogService{products: products, images: images}
}

// List returns a filtered catalog page, served from cache when possible.
func (s *CatalogService) List(ctx context.Context, q ListQuery) (*ProductPage, error) {
	if q.PerPage <= 0 || q.PerPage > 100 {
		q.PerPage = 20
	}
	if q.Page < 1 {
		q.Page = 1
	}

	key := listCacheKey(q)
	var page ProductPage
	if cache.Get(key, &page) {
		return &page, nil
	}

	featured := q.Featured
	products, total, err := s.products.List(ctx, repositories.ProductFilter{
		Category:    q.Category,
		SubCategory: q.SubCategory,
		Featured:    featured,
		Search:      q.Search,
		Sort:        q.Sort,
		Page:        q.Page,
		PerPage:     q.PerPage,
	})
	if err != nil {
		return nil, err
	}

	page = ProductPage{Products: products, Total: total, Page: q.Page, PerPage: q.PerPage}
	_ = cache.Set(key, page, productCacheTTL)
	return &page, nil
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	key := productCachePrefix + "detail:" + id.Hex()
	var p models.Product
	if cache.Get(key, &p) {
		return &p, nil
	}

	found, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	_ = cache.Set(key, found, productCacheTTL)
	return found, nil
}

// Create stores a new product with its uploaded gallery. FinalPrice is always
// derived server side.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, uploads []ImageUpload) (*models.Product, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		SKU:         in.SKU,
		Description: in.Description,
		ShortDesc:   in.ShortDesc,
		Price:       in.Price,
		Discount:    in.Discount,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Stock:       in.Stock,
		Featured:    in.Featured,
		Specs:       in.Specs,
		Images:      []string{},
	}
	p.RecalculateFinalPrice()

	urls, err := s.storeImages(uploads)
	if err != nil {
		return nil, err
	}
	p.Images = urls

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	_ = cache.DelPrefix(productCachePrefix)
	return p, nil
}

// Update rewrites the product. keepImageURLs lists gallery URLs to retain;
// images absent from it are removed from the object store, and new uploads
// are appended after the kept ones.
func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput, keepImageURLs []string, uploads []ImageUpload) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	kept := make(map[string]bool, len(keepImageURLs))
	for _, u := range keepImageURLs {
		kept[u] = true
	}
	for _, u := range p.Images {
		if !kept[u] {
			if err := s.deleteImage(u); err != nil {
				return nil, fmt.Errorf("delete image %s: %w", u, err)
			}
		}
	}

	added, err := s.storeImages(uploads)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.SKU = in.SKU
	p.Description = in.Description
	p.ShortDesc = in.ShortDesc
	p.Price = in.Price
	p.Discount = in.Discount
	p.Category = in.Category
	p.SubCategory = in.SubCategory
	p.Stock = in.Stock
	p.Featured = in.Featured
	p.Specs = in.Specs
	p.Images = append(keepOrder(p.Images, kept), added...)
	p.RecalculateFinalPrice()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = cache.DelPrefix(productCachePrefix)
	return p, nil
}

// Delete removes the product and its gallery. An object-store failure aborts
// the deletion so the catalog never references images it silently lost.
func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	for _, u := range p.Images {
		if err := s.deleteImage(u); err != nil {
			return fmt.Errorf("delete image %s: %w", u, err)
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	_ = cache.DelPrefix(productCachePrefix)
	return nil
}

// storeImages writes uploads under products/ and returns their public URLs.
func (s *CatalogService) storeImages(uploads []ImageUpload) ([]string, error) {
	urls := []string{}
	for _, up := range uploads {
		name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFilename(up.Filename))
		path := "products/" + name
		if err := s.images.PutStream(path, up.Content); err != nil {
			return nil, fmt.Errorf("store image %s: %w", up.Filename, err)
		}
		urls = append(urls, s.images.URL(path))
	}
	return urls, nil
}

// deleteImage maps a public URL back to its object key and removes it.
// Foreign URLs (seeded data pointing at external CDNs) are left alone.
func (s *CatalogService) deleteImage(url string) error {
	idx := strings.Index(url, "/products/")
	if idx < 0 {
		return nil
	}
	return s.images.Delete(strings.TrimPrefix(url[idx:], "/"))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

func keepOrder(existing []string, kept map[string]bool) []string {
	out := []string{}
	for _, u := range existing {
		if kept[u] {
			out = append(out, u)
		}
	}
	return out
}

func listCacheKey(q ListQuery) string {
	featured := "any"
	if q.Featured != nil {
		featured = fmt.Sprintf("%t", *q.Featured)
	}
	return fmt.Sprintf("%slist:%s:%s:%s:%s:%s:%d:%d",
		productCachePrefix, q.Category, q.SubCategory, featured, q.Search, q.Sort, q.Page, q.PerPage)
}
