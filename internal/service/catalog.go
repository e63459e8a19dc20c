package service

import (
	"context"
	"fmt"
	"log/slog"

	"bazaarbot/core/logger"
	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"
)

// ProductsStore is the product slice of the persistence gateway.
type ProductsStore interface {
	Create(ctx context.Context, name string, price int64, imageURL, description *string) (int64, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	UpdateField(ctx context.Context, id int64, field string, value any) error
	SoftDelete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
	Paginate(ctx context.Context, page, perPage int) (storage.Page[models.Product], error)
}

// ImagesStore is the gallery slice of the persistence gateway.
type ImagesStore interface {
	Add(ctx context.Context, productID int64, ref models.PhotoRef) error
	List(ctx context.Context, productID int64) ([]models.ProductImage, error)
	Paginate(ctx context.Context, productID int64, page, perPage int) (storage.Page[models.ProductImage], error)
	Delete(ctx context.Context, imageID int64) error
}

// Catalog manages products and their photo galleries.
type Catalog struct {
	products ProductsStore
	images   ImagesStore
	audit    *Audit
}

// NewCatalog builds the catalog service.
func NewCatalog(products ProductsStore, images ImagesStore, audit *Audit) *Catalog {
	return &Catalog{products: products, images: images, audit: audit}
}

// CreateProduct inserts the product collected by the creation flow. When a
// photo was queued during the flow it becomes the product's primary image
// right after the row exists.
func (s *Catalog) CreateProduct(ctx context.Context, adminID int64, name string, price int64, image *models.PhotoRef, description *string) (int64, error) {
	id, err := s.products.Create(ctx, name, price, nil, description)
	if err != nil {
		logger.Error(ctx, "service.catalog", "product.create.fail",
			slog.String("name", name),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("create product: %w", err)
	}
	if image != nil {
		if err := s.images.Add(ctx, id, *image); err != nil {
			// The product exists; losing the queued photo is recoverable
			// through the gallery menu.
			logger.Warn(ctx, "service.catalog", "product.image.attach.fail",
				slog.Int64("product_id", id),
				slog.String("err", err.Error()),
			)
		}
	}
	logger.Info(ctx, "service.catalog", "product.created",
		slog.Int64("product_id", id),
		slog.Int64("price", price),
	)
	_ = s.audit.Record(ctx, adminID, "product_added", fmt.Sprintf("product %q (#%d) added, price %d", name, id, price))
	return id, nil
}

// Product returns one product by id.
func (s *Catalog) Product(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// ProductWithImages returns the product and its ordered gallery.
func (s *Catalog) ProductWithImages(ctx context.Context, id int64) (*models.Product, []models.ProductImage, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	images, err := s.images.List(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, images, nil
}

// UpdateProductField writes one whitelisted product column.
func (s *Catalog) UpdateProductField(ctx context.Context, adminID, id int64, field string, value any) error {
	if err := s.products.UpdateField(ctx, id, field, value); err != nil {
		_ = s.audit.Record(ctx, adminID, "product_edit_failed", fmt.Sprintf("editing %s of product %d failed", field, id))
		return err
	}
	_ = s.audit.Record(ctx, adminID, "product_updated", fmt.Sprintf("product %d field %s updated", id, field))
	return nil
}

// DeleteProduct soft-deletes a product.
func (s *Catalog) DeleteProduct(ctx context.Context, adminID, id int64) error {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		_ = s.audit.Record(ctx, adminID, "product_delete_failed", fmt.Sprintf("deleting product %d failed", id))
		return err
	}
	_ = s.audit.Record(ctx, adminID, "product_deleted", fmt.Sprintf("product %d deactivated", id))
	return nil
}

// CountActive returns the number of active products.
func (s *Catalog) CountActive(ctx context.Context) (int, error) {
	return s.products.CountActive(ctx)
}

// PaginateProducts returns one catalog page.
func (s *Catalog) PaginateProducts(ctx context.Context, page, perPage int) (storage.Page[models.Product], error) {
	return s.products.Paginate(ctx, page, perPage)
}

// AddImage attaches an uploaded photo to an existing product.
func (s *Catalog) AddImage(ctx context.Context, adminID, productID int64, ref models.PhotoRef) error {
	if err := s.images.Add(ctx, productID, ref); err != nil {
		return fmt.Errorf("add image: %w", err)
	}
	_ = s.audit.Record(ctx, adminID, "product_image_added", fmt.Sprintf("image added to product %d", productID))
	return nil
}

// Images lists a product's gallery.
func (s *Catalog) Images(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	return s.images.List(ctx, productID)
}

// PaginateImages returns one gallery page.
func (s *Catalog) PaginateImages(ctx context.Context, productID int64, page, perPage int) (storage.Page[models.ProductImage], error) {
	return s.images.Paginate(ctx, productID, page, perPage)
}

// DeleteImage removes one gallery photo.
func (s *Catalog) DeleteImage(ctx context.Context, adminID, imageID int64) error {
	if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, adminID, "product_image_deleted", fmt.Sprintf("image %d deleted", imageID))
	return nil
}
