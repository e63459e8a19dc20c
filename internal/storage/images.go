package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bazaarbot/internal/models"
)

// ImageRepo persists product gallery photos.
type ImageRepo struct {
	db *sqlx.DB
}

// Add attaches an uploaded photo to a product.
func (r *ImageRepo) Add(ctx context.Context, productID int64, ref models.PhotoRef) error {
	const q = `
		INSERT INTO product_images (product_id, file_id, file_unique_id, file_size, width, height)
		VALUES ($1, $2, $3, NULLIF($4, 0), NULLIF($5, 0), NULLIF($6, 0))`
	if _, err := r.db.ExecContext(ctx, q, productID, ref.FileID, ref.FileUniqueID, ref.FileSize, ref.Width, ref.Height); err != nil {
		return fmt.Errorf("add image to product %d: %w", productID, err)
	}
	return nil
}

// List returns a product's images ordered by creation time, primary first.
func (r *ImageRepo) List(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	var images []models.ProductImage
	const q = `SELECT * FROM product_images WHERE product_id = $1 ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &images, q, productID); err != nil {
		return nil, fmt.Errorf("list images of product %d: %w", productID, err)
	}
	return images, nil
}

// Paginate returns one page of a product's gallery for the image viewer.
func (r *ImageRepo) Paginate(ctx context.Context, productID int64, page, perPage int) (Page[models.ProductImage], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM product_images WHERE product_id = $1`, productID); err != nil {
		return Page[models.ProductImage]{}, fmt.Errorf("paginate images of product %d: %w", productID, err)
	}

	var items []models.ProductImage
	const q = `
		SELECT * FROM product_images
		WHERE product_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &items, q, productID, perPage, PageOffset(page, perPage)); err != nil {
		return Page[models.ProductImage]{}, fmt.Errorf("paginate images of product %d: %w", productID, err)
	}
	return NewPage(items, page, perPage, total), nil
}

// Delete removes one image row.
func (r *ImageRepo) Delete(ctx context.Context, imageID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete image %d: %w", imageID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
