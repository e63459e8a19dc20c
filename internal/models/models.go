// Package models defines the persistent entities of the shop bot.
package models

import (
	"database/sql"
	"time"
)

// User is a Telegram account known to the bot. A row is created on first
// contact; IsRegistered stays false until the registration flow completes.
type User struct {
	ID           int64          `db:"user_id"`
	Username     sql.NullString `db:"username"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Phone        sql.NullString `db:"phone"`
	City         sql.NullString `db:"city"`
	IsRegistered bool           `db:"is_registered"`
	JoinDate     time.Time      `db:"join_date"`
	LastActivity time.Time      `db:"last_activity"`
	MessageCount int            `db:"message_count"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Product is a catalog entry. Prices are whole tomans. Deletion is soft:
// IsActive=false keeps referential history for existing orders.
type Product struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Price       int64          `db:"price"`
	ImageURL    sql.NullString `db:"image_url"`
	Description sql.NullString `db:"description"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// PhotoRef is an opaque Telegram file reference captured from an upload.
type PhotoRef struct {
	FileID       string
	FileUniqueID string
	FileSize     int64
	Width        int
	Height       int
}

// ProductImage is one gallery photo of a product. Images are ordered by
// creation time; the first-inserted image acts as the primary one.
type ProductImage struct {
	ID           int64         `db:"id"`
	ProductID    int64         `db:"product_id"`
	FileID       string        `db:"file_id"`
	FileUniqueID string        `db:"file_unique_id"`
	FileSize     sql.NullInt64 `db:"file_size"`
	Width        sql.NullInt32 `db:"width"`
	Height       sql.NullInt32 `db:"height"`
	CreatedAt    time.Time     `db:"created_at"`
}

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderApproved OrderStatus = "approved"
	OrderRejected OrderStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderApproved || s == OrderRejected
}

// Order is a purchase request awaiting admin adjudication. Price is a
// snapshot taken when the user pressed buy, decoupled from later catalog
// price changes.
type Order struct {
	ID               int64          `db:"id"`
	UserID           int64          `db:"user_id"`
	ProductID        int64          `db:"product_id"`
	Price            int64          `db:"price"`
	Status           OrderStatus    `db:"status"`
	ScreenshotFileID sql.NullString `db:"screenshot_file_id"`
	AdminID          sql.NullInt64  `db:"admin_id"`
	RejectionReason  sql.NullString `db:"rejection_reason"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	ApprovedAt       sql.NullTime   `db:"approved_at"`

	// Joined columns for list/detail views.
	ProductName   string         `db:"product_name"`
	UserUsername  sql.NullString `db:"username"`
	UserFirstName sql.NullString `db:"first_name"`
}

// DailyStats aggregates today's activity for the admin stats panel.
type DailyStats struct {
	NewUsersToday    int `db:"new_users_today"`
	MessagesToday    int `db:"messages_today"`
	ActiveUsersToday int `db:"active_users_today"`
}
