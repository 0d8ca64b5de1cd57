package types

import "time"

// Catalog item lifecycle states
const (
	ItemStatusActive       = "active"
	ItemStatusInactive     = "inactive"
	ItemStatusOutOfStock   = "out_of_stock"
	ItemStatusDiscontinued = "discontinued"
)

// Review targets
const (
	ReviewItemProduct  = "product"
	ReviewItemBoutique = "boutique"
)

// Try-on item sources
const (
	TryOnSourceBoutique = "boutique"
	TryOnSourceWardrobe = "wardrobe"
)

// Wardrobe item states
const (
	WardrobeStatusActive   = "active"
	WardrobeStatusArchived = "archived"
)

// Users. Identity (passwords, email verification) lives at the external
// provider; this row mirrors what we need for joins and onboarding state.
type User struct {
	ID          string `gorm:"primaryKey;size:64"`
	Email       string `gorm:"size:256;unique;not null"`
	FirstName   string `gorm:"size:100"`
	LastName    string `gorm:"size:100"`
	IsOnboarded bool   `gorm:"default:false"`
	IsAdmin     bool   `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Shopper profile: measurements and sizes
type UserProfile struct {
	ID           uint64 `gorm:"primaryKey"`
	UserID       string `gorm:"size:64;uniqueIndex;not null"`
	Gender       string `gorm:"size:16"`
	HeightCm     *float64
	WaistCm      *float64
	ShoeSize     string `gorm:"size:20"`
	ShirtSize    string `gorm:"size:20"`
	PantsSize    string `gorm:"size:20"`
	SizeStandard string `gorm:"size:8"` // US, UK, EU, JP, AU
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Boutiques (store entities, created at boutique onboarding)
type Boutique struct {
	ID        uint64 `gorm:"primaryKey"`
	OwnerID   string `gorm:"size:64;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Boutique business profile; latitude/longitude drive proximity search
type BoutiqueProfile struct {
	ID              uint64 `gorm:"primaryKey"`
	BoutiqueID      uint64 `gorm:"uniqueIndex;not null"`
	BusinessName    string `gorm:"size:200"`
	BusinessAddress string `gorm:"size:500"`
	BusinessCity    string `gorm:"size:100"`
	BusinessState   string `gorm:"size:100"`
	BusinessZip     string `gorm:"size:20"`
	BusinessCountry string `gorm:"size:100"`
	BusinessPhone   string `gorm:"size:32"`
	BusinessEmail   string `gorm:"size:256"`
	BusinessWebsite string `gorm:"size:256"`
	LogoURL         string `gorm:"size:500"`
	Latitude        *float64
	Longitude       *float64
	Currency        string `gorm:"size:8"`
	Timezone        string `gorm:"size:64"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Catalog items (product listings). Prices in smallest currency unit.
type CatalogItem struct {
	ID            uint64 `gorm:"primaryKey"`
	BoutiqueID    uint64 `gorm:"index;not null"`
	Name          string `gorm:"size:200;not null"`
	Category      string `gorm:"size:50;index:ix_catalog_category_status,priority:1;not null"`
	Brand         string `gorm:"size:100;index"`
	Price         int64  `gorm:"not null"`
	DiscountPrice *int64
	CostPrice     *int64
	ImageURL      string `gorm:"size:500;not null"`
	Description   string `gorm:"type:text"`
	Stock         int    `gorm:"default:0"`
	Sales         int    `gorm:"default:0"`
	Revenue       int64  `gorm:"default:0"`
	Views         int    `gorm:"default:0"`
	Status        string `gorm:"size:20;index:ix_catalog_category_status,priority:2;not null;default:active"`
	Tags          string `gorm:"size:500"` // comma separated
	Colors        string `gorm:"size:300"` // comma separated
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Curated looks: 2-5 catalog items composed by the boutique
type BoutiqueLook struct {
	ID          uint64        `gorm:"primaryKey"`
	BoutiqueID  uint64        `gorm:"index;not null"`
	Title       string        `gorm:"size:200;not null"`
	Description string        `gorm:"type:text"`
	Style       string        `gorm:"size:50;not null"`
	ImageURL    string        `gorm:"size:500"`
	IsFeatured  bool          `gorm:"default:false"`
	Products    []LookProduct `gorm:"foreignKey:LookID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member of a look, ordered by Position
type LookProduct struct {
	ID            uint64 `gorm:"primaryKey"`
	LookID        uint64 `gorm:"index;not null"`
	CatalogItemID uint64 `gorm:"not null"`
	Position      int    `gorm:"not null"`
}

// Unified reviews for products and boutiques (polymorphic item_type/item_id).
// New reviews start unapproved and surface only after moderation.
type Review struct {
	ID         uint64 `gorm:"primaryKey"`
	ItemType   string `gorm:"size:20;index:ix_reviews_item,priority:1;not null"`
	ItemID     uint64 `gorm:"index:ix_reviews_item,priority:2;not null"`
	UserID     string `gorm:"size:64;index;not null"`
	Rating     int    `gorm:"not null"` // 1-5
	Comment    string `gorm:"type:text"`
	Images     string `gorm:"size:2000"` // comma separated URLs
	IsApproved bool   `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// "Found helpful" marks; one per user per review
type ReviewLike struct {
	ID        uint64 `gorm:"primaryKey"`
	ReviewID  uint64 `gorm:"uniqueIndex:uq_review_likes,priority:1;not null"`
	UserID    string `gorm:"size:64;uniqueIndex:uq_review_likes,priority:2;not null"`
	CreatedAt time.Time
}

// Virtual try-on sessions
type TryOnSession struct {
	ID                 uint64      `gorm:"primaryKey"`
	UserID             string      `gorm:"size:64;index;not null"`
	FullBodyImageURI   string      `gorm:"size:500;not null"`
	GeneratedImageURI  string      `gorm:"size:500;not null"`
	CleanBackground    bool        `gorm:"default:true"`
	CustomInstructions string      `gorm:"size:500"`
	Items              []TryOnItem `gorm:"foreignKey:SessionID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Item snapshot inside a try-on session. CatalogItemID is set for boutique
// products, WardrobeItemID for the user's own pieces.
type TryOnItem struct {
	ID             uint64  `gorm:"primaryKey"`
	SessionID      uint64  `gorm:"index;not null"`
	Source         string  `gorm:"size:20;not null"`
	CatalogItemID  *uint64 `gorm:"index"`
	WardrobeItemID *uint64
}

// Personal wardrobe items
type WardrobeItem struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     string `gorm:"size:64;index;not null"`
	Title      string `gorm:"size:200;not null"`
	Category   string `gorm:"size:50;index;not null"`
	Colors     string `gorm:"size:300"`
	Tags       string `gorm:"size:500"`
	ImageURL   string `gorm:"size:500;not null"`
	Status     string `gorm:"size:20;default:active"`
	WearCount  int    `gorm:"default:0"`
	LastWornAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Simple per-user task list
type Task struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index;not null"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:1000"`
	Completed   bool   `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
