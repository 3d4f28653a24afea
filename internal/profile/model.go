// File: internal/profile/model.go
package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDecks is the most deck references one profile may hold.
const MaxDecks = 10

// Profile is one community member's record. ID is DeriveKey(UserID).
// A nil MoxfieldID was never set; a pointer to "" means explicitly unlinked.
type Profile struct {
	ID                string    `gorm:"type:varchar(24);primaryKey" json:"id"`
	UserID            string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_profiles_user_id" json:"userId"`
	FavoriteCommander *string   `gorm:"type:text" json:"favoriteCommander,omitempty"`
	MoxfieldID        *string   `gorm:"type:varchar(64);uniqueIndex:idx_profiles_moxfield_id,where:moxfield_id <> ''" json:"moxfieldId,omitempty"`
	ArchidektID       *string   `gorm:"type:varchar(64)" json:"archidektId,omitempty"`
	ToskiID           *string   `gorm:"type:varchar(64)" json:"toskiId,omitempty"`
	DeckCount         int       `gorm:"not null" json:"-"`
	Decks             []Deck    `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE" json:"decks"`
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// Deck is a reference from a profile to an externally hosted deck list.
type Deck struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string    `gorm:"type:varchar(24);not null;index:idx_profile_decks_profile_id" json:"-"`
	DeckID    string    `gorm:"type:varchar(64);not null" json:"deckId"`
	Source    string    `gorm:"type:varchar(32);not null" json:"source"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

// TableName specifies the table name for the Deck model.
func (Deck) TableName() string {
	return "profile_decks"
}

// BeforeCreate assigns a reference id when the caller did not set one.
func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Patch carries the profile fields a write sets. Nil fields are left untouched.
type Patch struct {
	FavoriteCommander *string
	MoxfieldID        *string
	ArchidektID       *string
	ToskiID           *string
}

// Models lists the tables owned by this package, for schema migration.
func Models() []interface{} {
	return []interface{}{&Profile{}, &Deck{}}
}

// --- DTOs ---

// UpsertProfileRequest is the body of POST /profiles.
type UpsertProfileRequest struct {
	UserID            string  `json:"userId" binding:"required,snowflake"`
	FavoriteCommander *string `json:"favoriteCommander" binding:"omitempty,max=200"`
	MoxfieldID        *string `json:"moxfieldId" binding:"omitempty,max=64"`
	ArchidektID       *string `json:"archidektId" binding:"omitempty,max=64"`
}

// LinkToskiIDRequest is the body of POST /profiles/link.
type LinkToskiIDRequest struct {
	UserID  string  `json:"userId" binding:"required,snowflake"`
	ToskiID *string `json:"toskiId" binding:"omitempty,max=64"`
}

// AddDeckRequest is the body of POST /addDeck.
type AddDeckRequest struct {
	UserID string `json:"userId" binding:"required,snowflake"`
	URL    string `json:"url" binding:"required,max=500"`
	Source string `json:"source" binding:"required"`
}

// RemoveDeckRequest is the body of POST /removeDeck.
type RemoveDeckRequest struct {
	UserID string `json:"userId" binding:"required,snowflake"`
	DeckID string `json:"deckId" binding:"required"`
}
