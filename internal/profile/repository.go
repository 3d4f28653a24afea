// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"time"

	"toski_backend/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence contract for profiles. Every write is atomic per profile key;
// callers never read-modify-write.
type Store interface {
	// Upsert creates the profile for userID if absent, otherwise sets the non-nil patch fields.
	Upsert(ctx context.Context, userID string, patch Patch) (*Profile, error)
	FindByID(ctx context.Context, key string) (*Profile, error)
	FindByUserID(ctx context.Context, userID string) ([]Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	// AppendDeck adds deck to the profile, failing once it holds MaxDecks.
	AppendDeck(ctx context.Context, key string, deck *Deck) error
	// RemoveDeck deletes the deck reference; removing an absent reference is not an error.
	RemoveDeck(ctx context.Context, key string, deckRefID string) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new GORM profile store.
func NewGORMStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (r *gormStore) Upsert(ctx context.Context, userID string, patch Patch) (*Profile, error) {
	key := DeriveKey(userID)
	now := time.Now().UTC()

	row := Profile{
		ID:        key,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	updateColumns := []string{"updated_at"}
	if patch.FavoriteCommander != nil {
		row.FavoriteCommander = patch.FavoriteCommander
		updateColumns = append(updateColumns, "favorite_commander")
	}
	if patch.MoxfieldID != nil {
		row.MoxfieldID = patch.MoxfieldID
		updateColumns = append(updateColumns, "moxfield_id")
	}
	if patch.ArchidektID != nil {
		row.ArchidektID = patch.ArchidektID
		updateColumns = append(updateColumns, "archidekt_id")
	}
	if patch.ToskiID != nil {
		row.ToskiID = patch.ToskiID
		updateColumns = append(updateColumns, "toski_id")
	}

	var result Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Decks").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(updateColumns),
			// A truncated key may be shared by two user ids; never let one overwrite the other.
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "profiles.user_id = excluded.user_id"},
			}},
		}).Create(&row)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				if patch.MoxfieldID != nil && *patch.MoxfieldID != "" {
					return common.ErrExternalAccountTaken.Wrap(res.Error)
				}
				return common.ErrKeyCollision.Wrap(res.Error)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.ErrKeyCollision
		}
		return preloadDecks(tx).First(&result, "id = ?", key).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return &result, nil
}

func (r *gormStore) FindByID(ctx context.Context, key string) (*Profile, error) {
	var p Profile
	err := preloadDecks(r.db.WithContext(ctx)).First(&p, "id = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return &p, nil
}

func (r *gormStore) FindByUserID(ctx context.Context, userID string) ([]Profile, error) {
	profiles := []Profile{}
	err := preloadDecks(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, storeError(err)
	}
	return profiles, nil
}

func (r *gormStore) FindAll(ctx context.Context) ([]Profile, error) {
	profiles := []Profile{}
	err := preloadDecks(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Order("id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, storeError(err)
	}
	return profiles, nil
}

func (r *gormStore) AppendDeck(ctx context.Context, key string, deck *Deck) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The conditional increment is what enforces MaxDecks under concurrency.
		res := tx.Model(&Profile{}).
			Where("id = ? AND deck_count < ?", key, MaxDecks).
			UpdateColumns(map[string]interface{}{
				"deck_count": gorm.Expr("deck_count + ?", 1),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Profile{}).Where("id = ?", key).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return common.ErrUserNotFound
			}
			return common.ErrDeckLimitReached
		}

		deck.ProfileID = key
		return tx.Create(deck).Error
	})
	return storeError(err)
}

func (r *gormStore) RemoveDeck(ctx context.Context, key string, deckRefID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND profile_id = ?", deckRefID, key).Delete(&Deck{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&Profile{}).
			Where("id = ? AND deck_count > 0", key).
			UpdateColumns(map[string]interface{}{
				"deck_count": gorm.Expr("deck_count - ?", 1),
				"updated_at": time.Now().UTC(),
			}).Error
	})
	return storeError(err)
}

func (r *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storeError(err)
	}
	return storeError(sqlDB.PingContext(ctx))
}

func preloadDecks(db *gorm.DB) *gorm.DB {
	return db.Preload("Decks", func(db *gorm.DB) *gorm.DB {
		return db.Order("profile_decks.created_at ASC").Order("profile_decks.id ASC")
	})
}

// storeError passes domain errors through and marks everything else as a store failure.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := common.AsError(err); ok {
		return err
	}
	return common.ErrStoreUnavailable.Wrap(err)
}
