// File: internal/profile/service.go
package profile

import (
	"context"

	"toski_backend/internal/auth"
	"toski_backend/internal/moxfield"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountValidator confirms an external account handle before it is linked.
type AccountValidator interface {
	ValidateAccount(ctx context.Context, handle string) error
}

// DeckResolver turns a deck link into a confirmed deck reference.
type DeckResolver interface {
	Resolve(ctx context.Context, rawURL, source string) (*moxfield.ResolvedDeck, error)
}

// Service defines the profile workflows exposed over HTTP.
type Service interface {
	CreateOrUpdateProfile(ctx context.Context, accessToken string, req UpsertProfileRequest) (*Profile, error)
	LinkToskiID(ctx context.Context, accessToken string, req LinkToskiIDRequest) (*Profile, error)
	AddDeck(ctx context.Context, accessToken string, req AddDeckRequest) error
	RemoveDeck(ctx context.Context, accessToken string, req RemoveDeckRequest) error
	ListProfiles(ctx context.Context) ([]Profile, error)
	ProfilesByUserID(ctx context.Context, userID string) ([]Profile, error)
}

type service struct {
	store    Store
	verifier auth.Verifier
	accounts AccountValidator
	decks    DeckResolver
	logger   *zap.Logger
}

// NewService creates a new profile service.
func NewService(
	store Store,
	verifier auth.Verifier,
	accounts AccountValidator,
	decks DeckResolver,
	logger *zap.Logger,
) Service {
	return &service{
		store:    store,
		verifier: verifier,
		accounts: accounts,
		decks:    decks,
		logger:   logger.Named("ProfileService"),
	}
}

func (s *service) CreateOrUpdateProfile(ctx context.Context, accessToken string, req UpsertProfileRequest) (*Profile, error) {
	if err := s.verifier.VerifyUser(ctx, accessToken, req.UserID); err != nil {
		return nil, err
	}

	// An empty moxfieldId is an explicit unlink and needs no lookup.
	if req.MoxfieldID != nil && *req.MoxfieldID != "" {
		if err := s.accounts.ValidateAccount(ctx, *req.MoxfieldID); err != nil {
			return nil, err
		}
	}

	p, err := s.store.Upsert(ctx, req.UserID, Patch{
		FavoriteCommander: req.FavoriteCommander,
		MoxfieldID:        req.MoxfieldID,
		ArchidektID:       req.ArchidektID,
	})
	if err != nil {
		s.logger.Warn("Profile upsert failed", zap.String("userID", req.UserID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Profile saved", zap.String("userID", req.UserID), zap.String("profileID", p.ID))
	return p, nil
}

func (s *service) LinkToskiID(ctx context.Context, accessToken string, req LinkToskiIDRequest) (*Profile, error) {
	if err := s.verifier.VerifyAdmin(ctx, accessToken); err != nil {
		return nil, err
	}

	p, err := s.store.Upsert(ctx, req.UserID, Patch{ToskiID: req.ToskiID})
	if err != nil {
		s.logger.Warn("Toski id link failed", zap.String("userID", req.UserID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Toski id linked by admin", zap.String("userID", req.UserID))
	return p, nil
}

func (s *service) AddDeck(ctx context.Context, accessToken string, req AddDeckRequest) error {
	if err := s.verifier.VerifyUser(ctx, accessToken, req.UserID); err != nil {
		return err
	}

	resolved, err := s.decks.Resolve(ctx, req.URL, req.Source)
	if err != nil {
		return err
	}

	deck := &Deck{
		ID:     uuid.New(),
		DeckID: resolved.DeckID,
		Source: resolved.Source,
	}
	if err := s.store.AppendDeck(ctx, DeriveKey(req.UserID), deck); err != nil {
		s.logger.Info("Deck not added", zap.String("userID", req.UserID), zap.String("deckID", resolved.DeckID), zap.Error(err))
		return err
	}
	s.logger.Info("Deck added",
		zap.String("userID", req.UserID),
		zap.String("deckID", resolved.DeckID),
		zap.String("deckRefID", deck.ID.String()))
	return nil
}

func (s *service) RemoveDeck(ctx context.Context, accessToken string, req RemoveDeckRequest) error {
	if err := s.verifier.VerifyUser(ctx, accessToken, req.UserID); err != nil {
		return err
	}

	key := DeriveKey(req.UserID)
	if _, err := s.store.FindByID(ctx, key); err != nil {
		return err
	}

	deckRefID, err := uuid.Parse(req.DeckID)
	if err != nil {
		// No reference can carry a malformed id, so there is nothing to remove.
		s.logger.Debug("Remove deck with malformed reference id", zap.String("deckID", req.DeckID))
		return nil
	}
	return s.store.RemoveDeck(ctx, key, deckRefID.String())
}

func (s *service) ListProfiles(ctx context.Context) ([]Profile, error) {
	return s.store.FindAll(ctx)
}

func (s *service) ProfilesByUserID(ctx context.Context, userID string) ([]Profile, error) {
	return s.store.FindByUserID(ctx, userID)
}
