// File: internal/moxfield/resolver.go
package moxfield

import (
	"context"

	"toski_backend/internal/common"

	"go.uber.org/zap"
)

// SourceMoxfield is the only deck source accepted today.
const SourceMoxfield = "moxfield"

// ResolvedDeck is a deck reference that Moxfield has confirmed exists.
type ResolvedDeck struct {
	DeckID string
	Source string
}

// DeckResolver turns a deck link into a confirmed deck id.
type DeckResolver struct {
	provider Provider
	logger   *zap.Logger
}

func NewDeckResolver(provider Provider, logger *zap.Logger) *DeckResolver {
	return &DeckResolver{provider: provider, logger: logger.Named("DeckResolver")}
}

// Resolve checks the source, parses rawURL and confirms the deck with Moxfield.
func (r *DeckResolver) Resolve(ctx context.Context, rawURL, source string) (*ResolvedDeck, error) {
	if source != SourceMoxfield {
		return nil, common.ErrUnsupportedSource
	}
	deckID, err := ParseDeckURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := r.Confirm(ctx, source, deckID); err != nil {
		return nil, err
	}
	return &ResolvedDeck{DeckID: deckID, Source: source}, nil
}

// Confirm checks that deckID still resolves on the given source.
func (r *DeckResolver) Confirm(ctx context.Context, source, deckID string) error {
	if source != SourceMoxfield {
		return common.ErrUnsupportedSource
	}
	deck, err := r.provider.GetDeck(ctx, deckID)
	if err != nil {
		r.logger.Info("Deck lookup failed", zap.String("deckID", deckID), zap.Error(err))
		return common.ErrDeckNotFound.Wrap(err)
	}
	if deck.PublicID != deckID {
		r.logger.Info("Deck publicId mismatch",
			zap.String("deckID", deckID), zap.String("returnedPublicID", deck.PublicID))
		return common.ErrDeckNotFound
	}
	return nil
}
