package moxfield

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"toski_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeckResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a matching deck", func(t *testing.T) {
		provider := new(mockProvider)
		provider.On("GetDeck", mock.Anything, "xyz").Return(&Deck{PublicID: "xyz"}, nil)
		r := NewDeckResolver(provider, zap.NewNop())

		deck, err := r.Resolve(ctx, "https://moxfield.com/decks/xyz", SourceMoxfield)
		require.NoError(t, err)
		assert.Equal(t, &ResolvedDeck{DeckID: "xyz", Source: SourceMoxfield}, deck)
	})

	t.Run("publicId mismatch", func(t *testing.T) {
		provider := new(mockProvider)
		provider.On("GetDeck", mock.Anything, "xyz").Return(&Deck{PublicID: "other"}, nil)
		r := NewDeckResolver(provider, zap.NewNop())

		_, err := r.Resolve(ctx, "https://moxfield.com/decks/xyz", SourceMoxfield)
		assert.ErrorIs(t, err, common.ErrDeckNotFound)
		assert.False(t, IsTransient(err))
	})

	t.Run("lookup error", func(t *testing.T) {
		provider := new(mockProvider)
		provider.On("GetDeck", mock.Anything, "xyz").Return(nil, &StatusError{StatusCode: http.StatusNotFound})
		r := NewDeckResolver(provider, zap.NewNop())

		_, err := r.Resolve(ctx, "https://moxfield.com/decks/xyz", SourceMoxfield)
		assert.ErrorIs(t, err, common.ErrDeckNotFound)
		assert.False(t, IsTransient(err))
	})

	t.Run("transport error is still deck not found but transient", func(t *testing.T) {
		provider := new(mockProvider)
		provider.On("GetDeck", mock.Anything, "xyz").Return(nil, errors.New("i/o timeout"))
		r := NewDeckResolver(provider, zap.NewNop())

		_, err := r.Resolve(ctx, "https://moxfield.com/decks/xyz", SourceMoxfield)
		assert.ErrorIs(t, err, common.ErrDeckNotFound)
		assert.True(t, IsTransient(err))
	})

	t.Run("unsupported source checked before the url", func(t *testing.T) {
		provider := new(mockProvider)
		r := NewDeckResolver(provider, zap.NewNop())

		_, err := r.Resolve(ctx, "not a url", "archidekt")
		assert.ErrorIs(t, err, common.ErrUnsupportedSource)
		provider.AssertNotCalled(t, "GetDeck", mock.Anything, mock.Anything)
	})

	t.Run("bad url shape never reaches the provider", func(t *testing.T) {
		provider := new(mockProvider)
		r := NewDeckResolver(provider, zap.NewNop())

		_, err := r.Resolve(ctx, "https://moxfield.com/decks/xyz/primer", SourceMoxfield)
		assert.ErrorIs(t, err, common.ErrInvalidURLShape)
		provider.AssertNotCalled(t, "GetDeck", mock.Anything, mock.Anything)
	})
}
