package moxfield

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetAccount(ctx context.Context, handle string) (*Account, error) {
	args := m.Called(ctx, handle)
	if a := args.Get(0); a != nil {
		return a.(*Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetDeck(ctx context.Context, publicID string) (*Deck, error) {
	args := m.Called(ctx, publicID)
	if d := args.Get(0); d != nil {
		return d.(*Deck), args.Error(1)
	}
	return nil, args.Error(1)
}
