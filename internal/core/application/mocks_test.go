package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vulpemventures/anchor/internal/core/domain"
)

// ports.UtxoSource
type mockUtxoSource struct {
	mock.Mock
}

func (m *mockUtxoSource) GetSpendableUtxos(
	ctx context.Context,
) (domain.UtxoSet, error) {
	args := m.Called(ctx)

	var set domain.UtxoSet
	if args.Get(0) != nil {
		set = args.Get(0).(domain.UtxoSet)
	}
	return set, args.Error(1)
}
