package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/mimoo-storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// slotStorageSuite holds the behaviour every SlotStorage backend shares.
// Backend suites embed it and assign storage in SetupSuite.
type slotStorageSuite struct {
	suite.Suite

	storage port.SlotStorage
}

func (suite *slotStorageSuite) TestGetItem() {
	tests := []struct {
		name      string
		key       string
		setup     *string
		wantOK    bool
		wantError string
	}{
		{
			name:   "get existing slot: ok",
			key:    gofakeit.UUID(),
			setup:  ptr(`[{"id":1}]`),
			wantOK: true,
		},
		{
			name:   "get missing slot: not found",
			key:    gofakeit.UUID(),
			wantOK: false,
		},
		{
			name:      "get with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup != nil {
				require.NoError(t, suite.storage.SetItem(ctx, tt.key, *tt.setup))
			}

			got, ok, err := suite.storage.GetItem(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantOK, ok)
			if tt.setup != nil {
				assert.Equal(t, *tt.setup, got)
			}
		})
	}
}

func (suite *slotStorageSuite) TestSetItemOverwrites() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	require.NoError(t, suite.storage.SetItem(ctx, key, "first"))
	require.NoError(t, suite.storage.SetItem(ctx, key, "second"))

	got, ok, err := suite.storage.GetItem(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)

	require.EqualError(t, suite.storage.SetItem(ctx, "", "x"), "key is empty")
}

func (suite *slotStorageSuite) TestRemoveItem() {
	tests := []struct {
		name      string
		key       string
		setup     bool
		wantError string
	}{
		{
			name:  "remove existing slot: ok",
			key:   gofakeit.UUID(),
			setup: true,
		},
		{
			name: "remove missing slot: ok",
			key:  gofakeit.UUID(),
		},
		{
			name:      "remove with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.storage.SetItem(ctx, tt.key, gofakeit.Sentence(3)))
			}

			err := suite.storage.RemoveItem(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			_, ok, err := suite.storage.GetItem(ctx, tt.key)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
