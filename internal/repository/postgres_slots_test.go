package repository_test

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/mimoo-storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type postgresSlotsSuite struct {
	slotStorageSuite

	slots *repository.PostgresSlots
	pool  *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestPostgresSlotsSuite(t *testing.T) {
	suite.Run(t, new(postgresSlotsSuite))
}

// before all tests in the suite
func (suite *postgresSlotsSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.slots = repository.NewPostgresSlots(suite.pool)
	suite.storage = suite.slots
}

// after all tests in the suite
func (suite *postgresSlotsSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *postgresSlotsSuite) TearDownTest() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_snapshots")
	suite.NoError(err)
}

func (suite *postgresSlotsSuite) TestRevision() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	revision, err := suite.slots.Revision(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, revision)

	for i := 0; i < 3; i++ {
		require.NoError(t, suite.slots.SetItem(ctx, key, gofakeit.Sentence(2)))
	}

	revision, err = suite.slots.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), revision)

	require.NoError(t, suite.slots.RemoveItem(ctx, key))

	_, ok, err := suite.slots.GetItem(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	revision, err = suite.slots.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(4), revision)

	// erasing an erased slot is not a write
	require.NoError(t, suite.slots.RemoveItem(ctx, key))
	require.NoError(t, suite.slots.SetItem(ctx, key, "again"))

	revision, err = suite.slots.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(5), revision)
}

func (suite *postgresSlotsSuite) TestConcurrentFirstWritesCountEach() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()
	writers := 10
	payload := gofakeit.Sentence(2)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, suite.slots.SetItem(ctx, key, payload))
		}()
	}
	wg.Wait()

	revision, err := suite.slots.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), revision)
}

func (suite *postgresSlotsSuite) TestWithTxRollback() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txSlots := repository.NewPostgresSlotsWithTx(tx)
	require.NoError(t, txSlots.SetItem(ctx, key, "uncommitted"))

	got, ok, err := txSlots.GetItem(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "uncommitted", got)

	require.NoError(t, tx.Rollback(ctx))

	_, ok, err = suite.slots.GetItem(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
