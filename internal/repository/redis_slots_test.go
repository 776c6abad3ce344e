package repository_test

import (
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/mimoo-storefront/internal/repository"
	"github.com/stretchr/testify/suite"
)

type redisSlotsSuite struct {
	slotStorageSuite

	client *redis.Client
}

func TestRedisSlotsSuite(t *testing.T) {
	suite.Run(t, new(redisSlotsSuite))
}

func (suite *redisSlotsSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, endpoint, err := startRedis(ctx)
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})

	slots := repository.NewRedisSlots(suite.client)
	suite.Require().NoError(slots.Ping(ctx))

	suite.storage = slots
}

func (suite *redisSlotsSuite) TearDownSuite() {
	if suite.client != nil {
		suite.NoError(suite.client.Close())
	}
}
