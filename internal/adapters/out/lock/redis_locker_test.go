package lock_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/lock"
	"storefront/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type RedisLockerIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	locker    *lock.RedisLocker
}

func (suite *RedisLockerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *RedisLockerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
	suite.locker = lock.NewRedisLocker(suite.client, lock.RedisLockerConfig{
		TTL:        2 * time.Second,
		RetryDelay: 10 * time.Millisecond,
	}, zap.NewNop())
}

func (suite *RedisLockerIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisLockerIntegrationTestSuite) TestLockIsExclusivePerOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	unlock, err := suite.locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = suite.locker.Lock(waitCtx, orderID)
	suite.ErrorIs(err, context.DeadlineExceeded)

	other, err := suite.locker.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	other()

	unlock()

	again, err := suite.locker.Lock(ctx, orderID)
	suite.Require().NoError(err)
	again()
}

func (suite *RedisLockerIntegrationTestSuite) TestWaiterAcquiresAfterRelease() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	unlock, err := suite.locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	acquired := make(chan error, 1)
	go func() {
		next, lockErr := suite.locker.Lock(ctx, orderID)
		if lockErr == nil {
			next()
		}
		acquired <- lockErr
	}()

	time.Sleep(50 * time.Millisecond)
	unlock()

	select {
	case err = <-acquired:
		suite.NoError(err)
	case <-time.After(2 * time.Second):
		suite.Fail("waiter never acquired the lock")
	}
}

func (suite *RedisLockerIntegrationTestSuite) TestExpiredLockIsNotReleasedByFormerHolder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	short := lock.NewRedisLocker(suite.client, lock.RedisLockerConfig{
		TTL:        100 * time.Millisecond,
		RetryDelay: 10 * time.Millisecond,
	}, zap.NewNop())

	stale, err := short.Lock(ctx, orderID)
	suite.Require().NoError(err)

	current, err := short.Lock(ctx, orderID)
	suite.Require().NoError(err)

	stale()

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = short.Lock(waitCtx, orderID)
	suite.ErrorIs(err, context.DeadlineExceeded)

	current()
}

func TestRedisLockerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLockerIntegrationTestSuite))
}
