package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func newCacheWithMock(t *testing.T) (*Cache, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return NewWithClient(client), mock
}

func expectationsMet(t *testing.T, mock redismock.ClientMock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSet(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectSet("k", "v", time.Minute).SetVal("OK")

	if err := c.Set(context.Background(), "k", "v", time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestSet_Error(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectSet("k", "v", time.Minute).SetErr(errors.New("conn reset"))

	if err := c.Set(context.Background(), "k", "v", time.Minute); err == nil {
		t.Fatalf("expected error")
	}
	expectationsMet(t, mock)
}

func TestGet(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectGet("k").SetVal("v")

	val, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if val != "v" {
		t.Fatalf("unexpected value: %q", val)
	}
	expectationsMet(t, mock)
}

func TestGet_Missing(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectGet("absent").RedisNil()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestGetDel(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectGetDel("k").SetVal("v")

	val, err := c.GetDel(context.Background(), "k")
	if err != nil {
		t.Fatalf("GetDel error: %v", err)
	}
	if val != "v" {
		t.Fatalf("unexpected value: %q", val)
	}
	expectationsMet(t, mock)
}

func TestGetDel_Missing(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectGetDel("absent").RedisNil()

	_, err := c.GetDel(context.Background(), "absent")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestDelete(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectDel("k").SetVal(1)

	if err := c.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestIncrementWithTTL(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("counter").SetVal(3)
	mock.ExpectExpireNX("counter", 15*time.Minute).SetVal(false)
	mock.ExpectTxPipelineExec()

	n, err := c.IncrementWithTTL(context.Background(), "counter", 15*time.Minute)
	if err != nil {
		t.Fatalf("IncrementWithTTL error: %v", err)
	}
	if n != 3 {
		t.Fatalf("unexpected counter value: %d", n)
	}
	expectationsMet(t, mock)
}

func TestIncrementWithTTL_FirstIncrementSetsTTL(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("counter").SetVal(1)
	mock.ExpectExpireNX("counter", 15*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	n, err := c.IncrementWithTTL(context.Background(), "counter", 15*time.Minute)
	if err != nil {
		t.Fatalf("IncrementWithTTL error: %v", err)
	}
	if n != 1 {
		t.Fatalf("unexpected counter value: %d", n)
	}
	expectationsMet(t, mock)
}

func TestIncrementWithTTL_Error(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("counter").SetErr(errors.New("conn reset"))

	if _, err := c.IncrementWithTTL(context.Background(), "counter", 15*time.Minute); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHealth(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectPing().SetVal("PONG")

	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestHealth_Error(t *testing.T) {
	c, mock := newCacheWithMock(t)

	mock.ExpectPing().SetErr(errors.New("no route"))

	if err := c.Health(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	expectationsMet(t, mock)
}
