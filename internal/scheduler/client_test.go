package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type testSchedulerConfig struct {
	url         string
	tlsInsecure bool
	queue       string
	concurrency int
}

func (c testSchedulerConfig) GetRedisURL() string      { return c.url }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return c.tlsInsecure }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return c.concurrency }

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6379/2", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Addr != "localhost:6379" {
		t.Fatalf("addr = %q, want localhost:6379", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("password = %q, want secret", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("db = %d, want 2", opt.DB)
	}
	if opt.TLSConfig != nil {
		t.Fatal("plain redis URL must not produce a TLS config")
	}
}

func TestRedisClientOptTLSInsecure(t *testing.T) {
	opt, err := redisClientOpt("rediss://localhost:6380", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config for rediss URL with tlsInsecure")
	}
}

func TestRedisClientOptRejectsGarbage(t *testing.T) {
	if _, err := redisClientOpt("not-a-url", false); err == nil {
		t.Fatal("expected error for malformed redis URL")
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error when redis url is missing")
	}
}

func TestEnqueueBatchDistribution(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testSchedulerConfig{url: "redis://" + mr.Addr(), queue: "distribution"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	leadIDs := []uuid.UUID{uuid.New(), uuid.New()}
	taskID, err := client.EnqueueBatchDistribution(context.Background(), leadIDs)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if taskID == "" {
		t.Fatal("expected a non-empty task id")
	}

	// The task lands in the configured queue, readable by an inspector
	// pointed at the same instance.
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("distribution")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending tasks, want 1", len(pending))
	}
	if pending[0].Type != TaskBatchDistribution {
		t.Fatalf("task type = %q, want %q", pending[0].Type, TaskBatchDistribution)
	}

	payload, err := ParseBatchDistributionPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if len(payload.LeadIDs) != 2 || payload.LeadIDs[0] != leadIDs[0].String() {
		t.Fatalf("payload lead ids = %v, want %v", payload.LeadIDs, leadIDs)
	}
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)

	opt, err := redis.ParseURL("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
