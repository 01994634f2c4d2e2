package scheduler

import (
	"testing"

	"github.com/hibiken/asynq"
)

func TestBatchDistributionTaskRoundTrip(t *testing.T) {
	payload := BatchDistributionPayload{LeadIDs: []string{"a", "b", "c"}}

	task, err := NewBatchDistributionTask(payload)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskBatchDistribution {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskBatchDistribution)
	}

	decoded, err := ParseBatchDistributionPayload(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decoded.LeadIDs) != 3 || decoded.LeadIDs[2] != "c" {
		t.Fatalf("decoded = %v, want %v", decoded.LeadIDs, payload.LeadIDs)
	}
}

func TestParseBatchDistributionPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskBatchDistribution, []byte("{not json"))
	if _, err := ParseBatchDistributionPayload(task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
