// Package scheduler queues and processes background distribution work via
// asynq on Redis.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskBatchDistribution = "distribution.batch"

// BatchDistributionPayload carries the lead ids for one batch run.
type BatchDistributionPayload struct {
	LeadIDs []string `json:"leadIds"`
}

// NewBatchDistributionTask builds the asynq task for a batch run.
func NewBatchDistributionTask(payload BatchDistributionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBatchDistribution, data), nil
}

// ParseBatchDistributionPayload decodes a batch task payload.
func ParseBatchDistributionPayload(task *asynq.Task) (BatchDistributionPayload, error) {
	var payload BatchDistributionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BatchDistributionPayload{}, err
	}
	return payload, nil
}
