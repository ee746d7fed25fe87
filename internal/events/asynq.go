package events

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type consumed by the notification worker.
const TaskCollaboratorEvent = "events:collaborator"

// AsynqEmitter enqueues collaborator events as asynq tasks so delivery
// retries survive process restarts.
type AsynqEmitter struct {
	client *asynq.Client
}

func NewAsynqEmitter(client *asynq.Client) *AsynqEmitter {
	return &AsynqEmitter{client: client}
}

func (e *AsynqEmitter) Emit(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskCollaboratorEvent, b)
	_, err = e.client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	return err
}

var _ Emitter = (*AsynqEmitter)(nil)
