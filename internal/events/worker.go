package events

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RunWorker starts the asynq consumer that forwards queued collaborator
// events to the notification sink. Runs until the server stops.
func RunWorker(redisOpt asynq.RedisClientOpt, sink Emitter, logger *zap.Logger) error {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCollaboratorEvent, func(ctx context.Context, task *asynq.Task) error {
		var ev Event
		if err := json.Unmarshal(task.Payload(), &ev); err != nil {
			logger.Error("invalid event payload", zap.Error(err))
			return err
		}
		return sink.Emit(ctx, ev)
	})

	return srv.Run(mux)
}
