package job

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"custom-field-api/internal/metrics"
	"custom-field-api/internal/repository"
)

// OrphanCleanupJob sweeps task custom field values whose field definition
// no longer exists. Force-deleted definitions leave such orphans behind by
// design; this job reclaims them on a schedule.
type OrphanCleanupJob struct {
	taskRepo repository.TaskRepository
	defRepo  repository.FieldDefinitionRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewOrphanCleanupJob creates a new OrphanCleanupJob instance
func NewOrphanCleanupJob(
	taskRepo repository.TaskRepository,
	defRepo repository.FieldDefinitionRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrphanCleanupJob {
	return &OrphanCleanupJob{
		taskRepo: taskRepo,
		defRepo:  defRepo,
		metrics:  m,
		logger:   logger,
	}
}

// Run executes the sweep. It satisfies cron.Job.
func (j *OrphanCleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting orphaned field value cleanup")

	cleaned, err := j.Sweep(ctx)
	if err != nil {
		j.logger.Error("Orphaned field value cleanup failed", zap.Error(err))
		return
	}

	j.logger.Info("Orphaned field value cleanup completed",
		zap.Int("tasks_cleaned", cleaned),
	)
}

// Sweep scans every task and strips custom field entries that reference a
// field definition that no longer exists on the task's board. It returns
// the number of tasks that were updated.
func (j *OrphanCleanupJob) Sweep(ctx context.Context) (int, error) {
	tasks, err := j.taskRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	// Board definitions are loaded once per board across the sweep
	knownFields := make(map[uuid.UUID]map[string]bool)

	cleaned := 0
	for _, task := range tasks {
		if len(task.CustomFields) == 0 {
			continue
		}

		fields, ok := knownFields[task.BoardID]
		if !ok {
			defs, err := j.defRepo.FindByBoardID(ctx, task.BoardID)
			if err != nil {
				j.logger.Warn("Failed to load field definitions for board",
					zap.String("board_id", task.BoardID.String()),
					zap.Error(err),
				)
				continue
			}
			fields = make(map[string]bool, len(defs))
			for _, def := range defs {
				fields[def.ID.String()] = true
			}
			knownFields[task.BoardID] = fields
		}

		var values map[string]interface{}
		if err := json.Unmarshal(task.CustomFields, &values); err != nil {
			j.logger.Warn("Skipping task with unreadable custom fields",
				zap.String("task_id", task.ID.String()),
				zap.Error(err),
			)
			continue
		}

		removed := 0
		for fieldID := range values {
			if !fields[fieldID] {
				delete(values, fieldID)
				removed++
			}
		}
		if removed == 0 {
			continue
		}

		raw, err := json.Marshal(values)
		if err != nil {
			return cleaned, err
		}
		task.CustomFields = raw

		if err := j.taskRepo.Update(ctx, task); err != nil {
			j.logger.Error("Failed to update task during orphan cleanup",
				zap.String("task_id", task.ID.String()),
				zap.Error(err),
			)
			continue
		}

		cleaned++
		j.logger.Debug("Stripped orphaned field values",
			zap.String("task_id", task.ID.String()),
			zap.Int("removed", removed),
		)
	}

	if cleaned > 0 && j.metrics != nil {
		j.metrics.AddTaskValuesCleaned(cleaned)
	}

	return cleaned, nil
}
