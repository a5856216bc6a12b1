// Package service contains background services that run decoupled from
// request handling
package service

import (
	"go.uber.org/zap"
)

// Task is a fire-and-forget unit of background work. Failures are
// logged and never reach the request that enqueued the task
type Task struct {
	Name string
	Run  func() error
}

type Tasks struct {
	queue   chan Task
	workers int
}

// NewTasks initializes a bounded task queue. Enqueueing never blocks a
// request, tasks are dropped with a log entry once the backlog is full
func NewTasks(workers, backlog int) *Tasks {
	return &Tasks{
		queue:   make(chan Task, backlog),
		workers: workers,
	}
}

func (t *Tasks) StartWorkerPool() {
	for range t.workers {
		go t.worker()
	}
}

func (t *Tasks) worker() {
	for task := range t.queue {
		if err := task.Run(); err != nil {
			zap.L().Error("Background task failed",
				zap.String("task", task.Name),
				zap.Error(err))
			continue
		}

		zap.L().Debug("Background task finished", zap.String("task", task.Name))
	}
}

func (t *Tasks) Enqueue(task Task) {
	select {
	case t.queue <- task:
	default:
		zap.L().Warn("Task queue is full, dropping task", zap.String("task", task.Name))
	}
}
