package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/repos"
	"github.com/merchly/console-backend/internal/types"
)

// Context is the execution handle for one claimed import job. Handlers report
// progress and terminal state through it instead of touching the job row
// directly.
type Context struct {
	Ctx  context.Context
	DB   *gorm.DB
	Job  *types.ImportJob
	Repo repos.ImportJobRepo
}

func NewContext(ctx context.Context, db *gorm.DB, job *types.ImportJob, repo repos.ImportJobRepo) *Context {
	return &Context{Ctx: ctx, DB: db, Job: job, Repo: repo}
}

// Progress persists row counters and refreshes the heartbeat so the worker's
// stale-running sweep does not reclaim an active job.
func (c *Context) Progress(totalRows, createdRows, failedRows int) {
	if c == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	now := time.Now()
	_ = c.Repo.UpdateFields(c.Ctx, nil, c.Job.ID, map[string]interface{}{
		"total_rows":   totalRows,
		"created_rows": createdRows,
		"failed_rows":  failedRows,
		"heartbeat_at": now,
		"updated_at":   now,
	})
	c.Job.TotalRows = totalRows
	c.Job.CreatedRows = createdRows
	c.Job.FailedRows = failedRows
	c.Job.HeartbeatAt = &now
}

// Heartbeat refreshes heartbeat_at without touching the counters. Handlers
// call it between Progress updates when a phase does long work that moves no
// rows, such as parsing the uploaded file.
func (c *Context) Heartbeat() {
	if c == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	_ = c.Repo.Heartbeat(c.Ctx, nil, c.Job.ID)
	now := time.Now()
	c.Job.HeartbeatAt = &now
}

func (c *Context) Fail(err error) {
	if c == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	now := time.Now()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	_ = c.Repo.UpdateFields(c.Ctx, nil, c.Job.ID, map[string]interface{}{
		"status":        "failed",
		"last_error":    msg,
		"last_error_at": now,
		"locked_at":     nil,
		"updated_at":    now,
	})
	c.Job.Status = "failed"
	c.Job.LastError = msg
	c.Job.LastErrorAt = &now
	c.Job.LockedAt = nil
}

func (c *Context) Succeed() {
	if c == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	now := time.Now()
	_ = c.Repo.UpdateFields(c.Ctx, nil, c.Job.ID, map[string]interface{}{
		"status":       "succeeded",
		"last_error":   "",
		"locked_at":    nil,
		"finished_at":  now,
		"heartbeat_at": now,
		"updated_at":   now,
	})
	c.Job.Status = "succeeded"
	c.Job.LastError = ""
	c.Job.LockedAt = nil
	c.Job.FinishedAt = &now
	c.Job.HeartbeatAt = &now
}
