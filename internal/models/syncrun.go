package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncRunStatus represents the status of a sync run
type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "RUNNING"
	SyncRunStatusCompleted SyncRunStatus = "COMPLETED"
	SyncRunStatusFailed    SyncRunStatus = "FAILED"
)

// SyncStage represents a stage of the sync pipeline state machine
type SyncStage string

const (
	SyncStageInit          SyncStage = "INIT"
	SyncStageReading       SyncStage = "READING"
	SyncStageValidating    SyncStage = "VALIDATING"
	SyncStageClassifying   SyncStage = "CLASSIFYING"
	SyncStageUpserting     SyncStage = "UPSERTING"
	SyncStageMaterializing SyncStage = "MATERIALIZING"
	SyncStageBackingUp     SyncStage = "BACKING_UP"
	SyncStageCompleted     SyncStage = "COMPLETED"
	SyncStageFailed        SyncStage = "FAILED"
)

// SyncRun is the audit record of one pipeline execution. It is created when
// the run enters INIT and finalized exactly once at COMPLETED or FAILED;
// afterwards it is never mutated.
type SyncRun struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	SourceFile   string        `json:"sourceFile" gorm:"not null"`
	RowsRead     int           `json:"rowsRead" gorm:"default:0"`
	RowsValid    int           `json:"rowsValid" gorm:"default:0"`
	Inserted     int           `json:"inserted" gorm:"default:0"`
	Updated      int           `json:"updated" gorm:"default:0"`
	Failed       int           `json:"failed" gorm:"default:0"`
	Status       SyncRunStatus `json:"status" gorm:"type:varchar(20);not null;default:'RUNNING';index"`
	Stage        SyncStage     `json:"stage" gorm:"type:varchar(20);not null;default:'INIT'"`
	ErrorMessage string        `json:"errorMessage,omitempty" gorm:"type:text"`
	StartedAt    time.Time     `json:"startedAt" gorm:"index,sort:desc"`
	FinishedAt   *time.Time    `json:"finishedAt,omitempty"`
}

// TableName returns the table name for the SyncRun model
func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncRowError represents a recoverable problem with a specific source row.
// Row errors are collected and reported at run end; they never abort a run.
type SyncRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Row error codes
const (
	ErrCodeMissingID    = "MISSING_ID"
	ErrCodeMissingName  = "MISSING_NAME"
	ErrCodeCommentRow   = "COMMENT_ROW"
	ErrCodeSentinelRow  = "SENTINEL_ROW"
	ErrCodeDuplicateID  = "DUPLICATE_ID"
	ErrCodeUpsertFailed = "UPSERT_FAILED"
)
