package state

import "errors"

var (
	ErrOpenDatabase = errors.New("failed to open run database")
	ErrRecordRun    = errors.New("failed to record run")
	ErrQueryRuns    = errors.New("failed to query runs")
	ErrRunNotFound  = errors.New("run not found")
)
