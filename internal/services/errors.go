package services

import (
	"errors"
	"fmt"
)

const (
	MaxNotesLength       = 2000
	DefaultCycleLimit    = 12
	DefaultTrackingRange = 1
)

// Every validation failure wraps ErrInvalidInput and every missing record
// wraps ErrNotFound, so transports can classify without listing sentinels.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrCycleStartRequired = fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	ErrCycleIDRequired    = fmt.Errorf("%w: cycle id is required", ErrInvalidInput)
	ErrNoCycleFields      = fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	ErrInvalidCycleLimit  = fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	ErrInvalidLogRange    = fmt.Errorf("%w: range must be positive", ErrInvalidInput)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", ErrInvalidInput)
	ErrCycleNotFound      = fmt.Errorf("%w: cycle not found", ErrNotFound)
)

var (
	ErrCycleLoadFailed    = errors.New("load cycles failed")
	ErrCycleCreateFailed  = errors.New("create cycle failed")
	ErrCycleUpdateFailed  = errors.New("update cycle failed")
	ErrProfileLoadFailed  = errors.New("load cycle profile failed")
	ErrDailyLogLoadFailed = errors.New("load daily log failed")
	ErrDailyLogSaveFailed = errors.New("save daily log failed")
)
