// Package setting models process-wide key/value settings stored in the database.
package setting

import (
	"context"
	"errors"
	"time"
)

var ErrSettingNotFound = errors.New("setting not found")

type SystemSetting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns ErrSettingNotFound when key is absent.
	Get(ctx context.Context, key string) (*SystemSetting, error)
	Upsert(ctx context.Context, key, value string) error
}
