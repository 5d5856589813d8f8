package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/pkg/metrics"
)

const startedKey = "bizapi:started_at"

// instrument times every create, query, update and delete statement into
// metrics.DBQueryDuration and counts failed ones in metrics.DBErrors.
func instrument(db *gorm.DB) error {
	cb := db.Callback()

	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("metrics:before_create", start) },
		func() error { return cb.Create().After("gorm:create").Register("metrics:after_create", observe("insert")) },
		func() error { return cb.Query().Before("gorm:query").Register("metrics:before_query", start) },
		func() error { return cb.Query().After("gorm:query").Register("metrics:after_query", observe("select")) },
		func() error { return cb.Update().Before("gorm:update").Register("metrics:before_update", start) },
		func() error { return cb.Update().After("gorm:update").Register("metrics:after_update", observe("update")) },
		func() error { return cb.Delete().Before("gorm:delete").Register("metrics:before_delete", start) },
		func() error { return cb.Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete")) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func start(db *gorm.DB) {
	db.InstanceSet(startedKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			metrics.DBErrors.WithLabelValues(op).Inc()
		}
		v, ok := db.InstanceGet(startedKey)
		if !ok {
			return
		}
		if t, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(op, t)
		}
	}
}
