package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xcursi322/prakt/pkg/metrics"
)

const startedAtKey = "shop:query_started_at"

// RegisterMetrics hooks before/after callbacks on every GORM processor so
// each statement lands in metrics.DBQueryDuration.
func RegisterMetrics(db *gorm.DB) error {
	cb := db.Callback()

	return errors.Join(
		cb.Create().Before("gorm:create").Register("shop:metrics_before_create", markStart),
		cb.Create().After("gorm:create").Register("shop:metrics_after_create", observe("create")),
		cb.Query().Before("gorm:query").Register("shop:metrics_before_query", markStart),
		cb.Query().After("gorm:query").Register("shop:metrics_after_query", observe("query")),
		cb.Update().Before("gorm:update").Register("shop:metrics_before_update", markStart),
		cb.Update().After("gorm:update").Register("shop:metrics_after_update", observe("update")),
		cb.Delete().Before("gorm:delete").Register("shop:metrics_before_delete", markStart),
		cb.Delete().After("gorm:delete").Register("shop:metrics_after_delete", observe("delete")),
		cb.Row().Before("gorm:row").Register("shop:metrics_before_row", markStart),
		cb.Row().After("gorm:row").Register("shop:metrics_after_row", observe("row")),
		cb.Raw().Before("gorm:raw").Register("shop:metrics_before_raw", markStart),
		cb.Raw().After("gorm:raw").Register("shop:metrics_after_raw", observe("raw")),
	)
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(op, start)
		}
	}
}
