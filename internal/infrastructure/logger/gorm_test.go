package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT * FROM silver_crm_cust_info", 3 }

	t.Run("logs query errors", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Error)

		l.Trace(ctx, time.Now(), fc, errors.New("syntax error"))

		assert.Equal(t, 1, logs.Len())
		assert.Equal(t, "SQL Error", logs.All()[0].Message)
	})

	t.Run("ignores record-not-found", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Error)

		l.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("flags slow queries", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)

		l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)

		assert.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "SLOW SQL")
	})

	t.Run("silent level stays silent", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Silent)

		l.Trace(ctx, time.Now(), fc, errors.New("boom"))

		assert.Equal(t, 0, logs.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapGormLogLevel(tc.in), "level %q", tc.in)
	}
}
