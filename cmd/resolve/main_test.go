package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/prereqpath-backend/internal/app"
	"github.com/yungbote/prereqpath-backend/internal/data/db"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	opened := false
	code := run(nil, &out, func() (*app.App, error) {
		opened = true
		return nil, errors.New("unexpected")
	})
	if code != exitUsage || opened {
		t.Fatalf("code=%d opened=%v", code, opened)
	}
}

func TestRunClosesAppOnInvalidResult(t *testing.T) {
	var a *app.App
	open := func() (*app.App, error) {
		var err error
		a, err = app.NewWithConfig(logger.Nop(), app.Config{
			DB: db.Config{
				Driver:     db.DriverSQLite,
				SQLitePath: "file:resolve_cli?mode=memory&cache=shared",
			},
			GraphSource:           app.GraphSourcePostgres,
			SnapshotCacheTTL:      time.Minute,
			MembershipConcurrency: 2,
			ResolveTimeout:        5 * time.Second,
		})
		return a, err
	}

	var out bytes.Buffer
	code := run([]string{"-id", "missing", "-pretty=false"}, &out, open)
	if code != exitInvalid {
		t.Fatalf("code=%d output=%s", code, out.String())
	}
	if !strings.Contains(out.String(), `"target_id":"missing"`) {
		t.Fatalf("output=%s", out.String())
	}
	sqlDB, err := a.DB.DB().DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if sqlDB.Ping() == nil {
		t.Fatalf("app was not closed before run returned")
	}
}
