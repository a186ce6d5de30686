package store

import (
	"bitwise74/task-api/db"
	"bitwise74/task-api/pkg/security"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *Users
	projects *Projects
	tasks    *Tasks
}

// newFixture opens an in-memory database. All stores share a clock that
// moves forward one second per record so ordering by creation is exact.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	d, err := db.New("sqlite", ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	hasher := &security.ArgonHash{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	f := &fixture{
		db:       d,
		users:    NewUsers(d, hasher),
		projects: NewProjects(d),
	}
	f.tasks = NewTasks(d, f.projects)

	f.users.now = now
	f.projects.now = now
	f.tasks.now = now

	return f
}

func ctx() context.Context {
	return context.Background()
}
