package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations, err := loadMigrations(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "init", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS leases")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestLoadMigrations_Ordering(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_late.sql":  {Data: []byte("SELECT 10;")},
		"migrations/002_mid.sql":   {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql": {Data: []byte("SELECT 1;")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
	assert.Equal(t, "late", migrations[2].Name)
}

func TestLoadMigrations_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "MissingName",
			fsys: fstest.MapFS{"migrations/001.sql": {Data: []byte("SELECT 1;")}},
		},
		{
			name: "NonNumericVersion",
			fsys: fstest.MapFS{"migrations/abc_init.sql": {Data: []byte("SELECT 1;")}},
		},
		{
			name: "DuplicateVersion",
			fsys: fstest.MapFS{
				"migrations/001_a.sql": {Data: []byte("SELECT 1;")},
				"migrations/001_b.sql": {Data: []byte("SELECT 1;")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMigrations(tt.fsys)
			assert.Error(t, err)
		})
	}
}
