package repository

import (
	"reflect"
	"testing"

	"github.com/kurirapp/courier-api/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

// setupTestDB builds a pg.DB around an in-memory sqlite database. pg.DB has
// no exported constructor taking a prebuilt gorm handle, so the unexported
// field is injected via reflection.
func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&CourierEntity{}, &DeliveryReportEntity{})
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	dbField := pgDBValue.FieldByName("db")
	dbField = reflect.NewAt(dbField.Type(), dbField.Addr().UnsafePointer()).Elem()
	dbField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    pgDB,
		rawDB: db,
	}
}
