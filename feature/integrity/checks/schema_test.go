package checks

import (
	"testing"

	"listing-media/feature/listing"
	"listing-media/feature/media/models"
	"listing-media/feature/summary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Migrated(t *testing.T) {
	db := setupSQLite(t, "schema_migrated")
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &summary.Summary{}, &listing.Counter{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Len(t, report.Tables, 3)
	for name, tbl := range report.Tables {
		assert.Equal(t, "ok", tbl.Status, name)
	}
}

func TestCheckSchema_MissingTableAndColumn(t *testing.T) {
	db := setupSQLite(t, "schema_drift")
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &listing.Counter{}))
	require.NoError(t, db.Migrator().DropColumn(&models.Asset{}, "alt_text"))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	assets := report.Tables["media_assets"]
	assert.Equal(t, "error", assets.Status)
	assert.Equal(t, []string{"alt_text"}, assets.MissingColumns)

	summaries := report.Tables["listing_summaries"]
	assert.Equal(t, "missing", summaries.Status)
	assert.Contains(t, summaries.MissingColumns, "primary_photo_url")

	assert.Equal(t, "ok", report.Tables["listing_id_counters"].Status)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	columns := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}
	assets := sqlmock.NewRows(columns)
	for _, name := range []string{"id", "listing_id", "listing_key", "url", "category", "order_index", "filename", "alt_text", "mime_type", "width", "height", "size_bytes", "created_at"} {
		assets.AddRow(name, "varchar(255)", "YES", "", nil, "")
	}
	mock.ExpectQuery("SHOW COLUMNS FROM `media_assets`").WillReturnRows(assets)
	mock.ExpectQuery("SHOW COLUMNS FROM `listing_summaries`").WillReturnRows(
		sqlmock.NewRows(columns).
			AddRow("listing_id", "bigint", "NO", "PRI", nil, "").
			AddRow("photo_count", "bigint", "NO", "", "0", ""),
	)
	mock.ExpectQuery("SHOW COLUMNS FROM `listing_id_counters`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["media_assets"].Status)
	assert.ElementsMatch(t, []string{"primary_photo_url", "version", "updated_at"}, report.Tables["listing_summaries"].MissingColumns)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "listing_id_counters")
	assert.NoError(t, mock.ExpectationsWereMet())
}
