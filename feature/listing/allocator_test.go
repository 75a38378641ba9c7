package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"listing-media/core/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Counter{}, &Record{}))
	return db
}

var testCfg = AllocatorConfig{CounterName: "listing_id", StartValue: 0, PartitionThreshold: 1000}

func TestAllocate_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `listing_id_counters` SET `value`=value \\+ 1 WHERE name = \\? AND value \\+ 1 < \\?").
		WithArgs("listing_id", int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `value` FROM `listing_id_counters` WHERE name = \\?").
		WithArgs("listing_id").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))
	mock.ExpectCommit()

	id, err := NewAllocator(db, testCfg, zap.NewNop()).Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocate_MySQLWriteFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `listing_id_counters`").WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	id, err := NewAllocator(db, testCfg, zap.NewNop()).Allocate(context.Background())
	assert.Zero(t, id)
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
	assert.ErrorContains(t, err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocate_SequentialFromSeed(t *testing.T) {
	db := setupTestDB(t, "alloc_sequential")
	a := NewAllocator(db, AllocatorConfig{CounterName: "listing_id", StartValue: 100, PartitionThreshold: 1000}, zap.NewNop())
	require.NoError(t, a.Seed(context.Background()))
	require.NoError(t, a.Seed(context.Background()))

	next, err := a.PeekNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), next)

	first, err := a.Allocate(context.Background())
	require.NoError(t, err)
	second, err := a.Allocate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(101), first)
	assert.Equal(t, int64(102), second)

	next, err = a.PeekNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(103), next)
}

func TestAllocate_ConcurrentCallersGetDistinctIDs(t *testing.T) {
	db := setupTestDB(t, "alloc_concurrent")
	a := NewAllocator(db, testCfg, zap.NewNop())
	require.NoError(t, a.Seed(context.Background()))

	const n = 25
	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = a.Allocate(context.Background())
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Less(t, ids[i], testCfg.PartitionThreshold)
		assert.False(t, seen[ids[i]], "duplicate id %d", ids[i])
		seen[ids[i]] = true
	}
	for want := int64(1); want <= n; want++ {
		assert.True(t, seen[want], "id %d was skipped", want)
	}
}

func TestAllocate_PartitionExhausted(t *testing.T) {
	db := setupTestDB(t, "alloc_exhausted")
	a := NewAllocator(db, AllocatorConfig{CounterName: "listing_id", StartValue: 7, PartitionThreshold: 10}, zap.NewNop())
	require.NoError(t, a.Seed(context.Background()))

	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	id, err = a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	_, err = a.Allocate(context.Background())
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
	assert.ErrorContains(t, err, "exhausted")

	_, err = a.PeekNext(context.Background())
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
}

func TestAllocate_Uninitialised(t *testing.T) {
	db := setupTestDB(t, "alloc_uninitialised")
	a := NewAllocator(db, testCfg, zap.NewNop())

	_, err := a.Allocate(context.Background())
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
	assert.ErrorContains(t, err, "not initialised")

	_, err = a.PeekNext(context.Background())
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
}

func TestAllocate_NilDB(t *testing.T) {
	_, err := NewAllocator(nil, testCfg, zap.NewNop()).Allocate(context.Background())
	assert.ErrorIs(t, err, apperror.ErrAllocationFailure)
}

func TestSeed_RejectsStartOutsidePartition(t *testing.T) {
	db := setupTestDB(t, "alloc_bad_seed")
	a := NewAllocator(db, AllocatorConfig{CounterName: "listing_id", StartValue: 999, PartitionThreshold: 1000}, zap.NewNop())
	assert.ErrorIs(t, a.Seed(context.Background()), apperror.ErrAllocationFailure)
}

func TestProvider_Lookup(t *testing.T) {
	db := setupTestDB(t, "provider_lookup")
	require.NoError(t, db.Create(&Record{ListingID: 42, ListingKey: "EX42", StreetNumber: "12", StreetName: "Main St", City: "Springfield"}).Error)

	p := NewProvider(db)

	rec, err := p.Lookup(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "EX42", rec.ListingKey)

	rec, err = p.Lookup(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = NewProvider(nil).Lookup(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, rec)
}
