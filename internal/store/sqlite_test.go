package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOpen_NoExistingRow_FormatsAndPersistsFreshImage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer closeDB(t, db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS oven_catalog")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectCatalogSQL)).
		WithArgs(catalogRowID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_catalog")).
		WithArgs(catalogRowID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := Open(context.Background(), db, 4096)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !s.ValidateSignature() {
		t.Fatalf("expected freshly formatted catalog to carry a valid signature")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestOpen_LoadsExistingImageWithoutReformatting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer closeDB(t, db)

	existing := New(2048)
	_ = existing.Append(reflowFixture())

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS oven_catalog")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"image"}).AddRow(existing.Bytes())
	mock.ExpectQuery(regexp.QuoteMeta(selectCatalogSQL)).
		WithArgs(catalogRowID).
		WillReturnRows(rows)

	s, err := Open(context.Background(), db, 2048)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := s.Count()
	if err != nil || n != 1 {
		t.Fatalf("expected 1 profile carried over, got n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteBacked_Append_FlushesUpdatedImage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer closeDB(t, db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS oven_catalog")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectCatalogSQL)).
		WithArgs(catalogRowID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_catalog")).
		WithArgs(catalogRowID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := Open(context.Background(), db, 4096)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_catalog")).
		WithArgs(catalogRowID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Append(context.Background(), reflowFixture()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func closeDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
}
