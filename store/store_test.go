package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/planningalerts-scrapers/murraybridge/model"
)

func testApplication() *model.DevelopmentApplication {
	return &model.DevelopmentApplication{
		ApplicationNumber: "455/1234/22",
		Address:           "12 Smith Road, SA 5254",
		Description:       "Dwelling and garage",
		InformationURL:    "https://www.murraybridge.sa.gov.au/development",
		CommentURL:        "mailto:council@murraybridge.sa.gov.au",
		ScrapeDate:        "2023-05-10",
		ReceivedDate:      "2023-05-04",
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS data").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewWithDB(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertInsertsNewApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	app := testApplication()
	mock.ExpectExec("INSERT IGNORE INTO data").
		WithArgs(app.ApplicationNumber, app.Address, app.Description,
			app.InformationURL, app.CommentURL, app.ScrapeDate, app.ReceivedDate).
		WillReturnResult(sqlmock.NewResult(1, 1))

	inserted, err := NewWithDB(db).Upsert(context.Background(), app)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !inserted {
		t.Error("inserted = false, want true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertSkipsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	app := testApplication()
	mock.ExpectExec("INSERT IGNORE INTO data").
		WithArgs(app.ApplicationNumber, app.Address, app.Description,
			app.InformationURL, app.CommentURL, app.ScrapeDate, app.ReceivedDate).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := NewWithDB(db).Upsert(context.Background(), app)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if inserted {
		t.Error("inserted = true for duplicate key, want false")
	}
}

func TestUpsertEmptyReceivedDateIsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	app := testApplication()
	app.ReceivedDate = ""
	mock.ExpectExec("INSERT IGNORE INTO data").
		WithArgs(app.ApplicationNumber, app.Address, app.Description,
			app.InformationURL, app.CommentURL, app.ScrapeDate, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := NewWithDB(db).Upsert(context.Background(), app); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM data").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewWithDB(db).Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 7 {
		t.Errorf("Count = %d, want 7", n)
	}
}
