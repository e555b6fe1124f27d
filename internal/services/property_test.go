package services

import (
	"testing"

	"rentvoice/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testAddress = models.Address{
	Street:         "Dizengoff",
	BuildingNumber: "10",
	Floor:          "2",
	Apartment:      "5",
	City:           "Tel Aviv",
}

func TestResolveCreatesOnMissThenReusesRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil)

	// First resolve: miss, then insert.
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE street`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	first, err := svc.Resolve(testAddress)
	require.NoError(t, err)
	assert.Equal(t, uint(7), first.ID)

	// Second resolve: hit, no insert.
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE street`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "street", "city"}).
			AddRow(7, "Dizengoff", "Tel Aviv"))

	second, err := svc.Resolve(testAddress)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRecoversFromDuplicateKeyRace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE street`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// A concurrent submission won the insert.
	mock.ExpectQuery(`INSERT INTO "properties"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE street`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	property, err := svc.Resolve(testAddress)
	require.NoError(t, err)
	assert.Equal(t, uint(3), property.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRejectsBadAddress(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPropertyService(db, nil)

	_, err := svc.Resolve(models.Address{Street: "ab", City: "Tel Aviv"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(models.Address{Street: "Dizengoff", City: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchPaginates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "street"}).
			AddRow(1, "Dizengoff").
			AddRow(2, "Allenby"))

	page, err := svc.Search("Dizengoff, Tel Aviv", SearchOptions{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(45), page.Count)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}
