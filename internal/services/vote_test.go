package services

import (
	"testing"

	"rentvoice/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectReviewLookup(mock sqlmock.Sqlmock, id uint) {
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE "reviews"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id, models.ReviewStatusApproved))
}

func TestFirstVoteInsertsAndIncrementsOneCounter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVoteService(db)

	expectReviewLookup(mock, 42)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "helpfulness_votes" WHERE review_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "helpfulness_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Only helpful_count moves; not_helpful_count stays untouched.
	mock.ExpectExec(`UPDATE "reviews" SET "helpful_count"=helpful_count \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Vote(42, 1, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepeatIdenticalVoteIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVoteService(db)

	expectReviewLookup(mock, 42)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "helpfulness_votes" WHERE review_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "review_id", "user_id", "is_helpful"}).
			AddRow(5, 42, 1, true))
	mock.ExpectRollback()

	require.NoError(t, svc.Vote(42, 1, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangedVoteUpdatesRowAndSwapsCounters(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVoteService(db)

	expectReviewLookup(mock, 42)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "helpfulness_votes" WHERE review_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "review_id", "user_id", "is_helpful"}).
			AddRow(5, 42, 1, false))
	mock.ExpectExec(`UPDATE "helpfulness_votes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Old counter down, new counter up, same transaction.
	mock.ExpectExec(`UPDATE "reviews" SET "not_helpful_count"=not_helpful_count - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "reviews" SET "helpful_count"=helpful_count \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Vote(42, 1, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteOnMissingReview(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVoteService(db)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE "reviews"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Vote(404, 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountsReadTheLedger(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVoteService(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "helpfulness_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "helpfulness_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	helpful, notHelpful, err := svc.Counts(42)
	require.NoError(t, err)
	assert.Equal(t, int64(8), helpful)
	assert.Equal(t, int64(2), notHelpful)
}
