package services

import (
	"testing"

	"rentvoice/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateApprovesPendingReview(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE "reviews"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "property_id", "status"}).
			AddRow(42, 1, 7, models.ReviewStatusPending))
	mock.ExpectExec(`UPDATE "reviews" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Author notification runs on a goroutine; expectation may stay pending.
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	review, err := svc.Moderate(42, models.ReviewStatusApproved, "looks genuine")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, review.Status)
	assert.Equal(t, "looks genuine", review.ModerationNotes)
}

func TestModerateRejectsInvalidStatus(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewModerationService(db, nil)

	for _, status := range []string{"pending", "published", ""} {
		_, err := svc.Moderate(42, status, "")
		assert.ErrorIs(t, err, ErrValidation, "status %q", status)
	}
}

func TestModerateMissingReview(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE "reviews"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Moderate(404, models.ReviewStatusRejected, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPendingJoinsPropertyAndAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)
	mock.MatchExpectationsInOrder(false) // preload order is not fixed

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE status`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "user_id", "status"}).
			AddRow(42, 7, 1, models.ReviewStatusPending).
			AddRow(41, 7, 2, models.ReviewStatusPending))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "street", "city"}).
			AddRow(7, "Dizengoff", "Tel Aviv"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name"}).
			AddRow(1, "dana").
			AddRow(2, "yoav"))

	reviews, err := svc.ListPending()
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Dizengoff", reviews[0].Property.Street)
	assert.NotEmpty(t, reviews[0].User.DisplayName)
	for _, r := range reviews {
		assert.Equal(t, models.ReviewStatusPending, r.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReportTransitions(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE "reports"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(9, models.ReportStatusPending))
	mock.ExpectExec(`UPDATE "reports" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := svc.ResolveReport(9, models.ReportStatusDismissed)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusDismissed, report.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReportRejectsInvalidStatus(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewModerationService(db, nil)

	_, err := svc.ResolveReport(9, "pending")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListReportsDefaultsToPending(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE status`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "review_id", "reported_by", "status", "reason"}).
			AddRow(9, 42, 3, models.ReportStatusPending, "spam"))
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id"}).AddRow(42, 7))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "street"}).AddRow(7, "Dizengoff"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name"}).AddRow(3, "noa"))

	reports, err := svc.ListReports("")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Dizengoff", reports[0].Review.Property.Street)
	assert.Equal(t, "noa", reports[0].Reporter.DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
