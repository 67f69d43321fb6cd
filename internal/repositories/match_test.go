package repositories

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nextstep/scholarship-matcher/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func testMatch(candidateID, scholarshipID uuid.UUID, score float64) models.ScholarshipMatch {
	return models.ScholarshipMatch{
		ID:            uuid.New(),
		CandidateID:   candidateID,
		ScholarshipID: scholarshipID,
		Score:         score,
		CreatedAt:     time.Now(),
	}
}

func TestReplaceForCandidate_DeletesThenInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	candidateID := uuid.New()
	matches := []models.ScholarshipMatch{
		testMatch(candidateID, uuid.New(), 72.5),
		testMatch(candidateID, uuid.New(), 41.33),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "scholarship_matches"`)).
		WithArgs(candidateID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "scholarship_matches"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceForCandidate(candidateID, matches)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForCandidate_EmptySetOnlyDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	candidateID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "scholarship_matches"`)).
		WithArgs(candidateID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.ReplaceForCandidate(candidateID, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForCandidate_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	candidateID := uuid.New()
	matches := []models.ScholarshipMatch{testMatch(candidateID, uuid.New(), 55.0)}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "scholarship_matches"`)).
		WithArgs(candidateID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "scholarship_matches"`)).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := repo.ReplaceForCandidate(candidateID, matches)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace matches for candidate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForScholarship_DeletesThenInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	scholarshipID := uuid.New()
	matches := []models.ScholarshipMatch{
		testMatch(uuid.New(), scholarshipID, 88.0),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "scholarship_matches"`)).
		WithArgs(scholarshipID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "scholarship_matches"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceForScholarship(scholarshipID, matches)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCandidate_OrdersByScoreDescending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	candidateID := uuid.New()
	scholarshipID := uuid.New()
	matchID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scholarship_matches" WHERE candidate_id = $1 ORDER BY score DESC`)).
		WithArgs(candidateID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "candidate_id", "scholarship_id", "score", "created_at"}).
			AddRow(matchID, candidateID, scholarshipID, 64.25, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scholarships"`)).
		WithArgs(scholarshipID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow(scholarshipID, "STEM Excellence Award", "For outstanding STEM students"))

	matches, err := repo.FindByCandidate(candidateID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 64.25, matches[0].Score)
	require.NotNil(t, matches[0].Scholarship)
	assert.Equal(t, "STEM Excellence Award", matches[0].Scholarship.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCandidate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	candidateID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "scholarship_matches"`)).
		WithArgs(candidateID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.DeleteByCandidate(candidateID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
