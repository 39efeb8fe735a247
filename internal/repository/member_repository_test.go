package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockMemberRepo(t *testing.T) (MemberRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewMemberRepository(db), mock
}

func TestGormMemberRepository_SetActive(t *testing.T) {
	repo, mock := setupMockMemberRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `members` SET")).
		WithArgs(false, sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetActive(1, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_SetActive_NoRowMatched(t *testing.T) {
	repo, mock := setupMockMemberRepo(t)

	// The update succeeds at the SQL level but matches no row. That must
	// surface as an error, not a silent no-op.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `members` SET")).
		WithArgs(false, sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetActive(42, false)
	require.ErrorIs(t, err, ErrMemberRowMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_CountTasksAssigned(t *testing.T) {
	repo, mock := setupMockMemberRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `tasks`")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.CountTasksAssigned(7)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
