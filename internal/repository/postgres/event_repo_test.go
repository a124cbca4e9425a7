package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventradar/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var docColumns = []string{"doc_id", "data", "created_at", "updated_at"}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		errIs   error
		wantErr bool
	}{
		{
			name: "success with image",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data, created_at, updated_at\s+FROM documents\s+WHERE path = \$1`).
					WithArgs("events/ev-1").
					WillReturnRows(sqlmock.NewRows(docColumns).
						AddRow("ev-1", []byte(`{"title":"Summer BBQ","image":"https://storage.example/v0/b/b/o/event_images%2Fa.jpg"}`), created, created))
			},
			want: &domain.Event{
				ID:        "ev-1",
				Title:     "Summer BBQ",
				Image:     "https://storage.example/v0/b/b/o/event_images%2Fa.jpg",
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
		{
			name: "non-string image is ignored",
			id:   "ev-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data`).
					WithArgs("events/ev-2").
					WillReturnRows(sqlmock.NewRows(docColumns).
						AddRow("ev-2", []byte(`{"title":"Quiz","image":null}`), created, created))
			},
			want: &domain.Event{ID: "ev-2", Title: "Quiz", CreatedAt: created, UpdatedAt: created},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data`).
					WithArgs("events/ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "document without data",
			id:   "ev-empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data`).
					WithArgs("events/ev-empty").
					WillReturnRows(sqlmock.NewRows(docColumns).AddRow("ev-empty", nil, created, created))
			},
			wantErr: true,
			errIs:   domain.ErrNoData,
		},
		{
			name: "json null data",
			id:   "ev-null",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data`).
					WithArgs("events/ev-null").
					WillReturnRows(sqlmock.NewRows(docColumns).AddRow("ev-null", []byte("null"), created, created))
			},
			wantErr: true,
			errIs:   domain.ErrNoData,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc_id, data`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db, true)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_DeleteRecursive(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes subtree in a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM documents WHERE path = \$1 OR path LIKE \$2`).
			WithArgs("events/ev_1", `events/ev\_1/%`).
			WillReturnResult(sqlmock.NewResult(0, 7))
		mock.ExpectCommit()

		repo := NewEventRepository(db, true)
		require.NoError(t, repo.DeleteRecursive(ctx, "ev_1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM documents`).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewEventRepository(db, true)
		require.ErrorIs(t, repo.DeleteRecursive(ctx, "ev-1"), sql.ErrConnDone)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("disabled bulk delete is unsupported", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewEventRepository(db, false)
		require.ErrorIs(t, repo.DeleteRecursive(ctx, "ev-1"), domain.ErrBulkDeleteUnsupported)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// zero rows affected still succeeds: the document is already gone.
	mock.ExpectExec(`DELETE FROM documents WHERE path = \$1`).
		WithArgs("events/ev-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db, true)
	require.NoError(t, repo.Delete(context.Background(), "ev-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `events/a\%b\_c\\d`, escapeLike(`events/a%b_c\d`))
}
