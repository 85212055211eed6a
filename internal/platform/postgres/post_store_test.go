package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postColumns = []string{
	"id", "title", "content", "published", "user_id", "created_at", "updated_at",
}

func newStorePost(t *testing.T) *domain.Post {
	t.Helper()

	post, err := domain.NewPost(
		"Analytical Engines",
		"Notes on the operation of the analytical engine.",
		true,
		uuid.New(),
	)
	require.NoError(t, err)
	return post
}

func postRow(post *domain.Post) *sqlmock.Rows {
	return sqlmock.NewRows(postColumns).AddRow(
		post.ID.String(),
		post.Title,
		post.Content,
		post.Published,
		post.UserID.String(),
		post.CreatedAt,
		post.UpdatedAt,
	)
}

func TestPostgresPostStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts all columns", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		post := newStorePost(t)
		mock.ExpectExec("INSERT INTO posts").
			WithArgs(
				post.ID,
				post.Title,
				post.Content,
				post.Published,
				post.UserID,
				post.CreatedAt,
				post.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresPostStore(db, nil)
		require.NoError(t, s.Create(context.Background(), post))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation maps to ErrInvalidReference", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO posts").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_user_id_fkey"})

		s := NewPostgresPostStore(db, nil)
		err = s.Create(context.Background(), newStorePost(t))
		assert.ErrorIs(t, err, store.ErrInvalidReference)
	})

	t.Run("invalid post never reaches the database", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		post := newStorePost(t)
		post.Title = "no"

		s := NewPostgresPostStore(db, nil)
		assert.ErrorIs(t, s.Create(context.Background(), post), domain.ErrInvalidTitle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresPostStoreGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		post := newStorePost(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
			WithArgs(post.ID).
			WillReturnRows(postRow(post))

		s := NewPostgresPostStore(db, nil)
		got, err := s.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, post.UserID, got.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
			WillReturnError(sql.ErrNoRows)

		s := NewPostgresPostStore(db, nil)
		_, err = s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})
}

func TestPostgresPostStoreList(t *testing.T) {
	t.Parallel()

	t.Run("empty table yields empty slice", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY created_at").
			WillReturnRows(sqlmock.NewRows(postColumns))

		s := NewPostgresPostStore(db, nil)
		posts, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("filters by user", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		post := newStorePost(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id").
			WithArgs(post.UserID).
			WillReturnRows(postRow(post))

		s := NewPostgresPostStore(db, nil)
		posts, err := s.ListByUserID(context.Background(), post.UserID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, post.ID, posts[0].ID)
	})
}

func TestPostgresPostStoreUpdate(t *testing.T) {
	t.Parallel()

	t.Run("writes title and content only", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		post := newStorePost(t)
		mock.ExpectExec("UPDATE posts SET title").
			WithArgs(post.Title, post.Content, sqlmock.AnyArg(), post.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresPostStore(db, nil)
		require.NoError(t, s.Update(context.Background(), post))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE posts SET title").
			WillReturnResult(sqlmock.NewResult(0, 0))

		s := NewPostgresPostStore(db, nil)
		assert.ErrorIs(t, s.Update(context.Background(), newStorePost(t)), store.ErrPostNotFound)
	})
}

func TestPostgresPostStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes the row", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM posts WHERE id").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresPostStore(db, nil)
		require.NoError(t, s.Delete(context.Background(), id))
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM posts WHERE id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		s := NewPostgresPostStore(db, nil)
		assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), store.ErrPostNotFound)
	})
}

func TestPostgresPostStoreDeleteByUserID(t *testing.T) {
	t.Parallel()

	t.Run("returns deleted count", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		userID := uuid.New()
		mock.ExpectExec("DELETE FROM posts WHERE user_id").
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 3))

		s := NewPostgresPostStore(db, nil)
		count, err := s.DeleteByUserID(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("zero rows is not an error", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM posts WHERE user_id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		s := NewPostgresPostStore(db, nil)
		count, err := s.DeleteByUserID(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
