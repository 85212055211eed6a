package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/mocks"
	"github.com/plumehq/plume-api/internal/service"
	"github.com/plumehq/plume-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServiceUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		BirthDate:      time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		HashedPassword: "hashed-pw",
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestUserServiceCreateUser(t *testing.T) {
	t.Parallel()

	input := service.CreateUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		BirthDate: time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		Password:  "sup3r-secret!",
	}

	t.Run("hashes password and persists", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		hasher := &mocks.MockPasswordHasher{Hashed: "bcrypt-hash"}
		svc := service.NewUserService(userStore, mocks.NewMockPostStore(), hasher, nil, slog.Default())

		user, err := svc.CreateUser(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, "bcrypt-hash", user.HashedPassword)
		assert.NotEqual(t, uuid.Nil, user.ID)

		stored, err := userStore.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("existing email becomes a validation violation", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userStore.Users["ada@example.com"] = testServiceUser()
		svc := service.NewUserService(
			userStore,
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			nil,
			slog.Default(),
		)

		_, err := svc.CreateUser(context.Background(), input)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, domain.Violation{Field: "email", Message: "is already taken"}, verr.Violations[0])
	})

	t.Run("pre-check is case-insensitive", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userStore.Users["ada@example.com"] = testServiceUser()
		svc := service.NewUserService(
			userStore,
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			nil,
			slog.Default(),
		)

		upper := input
		upper.Email = "ADA@Example.COM"
		_, err := svc.CreateUser(context.Background(), upper)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("lost uniqueness race surfaces the store error", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userStore.CreateError = store.ErrEmailExists
		svc := service.NewUserService(
			userStore,
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			nil,
			slog.Default(),
		)

		_, err := svc.CreateUser(context.Background(), input)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("hashing failure aborts creation", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		hasher := &mocks.MockPasswordHasher{HashErr: errors.New("no entropy")}
		svc := service.NewUserService(userStore, mocks.NewMockPostStore(), hasher, nil, slog.Default())

		_, err := svc.CreateUser(context.Background(), input)
		assert.Error(t, err)
		assert.Empty(t, userStore.Users)
	})
}

func TestUserServiceEmailTaken(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.Users["ada@example.com"] = testServiceUser()
	svc := service.NewUserService(
		userStore,
		mocks.NewMockPostStore(),
		&mocks.MockPasswordHasher{},
		nil,
		slog.Default(),
	)

	taken, err := svc.EmailTaken(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.EmailTaken(context.Background(), "ADA@Example.COM")
	require.NoError(t, err)
	assert.True(t, taken, "lookup must be case-insensitive")

	taken, err = svc.EmailTaken(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserServiceUpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("changes only provided fields inside a transaction", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		existing := testServiceUser()
		userStore := mocks.NewMockUserStore()
		userStore.Users["ada@example.com"] = existing

		svc := service.NewUserService(
			userStore,
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			db,
			slog.Default(),
		)

		newName := "Augusta"
		updated, err := svc.UpdateUser(context.Background(), existing.ID, service.UpdateUserInput{
			FirstName: &newName,
		})
		require.NoError(t, err)

		assert.Equal(t, "Augusta", updated.FirstName)
		assert.Equal(t, "Lovelace", updated.LastName)
		assert.Equal(t, existing.BirthDate, updated.BirthDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := service.NewUserService(
			mocks.NewMockUserStore(),
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			db,
			slog.Default(),
		)

		newName := "Augusta"
		_, err = svc.UpdateUser(context.Background(), uuid.New(), service.UpdateUserInput{
			FirstName: &newName,
		})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserServiceDeleteUserCascades(t *testing.T) {
	t.Parallel()

	t.Run("deletes posts then user in one transaction", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		user := testServiceUser()
		userStore := mocks.NewMockUserStore()
		userStore.Users["ada@example.com"] = user

		postStore := mocks.NewMockPostStore()
		for i := 0; i < 3; i++ {
			post, err := domain.NewPost("Hello World", "This is long enough content.", true, user.ID)
			require.NoError(t, err)
			postStore.Posts[post.ID] = post
		}
		other, err := domain.NewPost("Hello World", "This is long enough content.", true, uuid.New())
		require.NoError(t, err)
		postStore.Posts[other.ID] = other

		var order []string
		postStore.DeleteByUserIDFn = func(ctx context.Context, userID uuid.UUID) (int64, error) {
			order = append(order, "posts")
			var deleted int64
			for id, post := range postStore.Posts {
				if post.UserID == userID {
					delete(postStore.Posts, id)
					deleted++
				}
			}
			return deleted, nil
		}
		userStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "user")
			delete(userStore.Users, user.Email)
			return nil
		}

		svc := service.NewUserService(userStore, postStore, &mocks.MockPasswordHasher{}, db, slog.Default())

		require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

		assert.Equal(t, []string{"posts", "user"}, order)
		assert.Empty(t, userStore.Users)
		assert.Len(t, postStore.Posts, 1, "other users' posts must survive")
		assert.Contains(t, postStore.Posts, other.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back and leaves no partial state", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := service.NewUserService(
			mocks.NewMockUserStore(),
			mocks.NewMockPostStore(),
			&mocks.MockPasswordHasher{},
			db,
			slog.Default(),
		)

		err = svc.DeleteUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("post deletion failure aborts before the user row", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		user := testServiceUser()
		userStore := mocks.NewMockUserStore()
		userStore.Users["ada@example.com"] = user

		postStore := mocks.NewMockPostStore()
		postStore.DeleteByUserIDFn = func(ctx context.Context, userID uuid.UUID) (int64, error) {
			return 0, errors.New("disk on fire")
		}

		svc := service.NewUserService(userStore, postStore, &mocks.MockPasswordHasher{}, db, slog.Default())

		err = svc.DeleteUser(context.Background(), user.ID)
		assert.Error(t, err)
		assert.Len(t, userStore.Users, 1, "user row must survive a failed cascade")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
