package database_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	gormmysql "gorm.io/driver/mysql"

	"github.com/Aleph-Alpha/dbal/v1/clause"
	"github.com/Aleph-Alpha/dbal/v1/database"
	"github.com/Aleph-Alpha/dbal/v1/mariadb"
)

var _ database.Client = (*mariadb.MariaDB)(nil)

// Example showing how to create a MariaDB config
func ExampleMariaDBConfig() {
	cfg := database.MariaDBConfig(mariadb.NewConfig("localhost", "auth", "secret", "accounts"))

	fmt.Println(cfg.Type, cfg.MariaDB.Connection.DbName)
	// Output: mariadb accounts
}

// UserRepository shows a consumer written against the Client interface only.
type UserRepository struct {
	db database.Client
}

var errUserNotFound = errors.New("user not found")

func NewUserRepository(db database.Client) *UserRepository {
	return &UserRepository{db: db}
}

// FindIDByEmail looks a user up by the two halves of their address.
func (r *UserRepository) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	username, domain, ok := strings.Cut(strings.ToLower(email), "@")
	if !ok || strings.Contains(domain, "@") {
		return 0, errUserNotFound
	}

	rows, err := r.db.Select(ctx, "users",
		clause.Match(clause.Eq("username", username), clause.Eq("domain", domain)),
		nil,
		clause.Take(1),
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, errors.Join(errUserNotFound, rows.Err())
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ChangePasswordHash stores a new password hash for the user.
func (r *UserRepository) ChangePasswordHash(ctx context.Context, id int64, hash string) error {
	affected, err := r.db.Update(ctx, "users",
		clause.Values{clause.Set("password", hash)},
		clause.Match(clause.Eq("id", id)),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errUserNotFound
	}
	return nil
}

func newMockClient(t *testing.T) (*mariadb.MariaDB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db, err := mariadb.NewMariaDB(mariadb.NewConfig("localhost", "auth", "secret", "accounts"),
		mariadb.WithDialector(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true})),
	)
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockClient(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT * FROM `users` WHERE `username` = 'jane' AND `domain` = 'example.com' LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery("SELECT * FROM `users` WHERE `username` = 'x\\' or 1=1 -- ' AND `domain` = 'example.com' LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `users` SET `password` = '$2y$10$hash' WHERE `id` = '12'").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.FindIDByEmail(ctx, "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = repo.FindIDByEmail(ctx, "x' OR 1=1 -- @example.com")
	assert.ErrorIs(t, err, errUserNotFound)

	_, err = repo.FindIDByEmail(ctx, "not-an-address")
	assert.ErrorIs(t, err, errUserNotFound)

	require.NoError(t, repo.ChangePasswordHash(ctx, id, "$2y$10$hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewClientWithDI(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		_, err := database.NewClientWithDI(database.DatabaseParams{Config: database.Config{Type: "postgres"}})
		assert.Error(t, err)
	})

	t.Run("missing mariadb config", func(t *testing.T) {
		_, err := database.NewClientWithDI(database.DatabaseParams{Config: database.Config{Type: "mysql"}})
		assert.Error(t, err)
	})

	t.Run("invalid mariadb config", func(t *testing.T) {
		_, err := database.NewClientWithDI(database.DatabaseParams{
			Config: database.MariaDBConfig(mariadb.Config{}),
		})
		assert.ErrorIs(t, err, mariadb.ErrInvalidConfig)
	})
}

func TestRegisterDatabaseLifecycle(t *testing.T) {
	db, mock := newMockClient(t)
	mock.ExpectClose()

	app := fxtest.New(t,
		fx.Provide(func() database.Client { return db }),
		fx.Invoke(database.RegisterDatabaseLifecycle),
	)
	app.RequireStart()
	app.RequireStop()

	_, err := db.Escape("x")
	assert.ErrorIs(t, err, mariadb.ErrNotInitialized)
	assert.NoError(t, mock.ExpectationsWereMet())
}
