package mariadb

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/dbal/v1/clause"
)

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("filtered, sorted and limited", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		query := "SELECT * FROM `users` WHERE `age` > '18' AND `active` = '1' ORDER BY `name` ASC LIMIT 10"
		mock.ExpectQuery(query).WillReturnRows(
			sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "alice").AddRow(2, "bob"),
		)

		rows, err := db.Select(ctx, "users",
			clause.Match(clause.Cmp("age", ">", 18), clause.Eq("active", true)),
			clause.OrderBy{clause.Asc("name")},
			clause.Take(10),
		)
		require.NoError(t, err)
		defer rows.Close()

		var names []string
		for rows.Next() {
			var id int
			var name string
			require.NoError(t, rows.Scan(&id, &name))
			names = append(names, name)
		}
		require.NoError(t, rows.Err())

		assert.Equal(t, []string{"alice", "bob"}, names)
		assert.Equal(t, query, db.LastQuery())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("everything", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectQuery("SELECT * FROM `users`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rows, err := db.Select(ctx, "users", clause.Where{}, nil, clause.Limit{})
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("paged", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectQuery("SELECT * FROM `users` WHERE `deleted_at` IS NULL LIMIT 20,10").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rows, err := db.Select(ctx, "users", clause.Match(clause.IsNull("deleted_at")), nil, clause.Page(20, 10))
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("builder errors send nothing", func(t *testing.T) {
		db, mock := newMockMariaDB(t)

		_, err := db.Select(ctx, "users", clause.Where{}, nil, clause.Take(-1))
		assert.ErrorIs(t, err, clause.ErrInvalidLimit)

		_, err = db.Select(ctx, "users", clause.Match(clause.Cmp("a", "===", 1)), nil, clause.Limit{})
		assert.ErrorIs(t, err, clause.ErrInvalidOperator)

		assert.Empty(t, db.LastQuery())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsert(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the new id", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectExec("INSERT INTO `users` (`name`, `email`) VALUES ('bob', 'bob@example.com')").
			WillReturnResult(sqlmock.NewResult(42, 1))

		id, err := db.Insert(ctx, "users", clause.Values{
			clause.Set("name", "bob"),
			clause.Set("email", "bob@example.com"),
		})
		require.NoError(t, err)

		assert.True(t, id.Valid)
		assert.Equal(t, int64(42), id.Int64)
		assert.Equal(t, int64(42), db.LastInsertID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty values are a no-op", func(t *testing.T) {
		db, mock := newMockMariaDB(t)

		id, err := db.Insert(ctx, "users", nil)
		require.NoError(t, err)

		assert.False(t, id.Valid)
		assert.Empty(t, db.LastQuery())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("values from a map are sorted", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectExec("INSERT INTO `users` (`age`, `name`) VALUES ('30', 'O\\'Hara')").
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := db.Insert(ctx, "users", clause.ValuesFromMap(map[string]any{"name": "O'Hara", "age": 30}))
		require.NoError(t, err)
		assert.Equal(t, int64(7), id.Int64)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns affected rows", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectExec("UPDATE `users` SET `active` = '0', `note` = NULL WHERE `id` = '7' OR `id` = '8'").
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := db.Update(ctx, "users",
			clause.Values{clause.Set("active", false), clause.Set("note", nil)},
			clause.MatchAny(clause.Eq("id", 7), clause.Eq("id", 8)),
		)
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty values are a no-op", func(t *testing.T) {
		db, mock := newMockMariaDB(t)

		affected, err := db.Update(ctx, "users", clause.Values{}, clause.Match(clause.Eq("id", 7)))
		require.NoError(t, err)
		assert.Zero(t, affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	db, mock := newMockMariaDB(t)
	mock.ExpectExec("DELETE FROM `sessions` WHERE `token` = 'abc'").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := db.Delete(context.Background(), "sessions", "token", "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	ctx := context.Background()

	t.Run("with conditions", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectQuery("SELECT COUNT(`id`) FROM `users` WHERE `active` = '1'").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(`id`)"}).AddRow(5))

		count, err := db.Count(ctx, "users", "id", clause.Match(clause.Eq("active", 1)))
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without conditions", func(t *testing.T) {
		db, mock := newMockMariaDB(t)
		mock.ExpectQuery("SELECT COUNT(`id`) FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(`id`)"}).AddRow(0))

		count, err := db.Count(ctx, "users", "id", clause.Where{})
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStatementFailure(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockMariaDB(t)

	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES ('alice')").WillReturnResult(sqlmock.NewResult(1, 1))
	failing := "INSERT INTO `users` (`name`) VALUES ('alice')"
	mock.ExpectExec(failing).WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'alice' for key 'name'",
	})

	_, err := db.Insert(ctx, "users", clause.Values{clause.Set("name", "alice")})
	require.NoError(t, err)

	_, err = db.Insert(ctx, "users", clause.Values{clause.Set("name", "alice")})
	require.Error(t, err)

	var statementErr *StatementError
	require.True(t, errors.As(err, &statementErr))
	assert.Equal(t, uint16(1062), statementErr.Code)
	assert.Equal(t, failing, statementErr.Query)
	assert.Equal(t, "There was an error running the query [Duplicate entry 'alice' for key 'name']", err.Error())
	assert.ErrorIs(t, TranslateError(err), ErrDuplicateKey)

	assert.Equal(t, failing, db.LastQuery())
	assert.Equal(t, int64(1), db.LastInsertID(), "a failed statement keeps the previous insert id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawStatements(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockMariaDB(t)

	mock.ExpectExec("UPDATE `users` SET `visits` = `visits` + 1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("SELECT NOW()").WillReturnRows(sqlmock.NewRows([]string{"NOW()"}).AddRow("2024-01-02 03:04:05"))

	result, err := db.Exec(ctx, "UPDATE `users` SET `visits` = `visits` + 1")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	rows, err := db.Query(ctx, "SELECT NOW()")
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	assert.Equal(t, "SELECT NOW()", db.LastQuery())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverNotified(t *testing.T) {
	ctx := context.Background()
	observer := &TestObserver{}
	db, mock := newMockMariaDB(t, WithObserver(observer))

	mock.ExpectExec("DELETE FROM `sessions` WHERE `user_id` = '9'").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectQuery("SELECT * FROM `missing`").WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'accounts.missing' doesn't exist"})

	_, err := db.Delete(ctx, "sessions", "user_id", 9)
	require.NoError(t, err)
	_, err = db.Select(ctx, "missing", clause.Where{}, nil, clause.Limit{})
	assert.ErrorIs(t, TranslateError(err), ErrNoSuchTable)

	ops := observer.GetOperations()
	require.Len(t, ops, 2)

	assert.Equal(t, "mariadb", ops[0].Component)
	assert.Equal(t, "delete", ops[0].Operation)
	assert.Equal(t, "sessions", ops[0].Resource)
	assert.Equal(t, "user_id", ops[0].SubResource)
	assert.Equal(t, int64(4), ops[0].Size)
	assert.NoError(t, ops[0].Error)

	assert.Equal(t, "select", ops[1].Operation)
	assert.Equal(t, "missing", ops[1].Resource)
	assert.Error(t, ops[1].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
