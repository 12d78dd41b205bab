package mariadb

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers translated by TranslateError.
const (
	codeDuplicateEntry     uint16 = 1062
	codeNoSuchTable        uint16 = 1146
	codeRowIsReferenced    uint16 = 1451
	codeNoReferencedRow    uint16 = 1452
	codeRowIsReferencedOld uint16 = 1217
	codeNoReferencedRowOld uint16 = 1216
)

var (
	// ErrNotInitialized is returned when the connection has not been opened yet or has
	// already been closed.
	ErrNotInitialized = errors.New("mariadb: connection not initialized")

	// ErrInvalidConfig is returned when the configuration is incomplete or malformed.
	ErrInvalidConfig = errors.New("mariadb: invalid configuration")

	// ErrConnectionFailed is returned when the server cannot be reached or rejects the
	// credentials.
	ErrConnectionFailed = errors.New("mariadb: connection failed")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNoSuchTable is returned when a statement references a table that does not exist
	ErrNoSuchTable = errors.New("table does not exist")
)

// StatementError is returned when the server rejects a statement. It carries the driver
// error code and message together with the statement text that failed.
type StatementError struct {
	// Code is the MySQL error number, or 0 when the failure did not come from the server.
	Code uint16

	// Message is the driver's error message.
	Message string

	// Query is the statement that was sent.
	Query string

	// Err is the underlying driver error.
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("There was an error running the query [%s]", e.Message)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func newStatementError(query string, err error) *StatementError {
	statementErr := &StatementError{
		Message: err.Error(),
		Query:   query,
		Err:     err,
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		statementErr.Code = mysqlErr.Number
		statementErr.Message = mysqlErr.Message
	}

	return statementErr
}

// TranslateError converts driver and GORM errors into the package's sentinel errors so
// callers can branch on them without knowing MySQL error numbers.
//
// Errors that do not match a known condition are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case codeDuplicateEntry:
			return ErrDuplicateKey
		case codeRowIsReferenced, codeNoReferencedRow, codeRowIsReferencedOld, codeNoReferencedRowOld:
			return ErrForeignKey
		case codeNoSuchTable:
			return ErrNoSuchTable
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	return err
}
