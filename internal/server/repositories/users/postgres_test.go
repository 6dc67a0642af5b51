package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pickgate/internal/common"
	"github.com/dmitrijs2005/pickgate/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*password,\s*name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
	byCredsQuery    = `(?s)^SELECT\s+id,\s*email,\s*password,\s*name,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+AND\s+password\s*=\s*\$2\s*$`
	byEmailQuery    = `(?s)^SELECT\s+id,\s*email,\s*password,\s*name,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	byIDQuery       = `(?s)^SELECT\s+id,\s*email,\s*password,\s*name,\s*created_at\s+FROM\s+users\s+WHERE\s+id::text\s*=\s*\$1\s*$`
)

var userColumns = []string{"id", "email", "password", "name", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", now)
	mock.ExpectQuery(insertUserQuery).
		WithArgs("a@x.com", "p", "A").
		WillReturnRows(rows)

	u := &models.User{Email: "a@x.com", Password: "p", Name: "A"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "42" || got.Email != "a@x.com" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs("a@x.com", "other", "B").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", Password: "other", Name: "B"})
	if !errors.Is(err, common.ErrUserAlreadyExists) {
		t.Fatalf("want ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs("a@x.com", "p", "A").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", Password: "p", Name: "A"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrUserAlreadyExists) {
		t.Fatalf("generic db error must not look like a duplicate")
	}
}

func TestFindByCredentials_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).AddRow("u-1", "a@x.com", "p", "A", time.Now())
	mock.ExpectQuery(byCredsQuery).
		WithArgs("a@x.com", "p").
		WillReturnRows(rows)

	got, err := repo.FindByCredentials(context.Background(), "a@x.com", "p")
	if err != nil {
		t.Fatalf("FindByCredentials error: %v", err)
	}
	if got.ID != "u-1" || got.Name != "A" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByCredentials_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byCredsQuery).
		WithArgs("a@x.com", "wrong").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCredentials(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byEmailQuery).
		WithArgs("a@x.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).AddRow("u-9", "z@x.com", "p", "Z", time.Now())
	mock.ExpectQuery(byIDQuery).
		WithArgs("u-9").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "u-9")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Email != "z@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
