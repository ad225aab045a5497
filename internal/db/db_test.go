package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"os/exec"
	"testing"

	"artmarket-gateway/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "Full",
			cfg: config.Config{
				DBHost: "localhost", DBPort: "5432", DBUser: "gateway",
				DBPassword: "secret", DBName: "analytics", DBSSLMode: "require",
			},
			want: "host=localhost port=5432 user=gateway password=secret dbname=analytics sslmode=require application_name=artmarket-gateway",
		},
		{
			name: "DefaultsAndOmissions",
			cfg:  config.Config{DBHost: "db", DBName: "analytics"},
			want: "host=db dbname=analytics sslmode=disable application_name=artmarket-gateway",
		},
		{
			name: "QuotedPassword",
			cfg:  config.Config{DBHost: "db", DBPassword: `it's a \secret`},
			want: `host=db password='it\'s a \\secret' sslmode=disable application_name=artmarket-gateway`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(&tt.cfg))
		})
	}
}

func TestNewDatabase_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{DBHost: "invalid_host", DBPort: "5432"}

	db, err := NewDatabase(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, Ping(context.Background(), db))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	err = Ping(context.Background(), db)
	assert.ErrorContains(t, err, "failed to ping DB: connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitDB_Failure(t *testing.T) {
	// InitDB exits the process, so it runs in a child test binary.
	if os.Getenv("BE_CRASHER") == "1" {
		InitDB(&config.Config{DBHost: "invalid_host", DBPort: "5432"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !exitErr.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want exit status 1", err)
}

type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error) { return &mockConn{}, nil }

type mockConn struct{}

func (c *mockConn) Prepare(query string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *mockConn) Close() error                              { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                 { return nil, errors.New("not supported") }

func init() {
	sql.Register("mock_driver_success", &mockDriver{})
}

func TestNewDatabase_Success(t *testing.T) {
	cfg := &config.Config{DBHost: "localhost", DBMaxOpenConns: 4}

	db, err := newDatabaseWithDriver(cfg, "mock_driver_success")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
}
