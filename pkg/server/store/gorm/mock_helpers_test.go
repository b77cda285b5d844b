package gorm

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockDB wraps sqlmock for testing GORM-based stores
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

func (m *MockDB) Close() error {
	return m.DB.Close()
}

// VerifyExpectations checks all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}

var resourceRowColumns = []string{"id", "title", "resource_type", "body", "description", "url", "author", "tags", "created_at"}
