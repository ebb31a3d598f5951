package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectRejectsMalformedDSN(t *testing.T) {
	db, err := Connect(Config{
		DatabaseURL: "definitely-not-a-dsn",
		LogLevel:    gormlogger.Silent,
	})
	require.Error(t, err)
	require.Nil(t, db)
}

func TestNewDBRejectsMalformedDSN(t *testing.T) {
	db, err := NewDB("definitely-not-a-dsn")
	require.Error(t, err)
	require.Nil(t, db)
}
