package postgres

import (
	"testing"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	c := &cfg.PGDBCfg{
		Host:     "db",
		Port:     "5433",
		User:     "rawline",
		Password: "secret",
		DBName:   "store",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(c)
	assert.Equal(t, "host=db port=5433 user=rawline password=secret dbname=store sslmode=disable", dsn)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolCfg.ConnConfig.Port)
	assert.Equal(t, "store", poolCfg.ConnConfig.Database)
}
