package database

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"plain", Config{Host: "localhost", Port: 5432, User: "postgres", Password: "secret", Database: "hr_leave", SSLMode: "disable"}},
		{"reserved characters", Config{Host: "db.internal", Port: 6432, User: "hr@leave", Password: "p@ss/w:rd?x#1 %", Database: "hr leave", SSLMode: "require"}},
		{"ipv6 host", Config{Host: "::1", Port: 5432, User: "postgres", Password: "x", Database: "hr_leave", SSLMode: "disable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := pgxpool.ParseConfig(tt.cfg.DSN())
			require.NoError(t, err)

			cc := parsed.ConnConfig
			assert.Equal(t, tt.cfg.Host, cc.Host)
			assert.EqualValues(t, tt.cfg.Port, cc.Port)
			assert.Equal(t, tt.cfg.User, cc.User)
			assert.Equal(t, tt.cfg.Password, cc.Password)
			assert.Equal(t, tt.cfg.Database, cc.Database)
		})
	}
}
