package database

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres, log: zerolog.Nop()}
	lite := &DB{driver: DriverSQLite, log: zerolog.Nop()}

	query := "UPDATE documents SET body = ?, updated_at = ? WHERE path = ?"

	if got, want := pg.Rebind(query), "UPDATE documents SET body = $1, updated_at = $2 WHERE path = $3"; got != want {
		t.Errorf("postgres rebind:\n got  %s\n want %s", got, want)
	}
	if got := lite.Rebind(query); got != query {
		t.Errorf("sqlite should keep ? placeholders, got %s", got)
	}
}
