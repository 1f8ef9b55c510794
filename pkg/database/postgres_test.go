package database

import "testing"

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     "5433",
		User:     "ledger",
		Password: "s3cret",
		DBName:   "ledgerdb",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=ledger password=s3cret dbname=ledgerdb sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
