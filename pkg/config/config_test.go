package config

import "testing"

func TestDBConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DBConfig
		wantErr bool
	}{
		{name: "sqlite", cfg: DBConfig{Driver: DriverSQLite, DSN: "caisse.db"}},
		{name: "postgres", cfg: DBConfig{Driver: DriverPostgres, DSN: "postgres://localhost/caisse"}},
		{name: "unknown driver", cfg: DBConfig{Driver: "oracle", DSN: "x"}, wantErr: true},
		{name: "missing dsn", cfg: DBConfig{Driver: DriverSQLite}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAppConfigEnvChecks(t *testing.T) {
	app := AppConfig{Env: "DEV"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("expected case-insensitive dev env")
	}
}
