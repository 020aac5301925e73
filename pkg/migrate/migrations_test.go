package migrate_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/astrosocial-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one migration for %q, found %d", pattern, len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestUsersMigrationEnforcesUniqueIdentity(t *testing.T) {
	content := readMigration(t, "*_create_users_and_wallets.sql")

	checks := []string{
		"CONSTRAINT ux_users_email UNIQUE (email)",
		"CONSTRAINT ux_users_mobile UNIQUE (mobile)",
		"CONSTRAINT ux_wallets_user_id UNIQUE (user_id)",
		"CHECK (wallet_amount >= 0)",
		"DROP TABLE IF EXISTS users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestShortsMigrationKeepsOneEngagementPerUser(t *testing.T) {
	content := readMigration(t, "*_create_shorts_tables.sql")

	for _, table := range []string{"like_shorts", "share_shorts", "tag_shorts"} {
		want := "CONSTRAINT ux_" + table + "_user_shorts UNIQUE (user_id, shorts_id)"
		if !strings.Contains(content, want) {
			t.Errorf("missing %q", want)
		}
		if !strings.Contains(content, "DROP TABLE IF EXISTS "+table) {
			t.Errorf("missing down statement for %s", table)
		}
	}
}

func TestSeedMigrationProvidesDefaultReferences(t *testing.T) {
	content := readMigration(t, "*_seed_reference_data.sql")

	checks := []string{
		"INSERT INTO roles",
		"INSERT INTO countries",
		"INSERT INTO states",
		"INSERT INTO cities",
		"INSERT INTO otp_types (otp_type_id, name) VALUES (1, 'Login')",
		"INSERT INTO notification_types",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCreateSQLMigrationWritesGooseTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Horoscope Signs!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_horoscope_signs.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "create_users.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename error")
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestValidateDirRejectsUnbalancedBlocks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20260101000000_create_signs.sql", "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n")
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected unterminated block error")
	}
}

func TestRunnerMovesBetweenVersions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20260101000000_create_signs.sql", `-- +goose Up
CREATE TABLE zodiac_signs (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
-- +goose Down
DROP TABLE zodiac_signs;
`)
	writeFile(t, dir, "20260102000000_add_sign_element.sql", `-- +goose Up
ALTER TABLE zodiac_signs ADD COLUMN element TEXT;
-- +goose Down
ALTER TABLE zodiac_signs DROP COLUMN element;
`)

	sqlDB, err := dbtest.Open(t).DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	runner, err := migrate.NewRunner(sqlDB, db.DriverSQLite, dir, nil)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	ctx := context.Background()

	if err := runner.Up(ctx); err != nil {
		t.Fatalf("up: %v", err)
	}
	if v, err := runner.Version(ctx); err != nil || v != 20260102000000 {
		t.Fatalf("expected latest version, got %d (%v)", v, err)
	}

	if err := runner.To(ctx, "20260101000000"); err != nil {
		t.Fatalf("to: %v", err)
	}
	if v, _ := runner.Version(ctx); v != 20260101000000 {
		t.Fatalf("expected first version, got %d", v)
	}

	var out bytes.Buffer
	if err := runner.Status(ctx, &out); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out.String(), "pending") || !strings.Contains(out.String(), "20260102000000_add_sign_element.sql") {
		t.Fatalf("unexpected status output:\n%s", out.String())
	}

	if err := runner.To(ctx, "latest"); err == nil {
		t.Fatalf("expected invalid version error")
	}
}
