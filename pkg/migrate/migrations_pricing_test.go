package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tolkflow/tolkflow-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir invalid: %v", err)
	}
}

func TestPricingSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_pricing_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no pricing schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE price_records",
		"CONSTRAINT idx_price_vendor_skill_pair UNIQUE",
		"src_lang_classifier_value_id UUID NOT NULL",
		"dst_lang_classifier_value_id UUID NOT NULL",
		"CREATE TABLE discount_tables",
		"vendor_id UUID UNIQUE REFERENCES vendors (id)",
		"DROP TABLE price_records",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
