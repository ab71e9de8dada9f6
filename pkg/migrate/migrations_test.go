package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gtlearning/storefront-backend/pkg/migrate"
)

func TestMigrationsValidate(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, glob string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", glob))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", glob)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestProductsMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")

	checks := []string{
		"CREATE TABLE products",
		"price numeric(12,2) NOT NULL CHECK (price >= 0)",
		"original_price IS NULL OR original_price >= price",
		"CREATE INDEX idx_products_category",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersQuotesMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_orders_quotes.sql")

	checks := []string{
		"CREATE TABLE orders",
		"CREATE TABLE order_line_items",
		"CREATE TABLE quotes",
		"CREATE TABLE quote_line_items",
		"CREATE TABLE quote_counters",
		"reference_number",
		"quantity integer NOT NULL CHECK (quantity >= 1)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
