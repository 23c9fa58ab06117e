package repository

import (
	"fmt"
	"testing"
	"time"

	"ifex/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSequenceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:seq_" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.DocumentSequence{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestQuotationNumbersAreSequential(t *testing.T) {
	db := setupSequenceDB(t)

	want := []string{"IF2001", "IF2002", "IF2003"}
	for _, w := range want {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := NextQuotationNumber(tx)
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("next quotation number: %v", err)
		}
		if got != w {
			t.Errorf("got %q, want %q", got, w)
		}
	}
}

func TestInvoiceNumberLegacyScheme(t *testing.T) {
	db := setupSequenceDB(t)
	now := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)

	for _, w := range []string{"INV2001", "INV2002"} {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := NextInvoiceNumber(tx, InvoiceSchemeLegacy, now)
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("next invoice number: %v", err)
		}
		if got != w {
			t.Errorf("got %q, want %q", got, w)
		}
	}
}

func TestInvoiceNumberYearlyScheme(t *testing.T) {
	db := setupSequenceDB(t)

	for _, w := range []string{"INV-2025-00001", "INV-2025-00002"} {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := NextInvoiceNumber(tx, InvoiceSchemeYearly, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC))
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("next invoice number: %v", err)
		}
		if got != w {
			t.Errorf("got %q, want %q", got, w)
		}
	}

	// A new year starts its own counter
	var got string
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := NextInvoiceNumber(tx, InvoiceSchemeYearly, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
		got = n
		return err
	})
	if err != nil {
		t.Fatalf("next invoice number: %v", err)
	}
	if got != "INV-2026-00001" {
		t.Errorf("got %q, want INV-2026-00001", got)
	}
}

func TestSequenceNeverRepeats(t *testing.T) {
	db := setupSequenceDB(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := NextQuotationNumber(tx)
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if seen[got] {
			t.Fatalf("duplicate number %q on draw %d", got, i)
		}
		seen[got] = true
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 distinct numbers, got %d", len(seen))
	}
}

func TestSequenceResumesFromExistingRow(t *testing.T) {
	db := setupSequenceDB(t)

	// A counter row that predates this process must be bumped, not re-seeded
	pre := models.DocumentSequence{Name: "quotation", Year: 0, Value: 2147}
	if err := db.Create(&pre).Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}

	var got string
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := NextQuotationNumber(tx)
		got = n
		return err
	})
	if err != nil {
		t.Fatalf("next quotation number: %v", err)
	}
	if got != "IF2148" {
		t.Errorf("got %q, want IF2148", got)
	}

	var rows int64
	db.Model(&models.DocumentSequence{}).Where("name = ? AND year = ?", "quotation", 0).Count(&rows)
	if rows != 1 {
		t.Fatalf("counter row count = %d, want 1", rows)
	}
}

func TestSchemeFromEnv(t *testing.T) {
	t.Setenv("INVOICE_NUMBER_SCHEME", "legacy")
	if got := InvoiceSchemeFromEnv(); got != InvoiceSchemeLegacy {
		t.Errorf("legacy env = %q", got)
	}
	t.Setenv("INVOICE_NUMBER_SCHEME", "")
	if got := InvoiceSchemeFromEnv(); got != InvoiceSchemeYearly {
		t.Errorf("default = %q", got)
	}
}

func TestLegacyAndYearlyCountersAreIndependent(t *testing.T) {
	db := setupSequenceDB(t)
	now := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)

	err := db.Transaction(func(tx *gorm.DB) error {
		legacy, err := NextInvoiceNumber(tx, InvoiceSchemeLegacy, now)
		if err != nil {
			return err
		}
		yearly, err := NextInvoiceNumber(tx, InvoiceSchemeYearly, now)
		if err != nil {
			return err
		}
		if legacy != "INV2001" || yearly != "INV-2025-00001" {
			return fmt.Errorf("got %q and %q", legacy, yearly)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
