package repository

import (
	"fmt"
	"os"
	"time"

	"ifex/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document number sequences. The legacy behaviour read the last record and
// added one, which hands out duplicate numbers under concurrent creation.
// Numbers now come from the document_sequence table, bumped with a single
// UPDATE inside the caller's transaction so the row stays locked until commit.

const (
	quotationSeed     = 2001
	legacyInvoiceSeed = 2001
)

// InvoiceNumberScheme selects which of the two historical invoice numbering
// formats is in effect.
type InvoiceNumberScheme string

const (
	// InvoiceSchemeLegacy issues INV{n} from a global counter
	InvoiceSchemeLegacy InvoiceNumberScheme = "legacy"
	// InvoiceSchemeYearly issues INV-{year}-{00001} from a per-year counter
	InvoiceSchemeYearly InvoiceNumberScheme = "yearly"
)

// InvoiceSchemeFromEnv reads INVOICE_NUMBER_SCHEME, defaulting to the
// per-year format used by the invoice creation flow.
func InvoiceSchemeFromEnv() InvoiceNumberScheme {
	if os.Getenv("INVOICE_NUMBER_SCHEME") == string(InvoiceSchemeLegacy) {
		return InvoiceSchemeLegacy
	}
	return InvoiceSchemeYearly
}

// NextQuotationNumber reserves the next quotation number (IF2001, IF2002, ...).
// Must be called inside the transaction that creates the quotation.
func NextQuotationNumber(tx *gorm.DB) (string, error) {
	n, err := nextSequenceValue(tx, "quotation", 0, quotationSeed)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IF%d", n), nil
}

// NextInvoiceNumber reserves the next invoice number under the given scheme.
// Must be called inside the transaction that creates the invoice.
func NextInvoiceNumber(tx *gorm.DB, scheme InvoiceNumberScheme, now time.Time) (string, error) {
	if scheme == InvoiceSchemeLegacy {
		n, err := nextSequenceValue(tx, "invoice", 0, legacyInvoiceSeed)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("INV%d", n), nil
	}
	year := now.Year()
	n, err := nextSequenceValue(tx, "invoice", year, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%05d", year, n), nil
}

// nextSequenceValue bumps the (name, year) counter and returns the new value,
// seeding the row on first use. The UPDATE row-locks the counter until the
// surrounding transaction commits.
func nextSequenceValue(tx *gorm.DB, name string, year, seed int) (int, error) {
	res := tx.Model(&models.DocumentSequence{}).
		Where("name = ? AND year = ?", name, year).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// First use. Insert with ON CONFLICT DO NOTHING so losing the seed
		// race against a concurrent creator does not abort the surrounding
		// transaction; the loser bumps the winner's row instead.
		seq := models.DocumentSequence{Name: name, Year: year, Value: seed}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq)
		if ins.Error != nil {
			return 0, ins.Error
		}
		if ins.RowsAffected > 0 {
			return seq.Value, nil
		}
		res = tx.Model(&models.DocumentSequence{}).
			Where("name = ? AND year = ?", name, year).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
	}

	var seq models.DocumentSequence
	if err := tx.Where("name = ? AND year = ?", name, year).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
