package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ifex/models"
	"ifex/repository"
	"ifex/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultTaxPercent = 5.0

// parsedItem is one validated line from the parallel form arrays
type parsedItem struct {
	Name     string
	Quantity int
	Price    float64
}

// parseItemRows validates the parallel item_name/quantity/price arrays. A
// length mismatch or malformed numeric rejects the whole request; nothing is
// persisted on failure.
func parseItemRows(req models.DocumentItemsRequest) ([]parsedItem, error) {
	if len(req.ItemNames) != len(req.Quantities) || len(req.ItemNames) != len(req.Prices) {
		return nil, errors.New("item_name, quantity and price must have the same length")
	}
	items := make([]parsedItem, 0, len(req.ItemNames))
	for i := range req.ItemNames {
		name := strings.TrimSpace(req.ItemNames[i])
		if name == "" {
			return nil, fmt.Errorf("item %d: item_name is required", i+1)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(req.Quantities[i]))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("item %d: invalid quantity", i+1)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(req.Prices[i]), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("item %d: invalid price", i+1)
		}
		items = append(items, parsedItem{Name: name, Quantity: qty, Price: price})
	}
	return items, nil
}

// resolveTaxPercent validates an optional tax rate, falling back to the
// default when absent
func resolveTaxPercent(tax *float64) (float64, error) {
	if tax == nil {
		return defaultTaxPercent, nil
	}
	if *tax < 0 || *tax > 100 {
		return 0, errors.New("tax must be between 0 and 100")
	}
	return *tax, nil
}

// documentTotals applies the single global tax rate once to the item subtotal
func documentTotals(items []parsedItem, tax float64) (subtotal, grandTotal float64) {
	for _, it := range items {
		subtotal += float64(it.Quantity) * it.Price
	}
	return subtotal, subtotal + subtotal*tax/100
}

// CreateQuotation creates a quotation with its items in one transaction. The
// quotation number comes from the sequence repository inside that same
// transaction, so concurrent creations cannot collide.
// @Summary Create quotation
// @Tags Quotations
// @Accept json
// @Produce json
// @Param quotation body models.CreateQuotationRequest true "Quotation"
// @Success 201 {object} models.Quotation
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotation_create [post]
func CreateQuotation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.CustomerID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer is required"})
			return
		}
		deliveryDate, err := time.Parse("2006-01-02", req.ExpectedDeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected_delivery_date must be YYYY-MM-DD"})
			return
		}
		items, err := parseItemRows(req.DocumentItemsRequest)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tax, err := resolveTaxPercent(req.Tax)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var quotation models.Quotation
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
				return err
			}
			number, err := repository.NextQuotationNumber(tx)
			if err != nil {
				return err
			}
			subtotal, grandTotal := documentTotals(items, tax)
			quotation = models.Quotation{
				QuotationNumber:      number,
				CustomerID:           customer.ID,
				ExpectedDeliveryDate: deliveryDate,
				PaymentTerm:          req.PaymentTerm,
				Tax:                  tax,
				TotalPrice:           subtotal,
				GrandTotal:           grandTotal,
			}
			if err := tx.Create(&quotation).Error; err != nil {
				return err
			}
			for _, it := range items {
				qi := models.QuotationItem{
					QuotationID: quotation.ID,
					ItemName:    it.Name,
					Quantity:    it.Quantity,
					Price:       it.Price,
				}
				if err := tx.Create(&qi).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quotation"})
			return
		}

		LogActivity(db, "quotation_created", "quotations", fmt.Sprintf("Quotation %s created", quotation.QuotationNumber))
		c.JSON(http.StatusCreated, quotation)
	}
}

// GetAllQuotations returns every quotation with customer and items, newest
// first.
// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Success 200 {array} models.Quotation
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotations [get]
func GetAllQuotations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var quotations []models.Quotation
		if err := db.WithContext(ctx).Preload("Customer").Preload("Items").Order("id DESC").Find(&quotations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotations"})
			return
		}
		c.JSON(http.StatusOK, quotations)
	}
}

// GetQuotation returns one quotation with per-item line totals.
// @Summary Fetch quotation
// @Tags Quotations
// @Produce json
// @Param id path int true "Quotation ID"
// @Success 200 {object} models.QuotationDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotation_fetch/{id} [get]
func GetQuotation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var quotation models.Quotation
		err := db.Preload("Customer").Preload("Items").First(&quotation, "id = ?", c.Param("id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotation"})
			return
		}

		resp := models.QuotationDetailResponse{Quotation: quotation}
		for _, it := range quotation.Items {
			resp.ItemsWithTotals = append(resp.ItemsWithTotals, models.QuotationItemResponse{
				QuotationItem: it,
				LineTotal:     it.LineTotal(),
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateQuotation replaces a quotation's fields and items and recomputes the
// cached totals, all in one transaction.
// @Summary Update quotation
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path int true "Quotation ID"
// @Param quotation body models.CreateQuotationRequest true "Quotation"
// @Success 200 {object} models.Quotation
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotation_update/{id} [put]
func UpdateQuotation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var quotation models.Quotation
		if err := db.First(&quotation, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotation"})
			return
		}

		var req models.CreateQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		items, err := parseItemRows(req.DocumentItemsRequest)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.ExpectedDeliveryDate != "" {
			deliveryDate, err := time.Parse("2006-01-02", req.ExpectedDeliveryDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "expected_delivery_date must be YYYY-MM-DD"})
				return
			}
			quotation.ExpectedDeliveryDate = deliveryDate
		}
		if req.CustomerID != 0 {
			quotation.CustomerID = req.CustomerID
		}
		quotation.PaymentTerm = req.PaymentTerm
		if req.Tax != nil {
			tax, err := resolveTaxPercent(req.Tax)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quotation.Tax = tax
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&models.Customer{}, "id = ?", quotation.CustomerID).Error; err != nil {
				return err
			}
			if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
			for _, it := range items {
				qi := models.QuotationItem{
					QuotationID: quotation.ID,
					ItemName:    it.Name,
					Quantity:    it.Quantity,
					Price:       it.Price,
				}
				if err := tx.Create(&qi).Error; err != nil {
					return err
				}
			}
			quotation.TotalPrice, quotation.GrandTotal = documentTotals(items, quotation.Tax)
			return tx.Save(&quotation).Error
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quotation"})
			return
		}

		LogActivity(db, "quotation_updated", "quotations", fmt.Sprintf("Quotation %s updated", quotation.QuotationNumber))
		c.JSON(http.StatusOK, quotation)
	}
}

// DeleteQuotation deletes a quotation and its items. Invoices raised from it
// survive with their quotation reference cleared.
// @Summary Delete quotation
// @Tags Quotations
// @Produce json
// @Param id path int true "Quotation ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotation_delete/{id} [delete]
func DeleteQuotation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var quotation models.Quotation
		if err := db.First(&quotation, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotation"})
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Invoice{}).
				Where("quotation_id = ?", quotation.ID).
				Update("quotation_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&quotation).Error
		})
		if txErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quotation"})
			return
		}

		LogActivity(db, "quotation_deleted", "quotations", fmt.Sprintf("Quotation %s deleted", quotation.QuotationNumber))
		c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
	}
}
