package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ifex/models"
	"ifex/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomer creates a new customer.
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body models.CustomerRequest true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/customer_create [post]
func CreateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		customer := models.Customer{
			Name:    req.Name,
			Address: req.Address,
			City:    req.City,
			Phone:   req.Phone,
		}
		if err := db.Create(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return
		}

		LogActivity(db, "customer_created", "customers", fmt.Sprintf("Customer %q created (id %d)", customer.Name, customer.ID))
		c.JSON(http.StatusCreated, customer)
	}
}

// GetAllCustomers returns every customer, newest first.
// @Summary List customers
// @Tags Customers
// @Produce json
// @Success 200 {array} models.Customer
// @Failure 500 {object} models.ErrorResponse
// @Router /api/customers [get]
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var customers []models.Customer
		if err := db.WithContext(ctx).Order("id DESC").Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GetCustomer returns one customer by id.
// @Summary Fetch customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} models.ErrorResponse
// @Router /api/customer_fetch/{id} [get]
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// UpdateCustomer updates a customer's fields.
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body models.CustomerRequest true "Customer"
// @Success 200 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/customer_update/{id} [put]
func UpdateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}

		var req models.CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		customer.Name = req.Name
		customer.Address = req.Address
		customer.City = req.City
		customer.Phone = req.Phone
		if err := db.Save(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}

		LogActivity(db, "customer_updated", "customers", fmt.Sprintf("Customer %q updated (id %d)", customer.Name, customer.ID))
		c.JSON(http.StatusOK, customer)
	}
}

// DeleteCustomer deletes a customer. Customers referenced by invoices cannot
// be deleted.
// @Summary Delete customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/customer_delete/{id} [delete]
func DeleteCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}

		var invoiceCount int64
		if err := db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&invoiceCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check invoices"})
			return
		}
		if invoiceCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Customer has invoices and cannot be deleted"})
			return
		}

		if err := db.Delete(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}

		LogActivity(db, "customer_deleted", "customers", fmt.Sprintf("Customer %q deleted (id %d)", customer.Name, customer.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
	}
}
