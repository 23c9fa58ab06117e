package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"ifex/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogActivity records an audit trail entry. Logging is best effort: a failed
// write never fails the request that triggered it.
func LogActivity(db *gorm.DB, eventName, eventContext, description string) {
	entry := models.ActivityLog{
		EventID:      uuid.NewString(),
		EventName:    eventName,
		EventContext: eventContext,
		Description:  description,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("activity log write failed (%s): %v", eventName, err)
	}
}

// GetActivityLogs returns paginated activity logs, newest first.
// @Summary Get activity logs
// @Tags ActivityLogs
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} object
// @Failure 500 {object} models.ErrorResponse
// @Router /api/activity_logs [get]
func GetActivityLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 {
			limit = 50
		}

		var totalRecords int64
		if err := db.Model(&models.ActivityLog{}).Count(&totalRecords).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting logs"})
			return
		}

		var logs []models.ActivityLog
		err = db.Order("created_at DESC").
			Limit(limit).Offset((page - 1) * limit).
			Find(&logs).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching logs"})
			return
		}

		totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))
		c.JSON(http.StatusOK, gin.H{
			"data": logs,
			"pagination": gin.H{
				"current_page":  page,
				"total_pages":   totalPages,
				"total_records": totalRecords,
				"has_next":      page < totalPages,
				"has_prev":      page > 1,
			},
		})
	}
}
