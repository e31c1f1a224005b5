package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kedai/database"
	"kedai/model"
)

// ListPromos returns currently running promo campaigns.
func ListPromos(c *gin.Context) {
	now := time.Now()

	var promos []model.Promo
	err := database.DB.
		Where("active = true").
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("created_at DESC").
		Find(&promos).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to fetch promos: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promos retrieved successfully",
		"data":    promos,
	})
}

func GetPromoByID(c *gin.Context) {
	var promo model.Promo
	if err := database.DB.First(&promo, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Promo not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch promo: %v", err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promo retrieved successfully",
		"data":    promo,
	})
}

// GetPromoProducts lists the available products attached to a promo campaign.
func GetPromoProducts(c *gin.Context) {
	var promo model.Promo
	err := database.DB.
		Preload("Products", "status = ?", model.ProductAvailable).
		First(&promo, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Promo not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch promo products: %v", err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promo products retrieved successfully",
		"data":    promo.Products,
	})
}

// ListSpecialEvents returns active events for the storefront banner.
func ListSpecialEvents(c *gin.Context) {
	now := time.Now()

	var events []model.SpecialEvent
	err := database.DB.
		Where("active = true").
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to fetch special events: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Special events retrieved successfully",
		"data":    events,
	})
}
