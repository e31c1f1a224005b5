package controller

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kedai/database"
	"kedai/model"
	"kedai/utils"
)

func otpTTL() time.Duration {
	if raw := os.Getenv("OTP_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 5 * time.Minute
}

// RequestOtp issues a one-time code for phone login. No SMS gateway is wired
// up; the code is returned in the response body so the storefront can show it
// during development.
func RequestOtp(c *gin.Context) {
	type Request struct {
		Phone string `json:"phone" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phone number is required"})
		return
	}

	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   err.Error(),
			"field":   "phone",
		})
		return
	}

	code := fmt.Sprintf("%06d", rand.IntN(1000000))
	otp := model.OtpCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL()),
	}

	if err := database.DB.Create(&otp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create OTP: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent",
		"otp":     code,
	})
}

// VerifyOtp exchanges a valid code for a customer session, creating the user
// record on first login. OTP login is for the pelanggan role only.
func VerifyOtp(c *gin.Context) {
	type Request struct {
		Phone string `json:"phone" binding:"required"`
		Otp   string `json:"otp" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phone and OTP are required"})
		return
	}

	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   err.Error(),
			"field":   "phone",
		})
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Unexpected error occurred",
			})
		}
	}()

	var otp model.OtpCode
	err = tx.Where("phone = ? AND code = ? AND used = false", phone, req.Otp).
		Order("created_at DESC").First(&otp).Error
	if err != nil || !otp.Usable(time.Now()) {
		tx.Rollback()
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid or expired OTP",
		})
		return
	}

	if err := tx.Model(&otp).Update("used", true).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to consume OTP: %v", err),
		})
		return
	}

	var user model.User
	err = tx.Where("phone = ? AND role = ?", phone, model.RolePelanggan).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{Phone: phone, Role: model.RolePelanggan, Active: true}
		err = tx.Create(&user).Error
	}
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to load user: %v", err),
		})
		return
	}

	if !user.Active {
		tx.Rollback()
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Account is deactivated",
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Transaction failed: %v", err),
		})
		return
	}

	access, refresh, err := utils.GenerateTokens(string(user.Role), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate tokens",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"user":          user,
		"token":         access,
		"refresh_token": refresh,
	})
}

// AdminLogin is the email+password door for staff. Customers have no password
// and must use OTP.
func AdminLogin(c *gin.Context) {
	type Request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	}

	var user model.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	if !model.StaffRole(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Password login is for staff accounts only"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Account is deactivated"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	access, refresh, err := utils.GenerateTokens(string(user.Role), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"user":          user,
		"token":         access,
		"refresh_token": refresh,
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var user model.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

func RefreshTokenFunc(c *gin.Context) {
	type Request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Refresh token is required"})
		return
	}

	access, refresh, err := utils.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"token":         access,
		"refresh_token": refresh,
	})
}
