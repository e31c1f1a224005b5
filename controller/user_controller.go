package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kedai/database"
	"kedai/model"
	"kedai/utils"
)

func ListUsers(c *gin.Context) {
	page, limit := utils.ParsePageQuery(c.Query("page"), c.Query("limit"))

	query := database.DB.Model(&model.User{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	if role := c.Query("role"); role != "" {
		if !model.ValidRole(model.UserRole(role)) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid role filter"})
			return
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to count users: %v", err),
		})
		return
	}

	pagination := utils.NewPagination(page, limit, total)

	var users []model.User
	if pagination.InRange() {
		err := query.
			Order("created_at DESC").
			Offset(pagination.Offset()).
			Limit(pagination.Limit).
			Find(&users).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch users: %v", err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Users retrieved successfully",
		"data":       users,
		"pagination": pagination,
	})
}

func GetUserByID(c *gin.Context) {
	var user model.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch user: %v", err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User retrieved successfully",
		"data":    user,
	})
}

func CreateUser(c *gin.Context) {
	type Request struct {
		Name     string         `json:"name" binding:"required"`
		Email    string         `json:"email"`
		Phone    string         `json:"phone"`
		Role     model.UserRole `json:"role" binding:"required"`
		Password string         `json:"password"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Name and role are required"})
		return
	}

	if !model.ValidRole(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Unknown role"})
		return
	}
	if model.StaffRole(req.Role) && (req.Email == "" || req.Password == "") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Staff accounts require email and password",
		})
		return
	}

	user := model.User{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: true,
	}

	if req.Phone != "" {
		phone, err := utils.NormalizePhone(req.Phone)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error":   err.Error(),
				"field":   "phone",
			})
			return
		}
		user.Phone = phone
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to hash password",
			})
			return
		}
		user.Password = string(hashed)
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create user: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

func UpdateUser(c *gin.Context) {
	type Request struct {
		Name     *string         `json:"name"`
		Email    *string         `json:"email"`
		Phone    *string         `json:"phone"`
		Role     *model.UserRole `json:"role"`
		Active   *bool           `json:"active"`
		Password *string         `json:"password"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	var user model.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch user: %v", err),
			})
		}
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error":   err.Error(),
				"field":   "phone",
			})
			return
		}
		user.Phone = phone
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Unknown role"})
			return
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to hash password",
			})
			return
		}
		user.Password = string(hashed)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to update user: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

func DeleteUser(c *gin.Context) {
	var user model.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch user: %v", err),
			})
		}
		return
	}

	// Admin accounts are permanent; deactivate them instead.
	if user.Role == model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Admin accounts cannot be deleted",
		})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to delete user: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
		"data":    gin.H{"user_id": user.ID},
	})
}
