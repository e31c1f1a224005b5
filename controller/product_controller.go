package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"kedai/database"
	"kedai/model"
	"kedai/utils"
)

const uploadDir = "./uploads"

func ListProducts(c *gin.Context) {
	page, limit := utils.ParsePageQuery(c.Query("page"), c.Query("limit"))

	query := database.DB.Model(&model.Product{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category := c.Query("category"); category != "" {
		if !model.ValidCategory(model.ProductCategory(category)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid category filter",
			})
			return
		}
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to count products: %v", err),
		})
		return
	}

	pagination := utils.NewPagination(page, limit, total)

	var products []model.Product
	if pagination.InRange() {
		err := query.
			Order("created_at DESC").
			Offset(pagination.Offset()).
			Limit(pagination.Limit).
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch products: %v", err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Products retrieved successfully",
		"data":       products,
		"pagination": pagination,
	})
}

func GetProductByID(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid product ID format",
		})
		return
	}

	var product model.Product
	if err := database.DB.First(&product, uint(productID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch product: %v", err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

func AddProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or missing price",
		})
		return
	}

	category := model.ProductCategory(c.PostForm("category"))
	if !model.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid product category",
		})
		return
	}

	product := model.Product{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Category:    category,
		Status:      model.ProductAvailable,
	}
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Product name is required",
		})
		return
	}
	if status := c.PostForm("status"); status != "" {
		product.Status = status
	}

	if err := applyPromoFields(c, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	file, err := c.FormFile("image")
	if err == nil {
		fileName, err := saveProductImage(c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		product.Image = fileName
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create product: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added successfully",
		"data":    product,
	})
}

// applyPromoFields reads the promo form fields and enforces that a promo item
// always carries an original price and a discount.
func applyPromoFields(c *gin.Context, product *model.Product) error {
	if c.PostForm("is_promo") != "true" {
		return nil
	}

	originalPrice, err := strconv.ParseFloat(c.PostForm("original_price"), 64)
	if err != nil || originalPrice <= 0 {
		return errors.New("promo products require a valid original_price")
	}
	discount, err := strconv.ParseFloat(c.PostForm("discount_percent"), 64)
	if err != nil || discount <= 0 || discount >= 100 {
		return errors.New("promo products require a discount_percent between 0 and 100")
	}

	product.IsPromo = true
	product.OriginalPrice = originalPrice
	product.DiscountPercent = discount

	if until := c.PostForm("promo_valid_until"); until != "" {
		t, err := time.ParseInLocation("2006-01-02", until, time.Local)
		if err != nil {
			return errors.New("promo_valid_until must be YYYY-MM-DD")
		}
		product.PromoValidUntil = &t
	}
	return nil
}

func saveProductImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > 5<<20 {
		return "", errors.New("image size exceeds 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return "", errors.New("invalid file type, only JPG/JPEG/PNG allowed")
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	newFileName := fmt.Sprintf("product-%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, newFileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %v", err)
	}
	return newFileName, nil
}

func UpdateProduct(c *gin.Context) {
	id := c.Param("id")

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

	var product model.Product
	if err := tx.First(&product, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch product: %v", err),
			})
		}
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		product.Description = description
	}
	if price := c.PostForm("price"); price != "" {
		priceFloat, err := strconv.ParseFloat(price, 64)
		if err != nil || priceFloat <= 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid or negative price",
			})
			return
		}
		product.Price = priceFloat
	}
	if category := c.PostForm("category"); category != "" {
		if !model.ValidCategory(model.ProductCategory(category)) {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid product category",
			})
			return
		}
		product.Category = model.ProductCategory(category)
	}
	if status := c.PostForm("status"); status != "" {
		if status != model.ProductAvailable && status != model.ProductUnavailable {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Status must be available or unavailable",
			})
			return
		}
		product.Status = status
	}

	if isPromo := c.PostForm("is_promo"); isPromo != "" {
		if isPromo == "true" {
			if err := applyPromoFields(c, &product); err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   err.Error(),
				})
				return
			}
		} else {
			product.IsPromo = false
			product.OriginalPrice = 0
			product.DiscountPercent = 0
			product.PromoValidUntil = nil
		}
	}

	file, err := c.FormFile("image")
	if err == nil {
		if product.Image != "" {
			if err := os.Remove(filepath.Join(uploadDir, product.Image)); err != nil && !os.IsNotExist(err) {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   fmt.Sprintf("Failed to delete old image: %v", err),
				})
				return
			}
		}
		fileName, err := saveProductImage(c, file)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		product.Image = fileName
	}

	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to update product: %v", err),
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch product: %v", err),
			})
		}
		return
	}

	if product.Image != "" {
		if err := os.Remove(filepath.Join(uploadDir, product.Image)); err != nil && !os.IsNotExist(err) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to delete image: %v", err),
			})
			return
		}
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to delete product: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
		"data":    gin.H{"product_id": id},
	})
}

// BulkImportProducts loads products from an Excel sheet. Expected columns:
// name, category, price, description, original_price, discount_percent.
func BulkImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to parse Excel file"})
		return
	}

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel must have at least one row of data"})
		return
	}

	var products []model.Product
	var skipped int
	for _, row := range rows[1:] {
		if len(row) < 3 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		category := model.ProductCategory(strings.TrimSpace(row[1]))
		price, err := strconv.ParseFloat(row[2], 64)
		if name == "" || !model.ValidCategory(category) || err != nil || price <= 0 {
			skipped++
			continue
		}

		product := model.Product{
			Name:     name,
			Category: category,
			Price:    price,
			Status:   model.ProductAvailable,
		}
		if len(row) > 3 {
			product.Description = row[3]
		}
		if len(row) > 5 && row[4] != "" && row[5] != "" {
			originalPrice, errP := strconv.ParseFloat(row[4], 64)
			discount, errD := strconv.ParseFloat(row[5], 64)
			if errP == nil && errD == nil && originalPrice > 0 && discount > 0 && discount < 100 {
				product.IsPromo = true
				product.OriginalPrice = originalPrice
				product.DiscountPercent = discount
			}
		}

		products = append(products, product)
	}

	if len(products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid rows found"})
		return
	}

	if err := database.DB.Create(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to insert products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk product import successful",
		"count":   len(products),
		"skipped": skipped,
	})
}
