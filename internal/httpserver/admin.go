package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/auth"
	"luxelush/internal/domain"
	productrepo "luxelush/internal/repository/product"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}

		if !strings.EqualFold(req.Email, deps.AdminEmail) ||
			!auth.CheckPassword(deps.AdminPasswordHash, req.Password) {
			log.Warn("admin login rejected", zap.String("email", req.Email))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}

		token, err := deps.Tokens.Issue(deps.AdminEmail)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondOK(c, gin.H{"token": token})
	}
}

func adminAuth(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing bearer token"})
			return
		}
		email, err := deps.Tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}
		c.Set("admin_email", email)
		c.Next()
	}
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BasePrice   int64    `json:"basePrice"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Materials   []string `json:"materials"`
}

func (r productRequest) input() productrepo.CreateProductInput {
	return productrepo.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Category:    r.Category,
		Sizes:       r.Sizes,
		Materials:   r.Materials,
	}
}

func createProductHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}
		product, err := deps.Products.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func updateProductHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}
		product, err := deps.Products.Update(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func deleteProductHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type variantRequest struct {
	Color     string   `json:"color"`
	ColorCode string   `json:"colorCode"`
	Images    []string `json:"images"`
	Stock     int      `json:"stock"`
	Price     int64    `json:"price"`
}

func (r variantRequest) input() productrepo.VariantInput {
	return productrepo.VariantInput{
		Color:     r.Color,
		ColorCode: r.ColorCode,
		Images:    r.Images,
		Stock:     r.Stock,
		Price:     r.Price,
	}
}

func addVariantHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req variantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}
		variant, err := deps.Products.AddVariant(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, variant)
	}
}

func updateVariantHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req variantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}
		variant, err := deps.Products.UpdateVariant(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, variant)
	}
}

func deleteVariantHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Products.DeleteVariant(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func uploadImageHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			respondError(c, log, domain.Validationf("image file is required"))
			return
		}
		src, err := file.Open()
		if err != nil {
			respondError(c, log, err)
			return
		}
		defer src.Close()

		url, err := deps.Images.UploadProductImage(
			c.Request.Context(),
			c.Param("id"),
			file.Filename,
			src,
			file.Size,
			file.Header.Get("Content-Type"),
		)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := deps.Products.AppendVariantImage(c.Request.Context(), c.Param("variantId"), url); err != nil {
			respondError(c, log, err)
			return
		}
		respondOK(c, gin.H{"url": url})
	}
}

func pendingReviewsHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := deps.Reviews.ListPending(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

type moderateRequest struct {
	Status string `json:"status"`
}

func moderateReviewHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moderateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}
		if err := deps.Reviews.Moderate(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteReviewHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listOrdersHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := deps.Orders.List(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := deps.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
