package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/domain"
	reviewrepo "luxelush/internal/repository/review"
)

func listProductsHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := deps.Products.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := deps.Products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listReviewsHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := deps.Reviews.ListForProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

type submitReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func submitReviewHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}

		review, err := deps.Reviews.Submit(c.Request.Context(), reviewrepo.CreateReviewInput{
			ProductID: c.Param("id"),
			Author:    req.Author,
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
