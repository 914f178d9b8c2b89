package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFromContext(c)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "Home Page",
			"user":  identity,
		})
	}
}

// ProductsPage renders the public catalog with optional name/category filter.
func ProductsPage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.HTML(http.StatusOK, "products.html", gin.H{
			"title":    "Products",
			"products": products,
			"search":   c.Query("search"),
			"category": c.Query("category"),
		})
	}
}

func AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"title": "About"})
}

func ContactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Us"})
}

func PrivacyPage(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
}

func TermsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "terms.html", gin.H{"title": "Terms & Conditions"})
}

func NotFound(c *gin.Context) {
	renderNotFound(c)
}
