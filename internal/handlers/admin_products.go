package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// productForm carries the admin product form fields. Price arrives as text
// and is parsed to a number before anything is written.
type productForm struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImagePath   string
	ImageSet    bool
}

func parseProductForm(c *gin.Context) (productForm, error) {
	form := productForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
	}
	if form.Name == "" {
		return productForm{}, errors.New("name is required")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if err != nil {
		return productForm{}, errors.New("price must be a number")
	}
	if price < 0 {
		return productForm{}, errors.New("price must not be negative")
	}
	form.Price = price

	file, err := c.FormFile("image")
	if err == nil {
		path, err := saveProductImage(file)
		if err != nil {
			return productForm{}, err
		}
		form.ImagePath = path
		form.ImageSet = true
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) &&
		!strings.Contains(err.Error(), "no such file") {
		return productForm{}, err
	}

	return form, nil
}

// AdminProducts lists all products with an optional name/category filter.
func AdminProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/products"
		defer handlePanic(c, route)

		filter := bson.M{}
		if name := strings.TrimSpace(c.Query("name")); name != "" {
			filter["name"] = bson.M{"$regex": name, "$options": "i"}
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

		c.HTML(http.StatusOK, "admin-products.html", gin.H{
			"title":    "Manage Products",
			"products": products,
			"name":     c.Query("name"),
			"category": c.Query("category"),
		})
	}
}

func NewProductPage(c *gin.Context) {
	c.HTML(http.StatusOK, "new-product.html", gin.H{"title": "Add Product"})
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products/new"
		defer handlePanic(c, route)

		form, err := parseProductForm(c)
		if err != nil {
			c.HTML(http.StatusBadRequest, "new-product.html", gin.H{
				"title": "Add Product",
				"error": err.Error(),
			})
			return
		}

		now := time.Now()
		product := models.Product{
			ProductID:   uuid.NewString(),
			Name:        form.Name,
			Description: form.Description,
			Price:       form.Price,
			Category:    form.Category,
			ImagePath:   form.ImagePath,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.Redirect(http.StatusFound, "/admin/products")
	}
}

func EditProductPage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/products/edit/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			renderNotFound(c)
			return
		}

		c.HTML(http.StatusOK, "edit-product.html", gin.H{
			"title":   "Edit Product",
			"product": product,
		})
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products/edit/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		form, err := parseProductForm(c)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{
			"name":        form.Name,
			"description": form.Description,
			"price":       form.Price,
			"category":    form.Category,
			"updatedAt":   time.Now(),
		}
		if form.ImageSet {
			update["imagePath"] = form.ImagePath
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		if res.MatchedCount == 0 {
			renderNotFound(c)
			return
		}

		c.Redirect(http.StatusFound, "/admin/products")
	}
}

// DeleteProduct removes a product unless an unresolved order still references
// it. Unresolved means to_pay, to_ship or to_receive.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products/delete/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			renderNotFound(c)
			return
		}

		count, err := db.Collection("orders").CountDocuments(ctx, unresolvedOrderFilter(product.ProductID))
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		if count > 0 {
			c.String(http.StatusConflict,
				"Cannot delete product %q: %d unresolved order(s) still reference it.",
				product.Name, count)
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.Redirect(http.StatusFound, "/admin/products")
	}
}

func unresolvedOrderFilter(productID string) bson.M {
	return bson.M{
		"items.productId": productID,
		"orderStatus":     bson.M{"$in": models.UnresolvedStatuses},
	}
}
