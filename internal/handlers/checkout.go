package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type checkoutItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items" binding:"required"`
}

type checkoutItem struct {
	ProductID string
	Quantity  int
}

// Checkout creates an order from a list of (productId, quantity) pairs. Unit
// prices are looked up live rather than taken from the client.
func Checkout(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/checkout"
		defer handlePanic(c, route)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
			c.String(http.StatusBadRequest, "No items provided for checkout.")
			return
		}

		items := make([]checkoutItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, checkoutItem{
				ProductID: item.ProductID,
				Quantity:  normalizeQuantity(item.Quantity),
			})
		}

		if err := placeOrder(c, db, route, items); err != nil {
			return
		}
		c.String(http.StatusCreated, "Order placed successfully.")
	}
}

// Buy is the single-product form variant of checkout.
func Buy(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /buy"
		defer handlePanic(c, route)

		productID := strings.TrimSpace(c.PostForm("productId"))
		if productID == "" {
			c.String(http.StatusBadRequest, "No items provided for checkout.")
			return
		}

		items := []checkoutItem{{
			ProductID: productID,
			Quantity:  parseQuantity(c.PostForm("quantity")),
		}}

		if err := placeOrder(c, db, route, items); err != nil {
			return
		}
		c.Redirect(http.StatusFound, "/user/orders")
	}
}

func placeOrder(c *gin.Context, db *mongo.Database, route string, items []checkoutItem) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users/login")
		c.Abort()
		return errors.New("no session identity")
	}

	if err := ensureDBConnection(c.Request.Context(), db); err != nil {
		log.Printf("[%s] database unavailable: %v", route, err)
		c.String(http.StatusServiceUnavailable, "Database unavailable.")
		c.Abort()
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	cursor, err := db.Collection("products").Find(ctx, bson.M{"productId": bson.M{"$in": productIDs}})
	if err != nil {
		renderServerError(c, route, err)
		return err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		renderServerError(c, route, err)
		return err
	}

	byID := make(map[string]models.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}

	orderItems, totalAmount := buildOrderItems(items, byID)

	now := time.Now()
	order := models.Order{
		OrderID:     uuid.NewString(),
		UserID:      identity.UserID,
		Items:       orderItems,
		TotalAmount: totalAmount,
		OrderStatus: models.StatusToPay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
		renderServerError(c, route, err)
		return err
	}

	log.Printf("[ORDER] [INFO] order %s created for user %s total=%.2f", order.OrderID, identity.UserID, totalAmount)
	return nil
}

// buildOrderItems snapshots current product name and price into line items and
// sums subtotals into the order total. A productId with no matching product
// still produces a line item, priced zero and named "Unknown" — longstanding
// checkout tolerance rather than a rejection.
func buildOrderItems(items []checkoutItem, products map[string]models.Product) ([]models.OrderItem, float64) {
	orderItems := make([]models.OrderItem, 0, len(items))
	var totalAmount float64

	for _, item := range items {
		name := "Unknown"
		var price float64
		if product, ok := products[item.ProductID]; ok {
			name = product.Name
			price = product.Price
		}

		subtotal := price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      name,
			Price:     price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		totalAmount += subtotal
	}

	return orderItems, totalAmount
}

func normalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func parseQuantity(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return normalizeQuantity(parsed)
}
