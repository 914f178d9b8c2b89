package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// orderWithUser pairs an order with the owning user's email for the admin
// listing. Orders whose user is gone read "Unknown".
type orderWithUser struct {
	models.Order
	UserEmail string
}

// AdminOrders lists every order, newest first, with user emails joined in.
func AdminOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			renderServerError(c, route, err)
			return
		}

		emails, err := emailsByUserID(ctx, db, orders)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		joined := make([]orderWithUser, 0, len(orders))
		for _, order := range orders {
			email, ok := emails[order.UserID]
			if !ok {
				email = "Unknown"
			}
			joined = append(joined, orderWithUser{Order: order, UserEmail: email})
		}

		c.HTML(http.StatusOK, "admin-orders.html", gin.H{
			"title":    "Admin – Orders",
			"orders":   joined,
			"statuses": models.OrderStatuses,
		})
	}
}

// UpdateOrderStatus sets an order to any status in the fixed enum. There is
// no allowed-transition table: backward moves are accepted.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/orders/update-status"
		defer handlePanic(c, route)

		orderID := strings.TrimSpace(c.PostForm("orderId"))
		newStatus := strings.TrimSpace(c.PostForm("newStatus"))
		if orderID == "" || newStatus == "" {
			c.String(http.StatusBadRequest, "Order ID and new status are required.")
			return
		}
		if !models.ValidOrderStatus(newStatus) {
			c.String(http.StatusBadRequest, "Invalid status.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").UpdateOne(ctx,
			bson.M{"orderId": orderID},
			bson.M{"$set": bson.M{"orderStatus": newStatus, "updatedAt": time.Now()}},
		)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		if res.MatchedCount == 0 {
			c.String(http.StatusNotFound, "Order not found.")
			return
		}

		log.Printf("[ORDER] [INFO] order %s status set to %s", orderID, newStatus)
		c.Redirect(http.StatusFound, "/admin/orders")
	}
}

// emailsByUserID loads the email for every distinct user owning an order.
func emailsByUserID(ctx context.Context, db *mongo.Database, orders []models.Order) (map[string]string, error) {
	seen := make(map[string]struct{}, len(orders))
	userIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		userIDs = append(userIDs, order.UserID)
	}
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	cursor, err := db.Collection("users").Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	emails := make(map[string]string, len(users))
	for _, user := range users {
		emails[user.UserID] = user.Email
	}
	return emails, nil
}
