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

// UserDashboard shows the signed-in user's order counts per status.
func UserDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/dashboard"
		defer handlePanic(c, route)

		identity, _ := middleware.IdentityFromContext(c)

		orders, err := findUserOrders(c.Request.Context(), db, identity.UserID)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		statusCounts := make(map[string]int, len(models.OrderStatuses))
		for _, status := range models.OrderStatuses {
			statusCounts[status] = 0
		}
		for _, order := range orders {
			if _, ok := statusCounts[order.OrderStatus]; ok {
				statusCounts[order.OrderStatus]++
			}
		}

		c.HTML(http.StatusOK, "user-dashboard.html", gin.H{
			"title":        "User Dashboard",
			"user":         identity,
			"statusCounts": statusCounts,
			"totalOrders":  len(orders),
		})
	}
}

func UserProfilePage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/profile"
		defer handlePanic(c, route)

		identity, _ := middleware.IdentityFromContext(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"userId": identity.UserID}).Decode(&user); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.HTML(http.StatusOK, "user-profile.html", gin.H{
			"title":   "User Profile",
			"user":    user,
			"updated": c.Query("updated") == "1",
		})
	}
}

func UpdateUserProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/profile"
		defer handlePanic(c, route)

		identity, _ := middleware.IdentityFromContext(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{
			"address":       strings.TrimSpace(c.PostForm("address")),
			"contactNumber": strings.TrimSpace(c.PostForm("contactNumber")),
			"updatedAt":     time.Now(),
		}
		_, err := db.Collection("users").UpdateOne(ctx, bson.M{"userId": identity.UserID}, bson.M{"$set": update})
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		c.Redirect(http.StatusFound, "/user/profile?updated=1")
	}
}

// UserOrders lists the purchase history grouped by status, newest first.
func UserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/orders"
		defer handlePanic(c, route)

		identity, _ := middleware.IdentityFromContext(c)

		orders, err := findUserOrders(c.Request.Context(), db, identity.UserID)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		ordersByStatus := make(map[string][]models.Order, len(models.OrderStatuses))
		for _, status := range models.OrderStatuses {
			ordersByStatus[status] = nil
		}
		for _, order := range orders {
			if _, ok := ordersByStatus[order.OrderStatus]; ok {
				ordersByStatus[order.OrderStatus] = append(ordersByStatus[order.OrderStatus], order)
			}
		}

		c.HTML(http.StatusOK, "user-orders.html", gin.H{
			"title":          "My Orders",
			"user":           identity,
			"statuses":       models.OrderStatuses,
			"ordersByStatus": ordersByStatus,
		})
	}
}

func findUserOrders(ctx context.Context, db *mongo.Database, userID string) ([]models.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection("orders").Find(queryCtx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var orders []models.Order
	if err := cursor.All(queryCtx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
