package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

// AdminDashboard renders the admin landing page with the full user list.
func AdminDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/admin"
		defer handlePanic(c, route)

		users, err := listUsers(c.Request.Context(), db)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		identity, _ := middleware.IdentityFromContext(c)
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"title":       "Admin Dashboard",
			"users":       users,
			"currentUser": identity,
		})
	}
}

func ListUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/list"
		defer handlePanic(c, route)

		users, err := listUsers(c.Request.Context(), db)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		c.HTML(http.StatusOK, "users-list.html", gin.H{
			"title": "Registered Users",
			"users": users,
		})
	}
}

func EditUserPage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/edit/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			renderNotFound(c)
			return
		}

		c.HTML(http.StatusOK, "edit-user.html", gin.H{
			"title": "Edit User",
			"user":  user,
		})
	}
}

func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/edit/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{
			"firstName": strings.TrimSpace(c.PostForm("firstName")),
			"lastName":  strings.TrimSpace(c.PostForm("lastName")),
			"email":     strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
			"updatedAt": time.Now(),
		}
		if _, err := db.Collection("users").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update}); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.Redirect(http.StatusFound, "/users/list")
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/delete/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			renderServerError(c, route, err)
			return
		}

		c.Redirect(http.StatusFound, "/users/list")
	}
}

func listUsers(ctx context.Context, db *mongo.Database) ([]models.User, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection("users").Find(queryCtx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var users []models.User
	if err := cursor.All(queryCtx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
