package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/mailer"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

const bcryptCost = 12

const verificationTokenTTL = time.Hour

type registerForm struct {
	FirstName string `form:"firstName" binding:"required"`
	LastName  string `form:"lastName" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register"})
}

func Register(db *mongo.Database, m *mailer.Mailer, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/register"
		defer handlePanic(c, route)

		var form registerForm
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"title": "Register",
				"error": validationMessage(err),
			})
			return
		}

		email := strings.ToLower(strings.TrimSpace(form.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		if count > 0 {
			c.HTML(http.StatusConflict, "register.html", gin.H{
				"title": "Register",
				"error": "User already exists with this email.",
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcryptCost)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		token := uuid.NewString()
		now := time.Now()
		expiry := now.Add(verificationTokenTTL)
		user := models.User{
			UserID:            uuid.NewString(),
			FirstName:         strings.TrimSpace(form.FirstName),
			LastName:          strings.TrimSpace(form.LastName),
			Email:             email,
			PasswordHash:      string(hash),
			Role:              models.RoleCustomer,
			AccountStatus:     models.AccountStatusActive,
			IsEmailVerified:   false,
			VerificationToken: token,
			TokenExpiry:       &expiry,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if _, err := db.Collection("users").InsertOne(ctx, user); err != nil {
			renderServerError(c, route, err)
			return
		}

		verificationURL := fmt.Sprintf("%s/users/verify/%s", strings.TrimRight(baseURL, "/"), token)
		if err := m.SendVerification(user.Email, user.FirstName, verificationURL); err != nil {
			// Registration is already committed; the user can be re-verified
			// manually, so the failure is only logged.
			log.Println("[AUTH] [ERROR] verification email failed:", err)
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.HTML(http.StatusCreated, "register-success.html", gin.H{
			"title": "Registration Successful",
		})
	}
}

func VerifyEmail(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/verify/:token"
		defer handlePanic(c, route)

		token := strings.TrimSpace(c.Param("token"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"verificationToken": token}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.HTML(http.StatusNotFound, "verify.html", gin.H{
				"title":   "Verification",
				"message": "Invalid or expired verification link.",
			})
			return
		}
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		if user.TokenExpiry != nil && user.TokenExpiry.Before(time.Now()) {
			c.HTML(http.StatusGone, "verify.html", gin.H{
				"title":   "Verification",
				"message": "Verification link has expired. Please register again.",
			})
			return
		}

		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{"verificationToken": token},
			bson.M{
				"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now()},
				"$unset": bson.M{"verificationToken": "", "tokenExpiry": ""},
			},
		)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] email verified:", user.Email)
		c.HTML(http.StatusOK, "verify.html", gin.H{
			"title":    "Email Verified",
			"message":  "Your account has been verified successfully.",
			"verified": true,
		})
	}
}

func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func Login(db *mongo.Database, sessionSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/login"
		defer handlePanic(c, route)

		var form loginForm
		if err := c.ShouldBind(&form); err != nil {
			loginFailed(c, "Email and password are required.")
			return
		}

		email := strings.ToLower(strings.TrimSpace(form.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			loginFailed(c, "User not found.")
			return
		}
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		if user.AccountStatus != models.AccountStatusActive {
			loginFailed(c, "Account is not active.")
			return
		}
		if !user.IsEmailVerified {
			loginFailed(c, "Please verify your email before logging in.")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
			log.Println("[AUTH] [ERROR] invalid password for:", email)
			loginFailed(c, "Invalid password.")
			return
		}

		identity := middleware.Identity{
			UserID:    user.UserID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		}
		token, err := middleware.IssueSession(identity, sessionSecret, sessionTTL)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		middleware.SetSessionCookie(c, token, sessionTTL)

		log.Println("[AUTH] [INFO] login succeeded:", email)
		if user.Role == models.RoleAdmin {
			c.Redirect(http.StatusFound, "/users/admin")
			return
		}
		c.Redirect(http.StatusFound, "/user/dashboard")
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookie(c)
		c.Redirect(http.StatusFound, "/users/login")
	}
}

func loginFailed(c *gin.Context, message string) {
	c.HTML(http.StatusUnauthorized, "login.html", gin.H{
		"title":   "Login",
		"message": message,
	})
}
