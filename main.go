package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	mail := mailer.New(config.AppEnv.ResendAPIKey, config.AppEnv.ResendFromEmail)
	secret := config.AppEnv.SessionSecret
	sessionTTL := config.AppEnv.SessionTTL

	r := gin.Default()
	r.LoadHTMLGlob("templates/**/*")
	r.Static("/public", "./public")
	r.Use(middleware.AttachIdentity(secret))

	// Public pages
	r.GET("/", handlers.Home())
	r.GET("/products", handlers.ProductsPage(db))
	r.GET("/about", handlers.AboutPage)
	r.GET("/contact", handlers.ContactPage)
	r.GET("/privacy", handlers.PrivacyPage)
	r.GET("/terms", handlers.TermsPage)

	// Identity lifecycle
	users := r.Group("/users")
	{
		users.GET("/register", handlers.RegisterPage)
		users.POST("/register", handlers.Register(db, mail, config.AppEnv.BaseURL))
		users.GET("/verify/:token", handlers.VerifyEmail(db))
		users.GET("/login", handlers.LoginPage)
		users.POST("/login", handlers.Login(db, secret, sessionTTL))
		users.GET("/logout", handlers.Logout())

		users.GET("/admin", middleware.AdminOnly(secret), handlers.AdminDashboard(db))
		users.GET("/list", middleware.AdminOnly(secret), handlers.ListUsers(db))
		users.GET("/edit/:id", middleware.AdminOnly(secret), handlers.EditUserPage(db))
		users.POST("/edit/:id", middleware.AdminOnly(secret), handlers.UpdateUser(db))
		users.POST("/delete/:id", middleware.AdminOnly(secret), handlers.DeleteUser(db))
	}

	// Checkout
	r.POST("/buy", middleware.RequireLogin(secret), handlers.Buy(db))
	r.POST("/orders/checkout", middleware.RequireLogin(secret), handlers.Checkout(db))

	// Self-service
	user := r.Group("/user")
	user.Use(middleware.RequireLogin(secret))
	{
		user.GET("/dashboard", handlers.UserDashboard(db))
		user.GET("/profile", handlers.UserProfilePage(db))
		user.POST("/profile", handlers.UpdateUserProfile(db))
		user.GET("/orders", handlers.UserOrders(db))
	}

	// Admin
	admin := r.Group("/admin")
	admin.Use(middleware.AdminOnly(secret))
	{
		admin.GET("/orders", handlers.AdminOrders(db))
		admin.POST("/orders/update-status", handlers.UpdateOrderStatus(db))

		admin.GET("/products", handlers.AdminProducts(db))
		admin.GET("/products/new", handlers.NewProductPage)
		admin.POST("/products/new", handlers.CreateProduct(db))
		admin.GET("/products/edit/:id", handlers.EditProductPage(db))
		admin.POST("/products/edit/:id", handlers.UpdateProduct(db))
		admin.POST("/products/delete/:id", handlers.DeleteProduct(db))

		reports := admin.Group("/reports/sales")
		{
			reports.GET("", handlers.SalesReport(db))
			reports.GET("/export/daily", handlers.ExportDailySales(db))
			reports.GET("/export/orders", handlers.ExportDetailedOrders(db))
			reports.GET("/print", handlers.SalesReportPrint(db))
		}
	}

	r.NoRoute(handlers.NotFound)

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
