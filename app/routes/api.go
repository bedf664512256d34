// Package routes builds the HTTP route table.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/fitsetup/app/controllers"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/metrics"
	"github.com/shashiranjanraj/fitsetup/pkg/middleware"
	"github.com/shashiranjanraj/fitsetup/pkg/rbac"
	"github.com/shashiranjanraj/fitsetup/pkg/reqid"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
	"github.com/shashiranjanraj/fitsetup/pkg/router"
	"github.com/shashiranjanraj/fitsetup/pkg/storage"
	"github.com/shashiranjanraj/fitsetup/pkg/ws"
)

// Build assembles repositories, services, controllers and the full route
// table. The returned router is ready to serve.
func Build(hub *ws.Hub) *router.Router {
	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	reviewRepo := repositories.NewReviewRepository()
	wishlistRepo := repositories.NewWishlistRepository()
	dietRepo := repositories.NewDietLogRepository()
	workoutRepo := repositories.NewWorkoutLogRepository()

	notifier := services.NewHubNotifier(hub, userRepo)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(productRepo, storage.Default())
	cartSvc := services.NewCartService(cartRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, cartRepo, notifier)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo, orderRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)
	fitnessSvc := services.NewFitnessService(dietRepo, workoutRepo)
	adminSvc := services.NewAdminService(userRepo, productRepo, orderRepo)

	authCtl := controllers.NewAuthController(authSvc)
	productCtl := controllers.NewProductController(catalogSvc)
	cartCtl := controllers.NewCartController(cartSvc)
	orderCtl := controllers.NewOrderController(orderSvc)
	reviewCtl := controllers.NewReviewController(reviewSvc, authSvc)
	wishlistCtl := controllers.NewWishlistController(wishlistSvc)
	fitnessCtl := controllers.NewFitnessController(fitnessSvc)
	adminCtl := controllers.NewAdminController(adminSvc)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)
	mountOrderStream(r, hub)

	api := r.Group("/api")

	// Public endpoints.
	api.Post("/auth/register", "auth.register", authCtl.Register, middleware.RateLimit(10, time.Minute))
	api.Post("/auth/login", "auth.login", authCtl.Login, middleware.RateLimit(20, time.Minute))
	api.Post("/auth/reset-password", "auth.reset", authCtl.ResetPassword, middleware.RateLimit(5, time.Minute))
	api.Get("/products", "products.index", productCtl.Index)
	api.Get("/products/{id}", "products.show", productCtl.Show)
	api.Get("/products/{id}/reviews", "reviews.index", reviewCtl.Index)

	// Endpoints requiring a bearer token.
	user := api.Group("", middleware.Auth)
	user.Get("/me", "me.show", authCtl.Me)
	user.Put("/me", "me.update", authCtl.UpdateProfile)
	user.Put("/me/password", "me.password", authCtl.ChangePassword)
	user.Get("/me/addresses", "me.addresses.index", authCtl.Addresses)
	user.Post("/me/addresses", "me.addresses.store", authCtl.AddAddress)
	user.Delete("/me/addresses/{id}", "me.addresses.destroy", authCtl.RemoveAddress)
	user.Put("/me/addresses/{id}/default", "me.addresses.default", authCtl.SetDefaultAddress)

	user.Get("/cart", "cart.show", cartCtl.Show)
	user.Post("/cart/items", "cart.add", cartCtl.Add)
	user.Put("/cart/items/{productId}", "cart.update", cartCtl.UpdateItem)
	user.Delete("/cart/items/{productId}", "cart.remove", cartCtl.RemoveItem)
	user.Delete("/cart", "cart.clear", cartCtl.Clear)

	user.Post("/orders", "orders.checkout", orderCtl.Checkout)
	user.Get("/orders", "orders.index", orderCtl.Index)
	user.Get("/orders/{id}", "orders.show", orderCtl.Show)

	user.Get("/products/{id}/reviews/eligibility", "reviews.eligibility", reviewCtl.Eligibility)
	user.Post("/products/{id}/reviews", "reviews.store", reviewCtl.Store)
	user.Put("/reviews/{id}", "reviews.update", reviewCtl.Update)
	user.Delete("/reviews/{id}", "reviews.destroy", reviewCtl.Destroy)

	user.Get("/wishlist", "wishlist.index", wishlistCtl.Index)
	user.Get("/wishlist/check/{productId}", "wishlist.check", wishlistCtl.Check)
	user.Post("/wishlist/items", "wishlist.add", wishlistCtl.Add)
	user.Delete("/wishlist/items/{productId}", "wishlist.remove", wishlistCtl.Remove)
	user.Delete("/wishlist", "wishlist.clear", wishlistCtl.Clear)

	user.Post("/fitness/diet", "diet.log", fitnessCtl.LogDiet)
	user.Get("/fitness/diet", "diet.index", fitnessCtl.ListDiet)
	user.Delete("/fitness/diet/{id}", "diet.delete", fitnessCtl.DeleteDiet)
	user.Post("/fitness/workouts", "workouts.log", fitnessCtl.LogWorkout)
	user.Get("/fitness/workouts", "workouts.index", fitnessCtl.ListWorkouts)
	user.Put("/fitness/workouts/{id}", "workouts.update", fitnessCtl.UpdateWorkout)
	user.Delete("/fitness/workouts/{id}", "workouts.delete", fitnessCtl.DeleteWorkout)
	user.Get("/fitness/progress", "fitness.progress", fitnessCtl.Progress)

	// Admin endpoints.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Get("/stats", "admin.stats", adminCtl.Stats)
	admin.Get("/products/low-stock", "admin.lowstock", adminCtl.LowStock)
	admin.Post("/products", "admin.products.store", productCtl.Store)
	admin.Put("/products/{id}", "admin.products.update", productCtl.Update)
	admin.Delete("/products/{id}", "admin.products.destroy", productCtl.Destroy)
	admin.Get("/orders", "admin.orders.index", orderCtl.AdminIndex)
	admin.Put("/orders/{id}/status", "admin.orders.status", orderCtl.UpdateStatus)
	admin.Put("/orders/{id}/payment", "admin.orders.payment", orderCtl.UpdatePayment)
	admin.Get("/users", "admin.users.index", adminCtl.Users)
	admin.Put("/users/{id}/role", "admin.users.role", adminCtl.SetUserRole)
	admin.Delete("/users/{id}", "admin.users.destroy", adminCtl.DeleteUser)

	return r
}

// mountOrderStream exposes the order event stream to admin dashboards. The
// upgrade sits behind the same gate as the admin API group; anonymous and
// non-admin callers never reach the hub.
func mountOrderStream(r *router.Router, hub *ws.Hub) {
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	}, middleware.Auth, rbac.HasRole("admin"))
}
