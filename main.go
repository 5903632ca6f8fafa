// Command blogapi is the entry point of the blog platform API. It loads
// configuration, connects the database pool, runs schema migrations, wires
// the feature services and handlers together, and serves the HTTP API with
// graceful shutdown.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/categories"
	"github.com/user/blogapi-go/comments"
	"github.com/user/blogapi-go/config"
	"github.com/user/blogapi-go/db"
	"github.com/user/blogapi-go/posts"
	"github.com/user/blogapi-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual constructor injection: every service receives the pool and
	// its collaborators explicitly.
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenService(*cfg.Auth)

	authService := auth.NewAuthService(pool, hasher, tokens)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool, hasher)
	userHandlers := users.NewUserHandlers(userService)

	commentService := comments.NewCommentService(pool)
	commentHandlers := comments.NewCommentHandler(commentService)

	postService := posts.NewPostService(pool, commentService)
	postHandlers := posts.NewPostHandlers(postService)

	categoryService := categories.NewCategoryService(pool)
	categoryHandlers := categories.NewCategoryHandler(categoryService)

	requireAuth := auth.Middleware(tokens)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandlers.HandleGetProfile())
			r.Put("/me", userHandlers.HandleUpdateProfile())
			r.Delete("/me", userHandlers.HandleDeleteAccount())
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", postHandlers.HandleList())
		r.Get("/{id}", postHandlers.HandleGet())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", postHandlers.HandleCreate())
			r.Put("/{id}", postHandlers.HandleUpdate())
			r.Delete("/{id}", postHandlers.HandleDelete())
		})
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/post/{postId}", commentHandlers.HandleListByPost())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", commentHandlers.HandleCreate())
			r.Delete("/{id}", commentHandlers.HandleDelete())
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryHandlers.HandleList())
		r.Get("/{id}/posts", categoryHandlers.HandlePosts())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", categoryHandlers.HandleCreate())
			r.Delete("/{id}", categoryHandlers.HandleDelete())
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, apperror.NewNotFoundError("Route not found", nil))
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
