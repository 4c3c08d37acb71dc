package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/naijatruths892-ship-it/Naija-truths/db"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/handler"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/repository"
	"github.com/naijatruths892-ship-it/Naija-truths/pkg/auth"
	"github.com/naijatruths892-ship-it/Naija-truths/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.ConnectRedis(); err != nil {
		slog.Warn("redis unavailable, article cache disabled", "error", err)
		db.Redis = nil
	} else {
		defer db.CloseRedis()
	}

	articleRepo := repository.NewArticleRepository(db.Mongo)
	commentRepo := repository.NewCommentRepository(db.Mongo)
	articleCache := repository.NewArticleCache(db.Redis)

	identity := auth.NewIdentityClient(os.Getenv("AUTH_BASE_URL"), os.Getenv("AUTH_API_KEY"))

	var assistant llm.SummaryClient
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		assistant = llm.NewAnthropicClient(key)
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		assistant = llm.NewOpenAIClient(key)
	} else {
		slog.Warn("no LLM API key configured, summary suggestions disabled")
	}

	articleHandler := handler.NewArticleHandler(articleRepo, articleCache)
	commentHandler := handler.NewCommentHandler(commentRepo)
	adminHandler := handler.NewAdminHandler(articleRepo, commentRepo, articleCache, assistant)
	authHandler := handler.NewAuthHandler(identity, identity)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", articleHandler.GetHealth)

	r.GET("/feed/latest", articleHandler.GetLatestFeed)
	r.GET("/feed/breaking", articleHandler.GetBreakingFeed)
	r.GET("/feed/politics", articleHandler.GetPoliticsFeed)
	r.GET("/feed/category/:slug", articleHandler.GetCategoryFeed)
	r.GET("/search", articleHandler.Search)

	r.GET("/articles/:id", articleHandler.GetArticle)
	r.POST("/articles/:id/like", articleHandler.LikeArticle)

	r.GET("/articles/:id/comments", commentHandler.GetComments)
	r.GET("/comments/:id/replies", commentHandler.GetReplies)

	signedIn := r.Group("/", handler.RequireUser(identity))
	signedIn.POST("/articles/:id/comments", commentHandler.AddComment)
	signedIn.POST("/comments/:id/replies", commentHandler.AddReply)

	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/session", authHandler.Session)

	admin := r.Group("/admin", handler.RequireAdmin(identity))
	admin.GET("/articles", adminHandler.ListArticles)
	admin.GET("/articles/search", adminHandler.SearchArticles)
	admin.POST("/articles", adminHandler.CreateArticle)
	admin.PUT("/articles/:id", adminHandler.UpdateArticle)
	admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
	admin.POST("/articles/:id/suggest-summary", adminHandler.SuggestSummary)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
