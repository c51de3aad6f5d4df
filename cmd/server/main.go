package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"aboard/internal/db"
	"aboard/internal/middleware"
	"aboard/internal/router"
	"aboard/internal/services"
	"aboard/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Ensure upload directories
	uploadRoot := os.Getenv("UPLOAD_DIR")
	if uploadRoot == "" {
		uploadRoot = "./uploads"
	}
	imageDir := filepath.Join(uploadRoot, "images")
	videoDir := filepath.Join(uploadRoot, "videos")
	for _, dir := range []string{imageDir, videoDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("Failed to create directory %s: %v", dir, err)
			}
			log.Printf("Created directory: %s", dir)
		}
	}

	maxUploadMB := int64(10)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUploadMB = n
		}
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	sessionStore := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("aboard_session", sessionStore))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = router.LoadTemplates("./web/templates")

	// Static Assets & stored media
	r.Static("/static", "./web/static")
	r.Static("/uploads/images", imageDir)
	r.Static("/uploads/videos", videoDir)

	// Middleware
	r.Use(middleware.LoadPoster())

	postStore := store.NewPostStore(db.DB)
	mediaStore := services.NewMediaStore(imageDir, videoDir, maxUploadMB*1024*1024)

	router.RegisterRoutes(r, postStore, mediaStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("ABoard server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
