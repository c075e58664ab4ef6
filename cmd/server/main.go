package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/312006Swetha/speech-recognition/internal/api"
	"github.com/312006Swetha/speech-recognition/internal/asr"
	"github.com/312006Swetha/speech-recognition/internal/config"
	"github.com/312006Swetha/speech-recognition/internal/media"
	"github.com/312006Swetha/speech-recognition/internal/pipeline"
	"github.com/312006Swetha/speech-recognition/internal/store"
	"github.com/312006Swetha/speech-recognition/internal/translate"
	"github.com/312006Swetha/speech-recognition/internal/tts"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	uploads, err := store.NewUploads(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}
	artifacts, err := store.New(cfg.TTSDir)
	if err != nil {
		log.Fatalf("Failed to prepare artifact store: %v", err)
	}
	stopRetention := artifacts.StartRetention(cfg.ArtifactTTL)
	defer stopRetention()

	recognizer, err := asr.CreateRecognizer()
	if err != nil {
		log.Fatalf("Failed to create speech recognizer: %v", err)
	}
	log.Printf("Speech recognizer initialized: %s", recognizer.Name())

	translator, detector, err := translate.CreateProvider()
	if err != nil {
		log.Fatalf("Failed to create translator: %v", err)
	}
	log.Printf("Translator initialized: %s", translator.Name())

	synthesizer, err := tts.CreateProvider()
	if err != nil {
		log.Fatalf("Failed to create speech synthesizer: %v", err)
	}
	log.Printf("Speech synthesizer initialized: %s", synthesizer.Name())

	converter := media.NewConverter(cfg.FFmpegPath)
	downloader := media.NewDownloader(cfg.YtdlpPath, cfg.UploadDir)

	p := pipeline.New(converter, recognizer, translator, detector, synthesizer, artifacts, cfg.WindowSeconds)
	server := api.NewServer(p, downloader, uploads, artifacts)

	r := gin.Default()

	// Add CORS middleware for the browser frontend
	r.Use(corsMiddleware())

	server.RegisterRoutes(r)

	log.Printf("Speech-recognition backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the browser frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
