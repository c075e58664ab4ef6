package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/312006Swetha/speech-recognition/internal/pipeline"
	"github.com/312006Swetha/speech-recognition/internal/store"
	"github.com/312006Swetha/speech-recognition/internal/utils"
)

// Runner is the orchestration core behind the routes.
type Runner interface {
	Run(ctx context.Context, mediaPath, kind, targetLang string) (*pipeline.Result, error)
}

// Downloader fetches remote media audio to a local file.
type Downloader interface {
	FetchAudio(ctx context.Context, url string) (string, error)
}

// Server wires the HTTP surface to the pipeline.
type Server struct {
	pipeline   Runner
	downloader Downloader
	uploads    *store.Uploads
	artifacts  *store.Store
}

// NewServer creates the route handler set.
func NewServer(p Runner, d Downloader, uploads *store.Uploads, artifacts *store.Store) *Server {
	return &Server{pipeline: p, downloader: d, uploads: uploads, artifacts: artifacts}
}

// RegisterRoutes attaches all entry points to the router.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.healthCheck)
	r.POST("/transcribe", s.transcribeUpload)
	r.POST("/youtube", s.transcribeYouTube)
	r.POST("/video", s.transcribeVideo)
	r.GET("/tts/:file_id", s.serveArtifact)
}

// healthCheck returns server health status.
func (s *Server) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "speech-recognition-backend",
	})
}

var audioExts = []string{".webm", ".m4a", ".mp3", ".wav", ".aac", ".ogg", ".caf", ".aiff", ".aif", ".flac"}
var videoExts = []string{".mp4", ".mov", ".mkv", ".webm", ".avi", ".mpeg", ".mpg"}

// transcribeUpload handles a direct audio upload.
func (s *Server) transcribeUpload(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		// Older frontend builds posted the blob under different names.
		if file, err = c.FormFile("audio_file"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource), "audio file is required: "+err.Error())
				return
			}
		}
	}

	if !allowedExt(file.Filename, audioExts) {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource),
			"unsupported audio format. Supported: webm, m4a, mp3, wav, aac, ogg, caf, aiff, flac")
		return
	}
	if file.Size > 25*1024*1024 {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource), "file size exceeds 25MB limit")
		return
	}

	path, err := s.uploads.SaveMultipart(file)
	if err != nil {
		log.Printf("[Upload] Failed to save audio: %v", err)
		s.writeError(c, pipeline.SourceError(err))
		return
	}

	s.run(c, path, "upload")
}

// YouTubeRequest represents the remote-URL request body.
type YouTubeRequest struct {
	URL        string `json:"url" binding:"required"`
	TargetLang string `json:"target_lang"`
}

// transcribeYouTube handles a remote video URL.
func (s *Server) transcribeYouTube(c *gin.Context) {
	var req YouTubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource), "url is required")
		return
	}

	path, err := s.downloader.FetchAudio(c.Request.Context(), req.URL)
	if err != nil {
		log.Printf("[YouTube] Download failed for %s: %v", req.URL, err)
		s.writeError(c, pipeline.SourceError(err))
		return
	}

	s.runWithLang(c, path, "youtube", targetLangOr(req.TargetLang))
}

// transcribeVideo handles an uploaded video container.
func (s *Server) transcribeVideo(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource), "video file is required: "+err.Error())
		return
	}

	if !allowedExt(file.Filename, videoExts) {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource),
			"unsupported video format. Supported: mp4, mov, mkv, webm, avi, mpeg")
		return
	}
	if file.Size > 200*1024*1024 {
		utils.Error(c, http.StatusBadRequest, string(pipeline.StageSource), "file size exceeds 200MB limit")
		return
	}

	path, err := s.uploads.SaveMultipart(file)
	if err != nil {
		log.Printf("[Video] Failed to save upload: %v", err)
		s.writeError(c, pipeline.SourceError(err))
		return
	}

	s.run(c, path, "video")
}

// serveArtifact streams a stored synthesis artifact.
func (s *Server) serveArtifact(c *gin.Context) {
	id := c.Param("file_id")

	path, err := s.artifacts.Open(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "artifact", "artifact not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "artifact", err.Error())
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

func (s *Server) run(c *gin.Context, mediaPath, kind string) {
	s.runWithLang(c, mediaPath, kind, targetLangOr(c.PostForm("target_lang")))
}

func (s *Server) runWithLang(c *gin.Context, mediaPath, kind, targetLang string) {
	result, err := s.pipeline.Run(c.Request.Context(), mediaPath, kind, targetLang)
	if err != nil {
		log.Printf("[%s] Pipeline failed: %v", kind, err)
		s.writeError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"transcription":       result.Transcription,
		"translation":         result.Translation,
		"transcription_audio": "/tts/" + result.TranscriptAudioID,
		"tts_audio":           "/tts/" + result.TranslationAudioID,
		"language":            result.VoiceLanguage,
		"target_lang":         result.TargetLanguage,
	})
}

// writeError maps a pipeline failure onto the structured error payload.
func (s *Server) writeError(c *gin.Context, err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		code := http.StatusInternalServerError
		if stageErr.Stage == pipeline.StageSource {
			code = http.StatusBadRequest
		}
		stage := string(stageErr.Stage)
		if stageErr.Artifact != "" {
			stage += ":" + stageErr.Artifact
		}
		utils.Error(c, code, stage, stageErr.Err.Error())
		return
	}
	utils.Error(c, http.StatusInternalServerError, "internal", err.Error())
}

func targetLangOr(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}

func allowedExt(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
