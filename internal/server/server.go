package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/FabianB88/duurzame-kennisbank/internal/catalog"
	"github.com/FabianB88/duurzame-kennisbank/internal/jsonstore"
	"github.com/FabianB88/duurzame-kennisbank/internal/uploads"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8000"`
	DataFile      string `env:"KNOWLEDGE_BANK_DATA_FILE" envDefault:"data.json"`
	UploadDir     string `env:"KNOWLEDGE_BANK_UPLOAD_DIR" envDefault:"uploads"`
	StaticDir     string `env:"KNOWLEDGE_BANK_STATIC_DIR" envDefault:"static"`
	TemplatesDir  string `env:"KNOWLEDGE_BANK_TEMPLATES_DIR" envDefault:"templates"`
	MaxUploadSize int64  `env:"KNOWLEDGE_BANK_MAX_UPLOAD_SIZE" envDefault:"33554432"`
}

func New(cfg *Config) *http.Server {
	// Initialize structured logger with JSON handler
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize store, upload sink and the catalog service
	store := jsonstore.New(cfg.DataFile)
	sink := uploads.New(cfg.UploadDir)
	service := catalog.NewService(store, sink)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("GET /api/resources", listResources(service))
	mux.HandleFunc("POST /api/upload", createResource(cfg, service))
	mux.HandleFunc("GET /{$}", servePage(cfg, "index.html"))
	mux.HandleFunc("GET /upload", servePage(cfg, "upload.html"))
	mux.HandleFunc("GET /resources", servePage(cfg, "resources.html"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Wrap the handler with logging, gzip and CORS middleware
	handler := loggingMiddleware(gzhttp.GzipHandler(cors(mux)))

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func listResources(service *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := catalog.Query{
			Text: r.URL.Query().Get("q"),
			Type: r.URL.Query().Get("type"),
			Tag:  r.URL.Query().Get("tag"),
		}

		resources, err := service.List(query)
		if err != nil {
			slog.Error("List resources failed", "error", err)
			http.Error(w, "Failed to list resources", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resources); err != nil {
			slog.Error("Failed to encode resources", "error", err)
		}
	}
}

func createResource(cfg *Config, service *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize)

		// Parse multipart form
		if err := r.ParseMultipartForm(cfg.MaxUploadSize); err != nil {
			http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}

		sub := catalog.Submission{
			Title:       strings.TrimSpace(r.FormValue("title")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Type:        strings.TrimSpace(r.FormValue("type")),
			Tags:        r.FormValue("tags"),
			URL:         strings.TrimSpace(r.FormValue("url")),
		}

		// The file part is optional; browsers also submit an empty part
		// when no file was chosen
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			if header.Filename != "" {
				sub.Attachment = &catalog.Attachment{
					OriginalName: header.Filename,
					Content:      file,
				}
			}
		}

		resource, err := service.Create(sub)
		if err != nil {
			slog.Error("Create resource failed", "error", err)
			http.Error(w, "Failed to create resource", http.StatusInternalServerError)
			return
		}

		// Return the created resource
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resource); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func servePage(cfg *Config, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(cfg.TemplatesDir, name)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}

// cors allows fetch calls from the served frontend pages
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests with structured logging
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		// Process the request
		next.ServeHTTP(wrapped, r)

		// Calculate response time
		duration := time.Since(start)

		// Log the request with structured data
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", wrapped.statusCode,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
