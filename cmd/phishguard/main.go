package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/pkg/analyzer"
	"github.com/phishguard/phishguard/pkg/collectors"
	"github.com/phishguard/phishguard/pkg/config"
	"github.com/phishguard/phishguard/pkg/logging"
	"github.com/phishguard/phishguard/pkg/patterns"
	"github.com/phishguard/phishguard/pkg/store"
)

const Version = "0.1.0"

// Server bundles the detection engine with its storage collaborators.
// Storage components are optional and gracefully degrade if unavailable.
type Server struct {
	engine   *analyzer.Engine
	history  store.HistoryStore
	limiter  store.RateLimiter
	counters *store.Counters // nil without redis
	config   *config.Config
	logger   *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	lex := analyzer.DefaultLexicon()
	if cfg.LexiconPath != "" {
		loaded, err := analyzer.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
		logger.Info("lexicon overlay loaded", zap.String("path", cfg.LexiconPath))
	}

	opts := analyzer.Options{
		Lexicon:             lex,
		URLDatasetPath:      cfg.URLDatasetPath,
		TextDatasetPath:     cfg.TextDatasetPath,
		Seed:                cfg.TrainingSeed,
		CollectorTimeout:    cfg.CollectorTimeout,
		DisableSimilarity:   cfg.DisableSimilarity,
		URLConcurrency:      cfg.URLConcurrency,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
	if cfg.EnableCollectors {
		opts.CertInspector = collectors.NewTLSInspector(cfg.CollectorTimeout, logger)
		opts.AgeLookup = collectors.NewRDAPLookup(cfg.CollectorTimeout, logger)
		logger.Info("infrastructure collectors enabled")
	}

	engine, err := analyzer.NewEngine(opts)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	s := &Server{
		engine:  engine,
		history: store.NewMemoryStore(0),
		limiter: store.NewMemoryLimiter(cfg.RateLimitPerMinute),
		config:  cfg,
		logger:  logger,
	}

	if cfg.PostgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pg, err := store.NewPostgresStore(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			logger.Warn("postgres unavailable, using in-memory history", zap.Error(err))
		} else {
			s.history = pg
			logger.Info("scan history persisted to postgres")
		}
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		limiter, err := store.NewRedisLimiter(ctx, cfg.RedisURL, cfg.RateLimitPerMinute)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory rate limiter", zap.Error(err))
		} else {
			s.limiter = limiter
			s.counters = store.NewCounters(limiter.Client())
			logger.Info("rate limiting and scan counters backed by redis")
		}
	}

	return s, nil
}

type analyzeRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type analyzeResponse struct {
	ScanID     string `json:"scan_id"`
	AnalyzedAt string `json:"analyzed_at"`
	*analyzer.Result
}

// validate rejects malformed input before it reaches the engine.
func (r *analyzeRequest) validate(maxLen int) error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(r.Content) > maxLen {
		return fmt.Errorf("content exceeds %d characters", maxLen)
	}
	if _, ok := analyzer.ParseContentType(r.ContentType); !ok {
		return fmt.Errorf("content_type must be email, sms, or url")
	}
	return nil
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a
// request, or "" when the origin is not in the allow-list.
func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}

// sanitizeContent strips NUL and other control characters that have no
// place in email, SMS or URL content. Whitespace controls survive.
func sanitizeContent(content string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, content)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		addr := ""
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		runHTTPServer(addr)
	case "scan":
		if len(os.Args) < 4 {
			fmt.Println("Usage: phishguard scan <email|sms|url> <content>")
			os.Exit(1)
		}
		runCLIScan(os.Args[2], strings.Join(os.Args[3:], " "))
	case "patterns":
		printPatterns()
	case "version":
		fmt.Printf("PhishGuard v%s\n", Version)
		fmt.Println("Hybrid phishing detection engine")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("PhishGuard v%s - Hybrid phishing detection engine\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  phishguard serve [addr]              Start HTTP server (default: :8080)")
	fmt.Println("  phishguard scan <type> <content>     Analyze content (type: email, sms, url)")
	fmt.Println("  phishguard patterns                  List detection pattern categories")
	fmt.Println("  phishguard version                   Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  phishguard serve :9000")
	fmt.Println("  phishguard scan sms \"Your account has been suspended, verify your PIN now\"")
	fmt.Println("  phishguard scan url \"http://secure-login.example.tk/verify\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  PHISHGUARD_LISTEN_ADDR        HTTP listen address")
	fmt.Println("  PHISHGUARD_API_KEY            API key for the analyze endpoint")
	fmt.Println("  PHISHGUARD_URL_DATASET        Labeled URL CSV (synthetic fallback if unset)")
	fmt.Println("  PHISHGUARD_TEXT_DATASET       Labeled text CSV (synthetic fallback if unset)")
	fmt.Println("  PHISHGUARD_LEXICON            YAML lexicon overlay")
	fmt.Println("  PHISHGUARD_POSTGRES_DSN       Scan history database")
	fmt.Println("  PHISHGUARD_REDIS_URL          Rate limiting backend")
	fmt.Println("  PHISHGUARD_ENABLE_COLLECTORS  TLS and RDAP lookups for URL scans")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(addr string) {
	cfg := config.NewDefaultConfig()
	if addr != "" {
		cfg.ListenAddr = addr
	}
	cfg.MustValidate()

	logger := logging.Must(cfg.LogLevel, cfg.IsProduction())
	defer logger.Sync()

	server, err := NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer server.history.Close()

	app := fiber.New(fiber.Config{
		AppName:   "PhishGuard",
		BodyLimit: cfg.MaxContentLength * 4,
	})

	// Security headers and CORS on every response.
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		if origin := allowedOrigin(cfg.AllowedOrigins, c.Get("Origin")); origin != "" {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
			c.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": Version})
	})

	api := app.Group("/api")

	// API key check; skipped when no key is configured (development).
	api.Use(func(c fiber.Ctx) error {
		if cfg.APIKey != "" && c.Get("X-API-Key") != cfg.APIKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
		}
		return c.Next()
	})

	// Per-client rate limit.
	api.Use(func(c fiber.Ctx) error {
		allowed, err := server.limiter.Allow(c.Context(), c.IP())
		if err != nil {
			logger.Warn("rate limiter error", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	})

	api.Post("/analyze", func(c fiber.Ctx) error {
		var req analyzeRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := req.validate(cfg.MaxContentLength); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		contentType, _ := analyzer.ParseContentType(req.ContentType)
		content := sanitizeContent(req.Content)
		start := time.Now()
		result := server.engine.Analyze(c.Context(), content, contentType)

		scanID := uuid.New()
		now := time.Now().UTC()
		logger.Info("scan complete",
			zap.String("scan_id", scanID.String()),
			zap.String("content_type", string(contentType)),
			zap.String("classification", result.Classification),
			zap.Float64("score", result.ConfidenceScore),
			zap.Int("indicators", len(result.ThreatIndicators)),
			zap.Duration("latency", time.Since(start)),
		)

		if err := server.history.SaveScan(c.Context(), &store.ScanRecord{
			ID:              scanID,
			ContentType:     string(contentType),
			ContentPreview:  store.Preview(content),
			Classification:  result.Classification,
			RiskLevel:       result.RiskLevel,
			ConfidenceScore: result.ConfidenceScore,
			IndicatorCount:  len(result.ThreatIndicators),
			CreatedAt:       now,
		}); err != nil {
			logger.Warn("failed to persist scan", zap.String("scan_id", scanID.String()), zap.Error(err))
		}

		if server.counters != nil {
			if err := server.counters.Record(c.Context(), result.Classification); err != nil {
				logger.Warn("failed to bump scan counters", zap.Error(err))
			}
		}

		return c.JSON(analyzeResponse{
			ScanID:     scanID.String(),
			AnalyzedAt: now.Format(time.RFC3339),
			Result:     result,
		})
	})

	api.Get("/patterns", func(c fiber.Ctx) error {
		registry := patterns.Get()
		cats := registry.Categories()
		counts := make(map[string]int, len(cats))
		for _, cat := range cats {
			counts[string(cat)] = registry.CategoryCount(cat)
		}
		return c.JSON(fiber.Map{
			"total_patterns": registry.TotalPatterns(),
			"categories":     counts,
		})
	})

	api.Get("/stats", func(c fiber.Ctx) error {
		stats, err := server.history.Stats(c.Context())
		if err != nil {
			logger.Error("stats query failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats unavailable"})
		}
		resp := fiber.Map{
			"total_scans":       stats.TotalScans,
			"by_classification": stats.ByClassification,
			"by_risk_level":     stats.ByRiskLevel,
		}
		if server.counters != nil {
			live, err := server.counters.Snapshot(c.Context())
			if err != nil {
				logger.Warn("counter snapshot failed", zap.Error(err))
			} else {
				resp["live_counters"] = live
			}
		}
		return c.JSON(resp)
	})

	api.Get("/history", func(c fiber.Ctx) error {
		limit := fiber.Query(c, "limit", 50)
		scans, err := server.history.RecentScans(c.Context(), limit)
		if err != nil {
			logger.Error("history query failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "history unavailable"})
		}
		return c.JSON(fiber.Map{"scans": scans})
	})

	logger.Info("server starting",
		zap.String("addr", cfg.ListenAddr),
		zap.String("env", cfg.Env),
	)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIScan(contentType, content string) {
	ctype, ok := analyzer.ParseContentType(contentType)
	if !ok {
		fmt.Fprintln(os.Stderr, "content type must be email, sms, or url")
		os.Exit(1)
	}

	cfg := config.NewDefaultConfig()
	server, err := NewServer(cfg, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	result := server.engine.Analyze(context.Background(), sanitizeContent(content), ctype)
	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))
}

func printPatterns() {
	registry := patterns.Get()
	fmt.Printf("PhishGuard detection patterns: %d total\n\n", registry.TotalPatterns())
	for _, cat := range registry.Categories() {
		fmt.Printf("  %-22s %d\n", string(cat), registry.CategoryCount(cat))
	}
}
