package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"famorg/internal/common"
	"famorg/internal/docgen"
	"famorg/internal/export"
	"famorg/internal/fetch"
	"famorg/internal/llm/openai"
	"famorg/internal/notify"
	"famorg/internal/ocr"
	"famorg/internal/profiles"
	"famorg/internal/repository"
	"famorg/internal/server"
	"famorg/internal/storage"
	"famorg/internal/tasks"
	"famorg/internal/weather"
)

func main() {
	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Config
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := repository.Open(cfg.Database.Path, int(cfg.Database.BusyTimeout.Milliseconds()))
	if err != nil {
		logger.Error("open db", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	logger.Info("db ready", "path", cfg.Database.Path)

	profileRepo := repository.NewProfileRepository(db, logger)
	taskRepo := repository.NewTaskRepository(db, logger)
	docRepo := repository.NewDocumentRepository(db, logger)

	// Document storage
	uploader, err := storage.NewLocal(cfg.Storage.DocumentsDir, cfg.Storage.PublicBase, logger)
	if err != nil {
		logger.Error("init storage", "dir", cfg.Storage.DocumentsDir, "error", err)
		os.Exit(1)
	}

	// Attachment reading: fetch -> text layer -> OCR
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext: cfg.OCR.Pdftotext,
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Lang:      cfg.OCR.TesseractLang,
		DPI:       cfg.OCR.DPI,
	}, logger)
	attachments := ocr.NewReader(fetch.NewClient(), extractor, cfg.OCR.CacheTTL, logger)

	// LLM classification is optional: without an API key, ingestion is off.
	var classifier *openai.Client
	if cfg.LLM.APIKey != "" {
		classifier = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
			LenientJSON: true,
		}, logger)
	} else {
		logger.Warn("no OPENAI_API_KEY, email ingestion disabled")
	}

	// Services
	profileSvc := profiles.NewService(profileRepo, logger)
	var taskSvc *tasks.Service
	if classifier != nil {
		taskSvc = tasks.NewService(taskRepo, profileRepo, classifier, logger)
	} else {
		taskSvc = tasks.NewService(taskRepo, profileRepo, nil, logger)
	}
	docSvc := docgen.NewService(&repository.Store{Profiles: profileRepo, Tasks: taskRepo}, attachments, uploader, logger)
	exportSvc := export.NewService(taskRepo, logger)

	// Reminders
	var mailer *notify.Mailer
	if cfg.Mail.Host != "" {
		mailer = notify.NewMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.Sender, logger)
	}
	var push *notify.Push
	if cfg.Push.Endpoint != "" {
		push = notify.NewPush(cfg.Push.Endpoint, cfg.Push.Token, logger)
	}
	if mailer != nil || push != nil {
		reminder := notify.NewReminder(taskRepo, profileRepo, mailer, push, 0, 0, logger)
		go reminder.Run(ctx)
	}

	lat, _ := strconv.ParseFloat(cfg.Weather.Latitude, 64)
	lon, _ := strconv.ParseFloat(cfg.Weather.Longitude, 64)

	srv := server.New(server.Deps{
		Profiles:     profileSvc,
		Tasks:        taskSvc,
		Documents:    docSvc,
		DocRepo:      docRepo,
		Export:       exportSvc,
		Weather:      weather.NewClient(cfg.Weather.BaseURL, logger),
		DocumentsDir: uploader.Dir(),
		PublicBase:   cfg.Storage.PublicBase,
		Latitude:     lat,
		Longitude:    lon,
	}, logger)

	go func() {
		if err := srv.Listen(cfg.Server.Addr); err != nil {
			logger.Error("listen", "addr", cfg.Server.Addr, "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
