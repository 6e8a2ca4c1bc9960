package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/admin"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/analytics"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/router"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/chatbot"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/clinic"
	appconfig "github.com/DucLamDev/quanlyphongkham-BE/internal/config"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/notify"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/patients"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/questions"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/sheets"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/storage"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/vouchers"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic API server", "env", cfg.Env, "port", cfg.Port)

	ctx := context.Background()
	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()
	db := client.Database(cfg.MongoDatabase)
	logger.Info("connected to mongodb", "database", cfg.MongoDatabase)

	// Stores.
	apptStore := appointments.NewMongoStore(db.Collection(storage.CollAppointments))
	patientStore := patients.NewMongoStore(db.Collection(storage.CollPatients))
	doctorStore := doctors.NewMongoStore(db.Collection(storage.CollDoctors))
	equipmentStore := equipment.NewMongoStore(db.Collection(storage.CollEquipment))
	questionStore := questions.NewMongoStore(db.Collection(storage.CollQuestions))
	voucherStore := vouchers.NewMongoStore(db.Collection(storage.CollVouchers))
	adminStore := admin.NewMongoStore(db.Collection(storage.CollAdmins))

	// Side channels. Both degrade to no-ops when unconfigured.
	smsService := notify.NewService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	sheetService, err := sheets.NewService(ctx, cfg.SheetsClientEmail, cfg.SheetsPrivateKey, cfg.SheetsSpreadsheetID, logger)
	if err != nil {
		logger.Error("google sheets init failed", "error", err)
		os.Exit(1)
	}

	// Chatbot fallback chain.
	clinicInfo := clinic.DefaultInfo()
	knowledge := chatbot.NewKnowledgeBase(doctorStore, equipmentStore, clinicInfo, logger)
	var providers []chatbot.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := chatbot.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, knowledge, logger)
		if err != nil {
			logger.Warn("gemini provider disabled", "error", err)
		} else {
			defer gemini.Close()
			providers = append(providers, gemini)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		openaiProvider, err := chatbot.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModelID, knowledge, logger)
		if err != nil {
			logger.Warn("openai provider disabled", "error", err)
		} else {
			providers = append(providers, openaiProvider)
		}
	}
	resolver := chatbot.NewResolver(
		chatbot.NewDataResponder(doctorStore, equipmentStore, voucherStore, clinicInfo, logger),
		providers,
		chatbot.NewRuleResponder(clinicInfo),
		logger,
	)

	bookingService := appointments.NewService(apptStore, doctorStore, logger)
	adminTokens := admin.NewTokenIssuer(cfg.AdminJWTSecret)
	statsService := admin.NewStatsService(apptStore, patientStore, doctorStore, equipmentStore)
	analyticsService := analytics.NewService(apptStore)

	handlers := router.Handlers{
		Appointments: appointments.NewHandler(bookingService, apptStore, doctorStore, smsService, sheetService, logger),
		Patients:     patients.NewHandler(patientStore, apptStore, logger),
		Doctors:      doctors.NewHandler(doctorStore, cfg.DoctorPortalPassword, logger),
		Equipment:    equipment.NewHandler(equipmentStore, logger),
		Questions:    questions.NewHandler(questionStore, sheetService, logger),
		Vouchers:     vouchers.NewHandler(voucherStore, logger),
		Chatbot:      chatbot.NewHandler(resolver, logger),
		Admin:        admin.NewHandler(adminStore, adminTokens, statsService, apptStore, patientStore, logger),
		Analytics:    analytics.NewHandler(analyticsService, logger),
		AdminTokens:  adminTokens,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, handlers, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
