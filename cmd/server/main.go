package main

import (
	"net/http"
	"os"
	"time"

	"groupinvites/config"
	_ "groupinvites/docs"
	"groupinvites/internal/adapters/directory"
	"groupinvites/internal/adapters/email"
	deliveryhttp "groupinvites/internal/delivery/http"
	"groupinvites/internal/delivery/http/controllers"
	"groupinvites/internal/delivery/http/middleware"
	"groupinvites/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	directoryClient := directory.NewHTTPClient(
		&http.Client{Timeout: cfg.DirectoryTimeout + time.Second},
		cfg.DirectoryAPIURL,
		cfg.DirectoryAPIToken,
		cfg.DirectoryTimeout,
	)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	notifier := services.NewInviteNotifier(mailer, email.NewTemplateRenderer())

	gate := services.NewAdmissionGate(directoryClient, cfg.MaxUsersPerGroup)
	issuer := services.NewInviteIssuer(directoryClient, notifier, logger, cfg.BaseURL, cfg.DefaultRoleID)

	inviteController := controllers.NewInviteController(logger, gate, issuer, cfg.RedirectURL, cfg.GroupFullURL)

	mux := deliveryhttp.NewRouter(inviteController, cfg.AuthToken)
	handler := middleware.RequestIDMiddleware(middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "base_url", cfg.BaseURL, "env", cfg.Environment)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
