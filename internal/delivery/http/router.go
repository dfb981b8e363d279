package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"groupinvites/internal/delivery/http/controllers"
	"groupinvites/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// authToken guards POST /invite; empty disables the check.
func NewRouter(inviteController *controllers.InviteController, authToken string) *http.ServeMux {
	mux := http.NewServeMux()
	requireToken := middleware.RequireToken(authToken)

	mux.HandleFunc("GET /{$}", inviteController.Health)
	mux.HandleFunc("GET /invite/{inviteCode}", inviteController.Redeem)
	mux.HandleFunc("POST /invite", requireToken(inviteController.Create))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
