package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"groupinvites/internal/delivery/http/helpers"
	"groupinvites/internal/domain"
)

type InviteController struct {
	Logger       *slog.Logger
	Gate         domain.AdmissionGate
	Issuer       domain.InviteIssuer
	RedirectURL  string
	GroupFullURL string
}

func NewInviteController(
	logger *slog.Logger,
	gate domain.AdmissionGate,
	issuer domain.InviteIssuer,
	redirectURL, groupFullURL string,
) *InviteController {
	return &InviteController{
		Logger:       logger,
		Gate:         gate,
		Issuer:       issuer,
		RedirectURL:  redirectURL,
		GroupFullURL: groupFullURL,
	}
}

// Health godoc
// @Summary Liveness check
// @Produce plain
// @Success 200 {string} string "Listening"
// @Router / [get]
func (c *InviteController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Listening")
}

// Redeem godoc
// @Summary Redeem an invite code
// @Description Validates the invite code and redirects to the signup page on success. Codes for full groups redirect to the configured group-full page.
// @Tags invites
// @Param inviteCode path string true "6-character alphanumeric invite code"
// @Success 302 "Redirect to signup or group-full page"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 504 {object} helpers.APIResponse "error.code: upstream_timeout"
// @Router /invite/{inviteCode} [get]
func (c *InviteController) Redeem(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("inviteCode")

	status, err := c.Gate.Validate(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryTimeout) {
			helpers.WriteJSONError(w, http.StatusGatewayTimeout, helpers.ErrCodeUpstreamTimeout, "directory request timed out")
			return
		}
		c.Logger.ErrorContext(r.Context(), "invite validation failed", "code", code, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}

	switch status {
	case domain.StatusValid:
		target := fmt.Sprintf("%s?code=%s", c.RedirectURL, url.QueryEscape(code))
		c.Logger.InfoContext(r.Context(), "invite code is valid, redirecting", "code", code, "url", target)
		http.Redirect(w, r, target, http.StatusFound)
	case domain.StatusInvitationNotFound:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
	case domain.StatusGroupNotFound:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "group not found")
	case domain.StatusGroupIsFull:
		c.Logger.InfoContext(r.Context(), "group is full, redirecting", "code", code)
		http.Redirect(w, r, c.GroupFullURL, http.StatusFound)
	default:
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
	}
}

// CreateInviteRequest is the request body for POST /invite. Exactly one of
// groupId or email must be set; inviteUsers accepts either an array of
// addresses or a single comma-separated string.
type CreateInviteRequest struct {
	GroupID     string            `json:"groupId"`
	Email       string            `json:"email"`
	InviteUsers domain.Recipients `json:"inviteUsers"`
}

// Create godoc
// @Summary Issue an invite link for a group
// @Description Returns the canonical invite link for the group, creating an invitation in the directory if none exists. When email is given instead of groupId, the user's first group is used.
// @Tags invites
// @Accept json
// @Produce plain
// @Security BearerAuth
// @Param request body controllers.CreateInviteRequest true "Target group or user email, optional invitees"
// @Success 200 {string} string "Invite link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 504 {object} helpers.APIResponse "error.code: upstream_timeout"
// @Router /invite [post]
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}
	if req.GroupID == "" && req.Email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing groupId")
		return
	}

	var (
		invite *domain.Invitation
		err    error
	)
	if req.GroupID != "" {
		invite, err = c.Issuer.IssueForGroup(r.Context(), req.GroupID)
	} else {
		invite, err = c.Issuer.IssueForEmail(r.Context(), req.Email)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrDirectoryTimeout):
			helpers.WriteJSONError(w, http.StatusGatewayTimeout, helpers.ErrCodeUpstreamTimeout, "directory request timed out")
		default:
			c.Logger.ErrorContext(r.Context(), "invite issuance failed", "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not create invite")
		}
		return
	}

	c.Logger.InfoContext(r.Context(), "invite issued", "code", invite.Code)
	if len(req.InviteUsers) > 0 {
		c.Issuer.AppendInvitees(r.Context(), invite, req.InviteUsers)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, c.Issuer.InviteLink(invite))
}
