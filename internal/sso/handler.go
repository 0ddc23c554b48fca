package sso

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mssola/useragent"

	"prequal/pkg/platform/httputil"
	"prequal/pkg/requestcontext"
)

// Handler exposes the SSO exchange endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the SSO endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ck/sso/exchange", h.HandleExchange)
}

// HandleExchange handles POST /ck/sso/exchange requests.
func (h *Handler) HandleExchange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ExchangeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Exchange(ctx, req, DeviceFromUserAgent(requestcontext.UserAgent(ctx)))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

// DeviceFromUserAgent parses the raw User-Agent header into session device
// metadata. An empty header yields the zero value.
func DeviceFromUserAgent(raw string) DeviceInfo {
	if raw == "" {
		return DeviceInfo{}
	}
	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	return DeviceInfo{
		Platform: ua.Platform(),
		OS:       ua.OS(),
		Browser:  browser,
		Mobile:   ua.Mobile(),
		Bot:      ua.Bot(),
	}
}
