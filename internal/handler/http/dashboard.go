package http

import (
	"fmt"
	"net/http"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/dashboard"
	"github.com/aarambh-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/sse"
	activityservice "github.com/aarambh-hq/attendance-backend-go/internal/service/activity"
	"github.com/go-chi/jwtauth/v5"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	Activities(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	activityService  activity.ActivityService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewDashboardHandler(
	dashboardService dashboard.DashboardService,
	activityService activity.ActivityService,
	jwtService jwt.Service,
	hub *sse.Hub,
) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		activityService:  activityService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

// Overview implements DashboardHandler.
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Activities implements DashboardHandler.
func (h *dashboardHandlerImpl) Activities(w http.ResponseWriter, r *http.Request) {
	result, err := h.activityService.ListRecent(r.Context(), 20)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamToken implements DashboardHandler. EventSource cannot send an
// Authorization header, so the stream uses a short-lived query token.
func (h *dashboardHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing access token")
		return
	}

	userID, _ := claims["user_id"].(string)
	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream implements DashboardHandler.
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Stream token is required")
		return
	}
	if _, err := h.jwtService.ValidateSSEToken(token); err != nil {
		response.Unauthorized(w, "Invalid or expired stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cleanup := h.hub.Subscribe(activityservice.TopicActivities)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, event.Data)
			flusher.Flush()
		}
	}
}
