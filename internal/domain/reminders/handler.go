package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dose-agil/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Delete("/reminders/{reminderID}", cancelReminderHandler(svc))
	r.Post("/me/devices", registerDeviceHandler(svc))
}

// ReminderResponse es la vista pública de un aviso programado.
type ReminderResponse struct {
	ID         string     `json:"id"`
	MedicineID string     `json:"medicine_id"`
	Hour       string     `json:"hour"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	TriggerAt  time.Time  `json:"trigger_at"`
	Until      string     `json:"until"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}

type registerDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"` // ios | android | web
}

type deviceResponse struct {
	Token     string    `json:"token"`
	Platform  Platform  `json:"platform"`
	UpdatedAt time.Time `json:"updated_at"`
}

// cancelReminderHandler godoc
// @Summary Cancelar un aviso programado
// @Description Cancela una notificación pendiente del usuario. Si ya fue enviada o cancelada no hace nada. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags reminders
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del aviso (notification id)"
// @Success 204 "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Failure 500 {string} string "internal error"
// @Router /reminders/{reminderID} [delete]
func cancelReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Cancel(r.Context(), userID, chi.URLParam(r, "reminderID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "reminder not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// registerDeviceHandler godoc
// @Summary Registrar push token
// @Description Guarda el token Expo del dispositivo actual para recibir avisos.
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body registerDeviceRequest true "Token y plataforma"
// @Success 201 {object} deviceResponse
// @Failure 400 {string} string "invalid json / token o plataforma inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/devices [post]
func registerDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		platform := Platform(strings.ToLower(strings.TrimSpace(req.Platform)))
		d, err := svc.RegisterDevice(r.Context(), userID, req.Token, platform)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, deviceResponse{
			Token:     d.Token,
			Platform:  d.Platform,
			UpdatedAt: d.UpdatedAt,
		})
	}
}

func ToResponse(rem Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         rem.ID,
		MedicineID: rem.MedicineID,
		Hour:       rem.Hour,
		Title:      rem.Title,
		Body:       rem.Body,
		TriggerAt:  rem.TriggerAt,
		Until:      rem.Until.Format(time.DateOnly),
		Status:     rem.Status,
		CreatedAt:  rem.CreatedAt,
		SentAt:     rem.SentAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
