package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/domain/schedule"
	"dose-agil/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc))
		mr.Get("/", listMedicinesHandler(svc))

		mr.Get("/{medicineID}", getMedicineHandler(svc))
		mr.Patch("/{medicineID}", updateMedicineHandler(svc))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc))

		// Tomas e historial
		mr.Post("/{medicineID}/doses", takeDoseHandler(svc))
		mr.Get("/{medicineID}/history", listHistoryHandler(svc))

		mr.Get("/{medicineID}/reminders", listRemindersHandler(svc))
	})
}

type createMedicineRequest struct {
	Name string `json:"name"`

	// dosage libre ("500 mg") o dosage_value + dosage_unit
	Dosage      string `json:"dosage"`
	DosageValue string `json:"dosage_value"`
	DosageUnit  string `json:"dosage_unit"`

	TimesPerDay   int      `json:"times_per_day"`
	DurationDays  int      `json:"duration_days"`
	StartDate     string   `json:"start_date"` // YYYY-MM-DD
	ScheduleHours []string `json:"schedule_hours"`
}

type updateMedicineRequest struct {
	Name          *string   `json:"name"`
	Dosage        *string   `json:"dosage"`
	DosageValue   *string   `json:"dosage_value"`
	DosageUnit    *string   `json:"dosage_unit"`
	TimesPerDay   *int      `json:"times_per_day"`
	DurationDays  *int      `json:"duration_days"`
	StartDate     *string   `json:"start_date"`
	ScheduleHours *[]string `json:"schedule_hours"`
}

type takeDoseRequest struct {
	Hour string `json:"hour"` // HH:MM
}

type medicineResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Dosage        string    `json:"dosage"`
	TimesPerDay   int       `json:"times_per_day"`
	DurationDays  int       `json:"duration_days"`
	StartDate     string    `json:"start_date"`
	ScheduleHours []string  `json:"schedule_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type summaryResponse struct {
	medicineResponse
	Slots     []schedule.Slot `json:"slots"`
	NextDose  *time.Time      `json:"next_dose"`
	DueNow    bool            `json:"due_now"`
	Started   bool            `json:"started"`
	InCourse  bool            `json:"in_course"`
	Progress  int             `json:"progress"`
	CourseEnd string          `json:"course_end"`
}

type courseDayResponse struct {
	Date        string `json:"date"`
	StartingDay bool   `json:"starting_day"`
	EndingDay   bool   `json:"ending_day"`
}

type detailResponse struct {
	summaryResponse
	CourseDays []courseDayResponse `json:"course_days"`
	TakenToday []historyResponse   `json:"taken_today"`
}

type historyResponse struct {
	ID      string        `json:"id"`
	Date    string        `json:"date"`
	Hour    string        `json:"hour"`
	Status  HistoryStatus `json:"status"`
	TakenAt time.Time     `json:"taken_at"`
}

// createMedicineHandler godoc
// @Summary Crear medicamento
// @Description Crea un medicamento con su esquema de horarios y programa los avisos (5 min antes de cada toma). Los horarios se normalizan a `times_per_day` entradas únicas y ordenadas. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicineRequest true "Datos del medicamento; start_date en formato YYYY-MM-DD"
// @Success 201 {object} medicineResponse
// @Failure 400 {string} string "invalid json / horarios o dosis inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medicines [post]
func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var start time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := time.Parse(time.DateOnly, strings.TrimSpace(req.StartDate))
			if err != nil {
				http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			start = t
		}

		m, err := svc.Create(r.Context(), userID, CreateInput{
			Name:          req.Name,
			Dosage:        req.Dosage,
			DosageValue:   req.DosageValue,
			DosageUnit:    req.DosageUnit,
			TimesPerDay:   req.TimesPerDay,
			DurationDays:  req.DurationDays,
			StartDate:     start,
			ScheduleHours: req.ScheduleHours,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

// listMedicinesHandler godoc
// @Summary Listar medicamentos
// @Description Lista los medicamentos del usuario con el estado de cada toma de hoy, la próxima dosis y el progreso. Orden: tomas vencidas primero, luego tratamientos iniciados, luego próxima dosis ascendente.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Overview(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]summaryResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSummaryResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicineHandler godoc
// @Summary Detalle de medicamento
// @Description Devuelve el medicamento con sus horarios, el estado de hoy y los días del tratamiento (para marcar el calendario).
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {object} detailResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID} [get]
func getMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.Detail(r.Context(), userID, chi.URLParam(r, "medicineID"))
		if err != nil {
			writeError(w, err)
			return
		}

		resp := detailResponse{
			summaryResponse: toSummaryResponse(d.Summary),
			CourseDays:      make([]courseDayResponse, 0, len(d.CourseDays)),
			TakenToday:      toHistoryResponses(d.TakenToday),
		}
		for _, cd := range d.CourseDays {
			resp.CourseDays = append(resp.CourseDays, courseDayResponse{
				Date:        cd.Date.Format(time.DateOnly),
				StartingDay: cd.StartingDay,
				EndingDay:   cd.EndingDay,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// updateMedicineHandler godoc
// @Summary Editar medicamento
// @Description PATCH parcial: solo se modifican los campos enviados. Cambiar horarios o tomas diarias re-normaliza el esquema; los avisos pendientes se cancelan y se vuelven a programar.
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Param payload body updateMedicineRequest true "Campos a modificar"
// @Success 200 {object} medicineResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID} [patch]
func updateMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMedicineRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:          req.Name,
			Dosage:        req.Dosage,
			DosageValue:   req.DosageValue,
			DosageUnit:    req.DosageUnit,
			TimesPerDay:   req.TimesPerDay,
			DurationDays:  req.DurationDays,
			ScheduleHours: req.ScheduleHours,
		}
		if req.StartDate != nil {
			t, err := time.Parse(time.DateOnly, strings.TrimSpace(*req.StartDate))
			if err != nil {
				http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.StartDate = &t
		}

		m, err := svc.Update(r.Context(), userID, chi.URLParam(r, "medicineID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

// deleteMedicineHandler godoc
// @Summary Borrar medicamento
// @Description Cancela los avisos pendientes y borra el medicamento con sus horarios e historial.
// @Tags medicines
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Success 204 "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID} [delete]
func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), userID, chi.URLParam(r, "medicineID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// takeDoseHandler godoc
// @Summary Confirmar toma
// @Description Registra como tomada la dosis de hoy del horario indicado. Una sola vez por día y horario.
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Param payload body takeDoseRequest true "Horario HH:MM del esquema"
// @Success 201 {object} historyResponse
// @Failure 400 {string} string "invalid json / horario inválido o fuera del esquema"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 409 {string} string "dose already taken / treatment has not started"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID}/doses [post]
func takeDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req takeDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.TakeDose(r.Context(), userID, chi.URLParam(r, "medicineID"), req.Hour)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toHistoryResponse(e))
	}
}

// listHistoryHandler godoc
// @Summary Historial de tomas
// @Description Lista las tomas confirmadas del medicamento, opcionalmente de un solo día.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Param date query string false "Día YYYY-MM-DD"
// @Success 200 {array} historyResponse
// @Failure 400 {string} string "date inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID}/history [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var day *time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			t, err := time.Parse(time.DateOnly, v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = &t
		}

		items, err := svc.History(r.Context(), userID, chi.URLParam(r, "medicineID"), day)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHistoryResponses(items))
	}
}

// listRemindersHandler godoc
// @Summary Avisos de un medicamento
// @Description Lista las notificaciones programadas (pendientes, enviadas, canceladas) del medicamento.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {array} reminders.ReminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /medicines/{medicineID}/reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Reminders(r.Context(), userID, chi.URLParam(r, "medicineID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]reminders.ReminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, reminders.ToResponse(rem))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyTaken), errors.Is(err, ErrNotStarted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	hours := m.ScheduleHours
	if hours == nil {
		hours = []string{}
	}
	return medicineResponse{
		ID:            m.ID,
		Name:          m.Name,
		Dosage:        m.Dosage,
		TimesPerDay:   m.TimesPerDay,
		DurationDays:  m.DurationDays,
		StartDate:     m.StartDate.Format(time.DateOnly),
		ScheduleHours: hours,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toSummaryResponse(s Summary) summaryResponse {
	return summaryResponse{
		medicineResponse: toMedicineResponse(s.Medicine),
		Slots:            s.Slots,
		NextDose:         s.NextDose,
		DueNow:           s.DueNow,
		Started:          s.Started,
		InCourse:         s.InCourse,
		Progress:         s.Progress,
		CourseEnd:        s.CourseEnd.Format(time.DateOnly),
	}
}

func toHistoryResponse(e DoseHistoryEntry) historyResponse {
	return historyResponse{
		ID:      e.ID,
		Date:    e.Date.Format(time.DateOnly),
		Hour:    e.Hour,
		Status:  e.Status,
		TakenAt: e.TakenAt,
	}
}

func toHistoryResponses(items []DoseHistoryEntry) []historyResponse {
	out := make([]historyResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toHistoryResponse(e))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
