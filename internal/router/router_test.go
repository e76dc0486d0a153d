package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dose-agil/internal/platform/metrics"
	"dose-agil/internal/router"
)

func TestHTTP_EndToEnd_MedicineFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Location: time.UTC}))
	defer ts.Close()

	ownerID := "user-1"
	otherID := "user-2"
	today := time.Now().UTC().Format(time.DateOnly)

	// 1) Crea medicamento con horarios desordenados
	medID := createMedicine(t, ts.URL, ownerID, map[string]any{
		"name":           "Amoxicilina",
		"dosage_value":   "500",
		"dosage_unit":    "mg",
		"duration_days":  7,
		"start_date":     today,
		"schedule_hours": []string{"20:00", "08:00"},
	})

	// 2) Aparece en el listado con horarios ordenados
	{
		st, body := doReq(t, ts.URL, "GET", "/medicines", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var out []struct {
			ID            string   `json:"id"`
			Dosage        string   `json:"dosage"`
			ScheduleHours []string `json:"schedule_hours"`
			Started       bool     `json:"started"`
			Slots         []struct {
				Hour string `json:"hour"`
			} `json:"slots"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("unmarshal list: %v", err)
		}
		if len(out) != 1 || out[0].ID != medID {
			t.Fatalf("expected only %s in list, got %s", medID, string(body))
		}
		if out[0].Dosage != "500 mg" {
			t.Fatalf("expected dosage '500 mg', got %q", out[0].Dosage)
		}
		if strings.Join(out[0].ScheduleHours, ",") != "08:00,20:00" {
			t.Fatalf("expected sorted hours, got %v", out[0].ScheduleHours)
		}
		if !out[0].Started || len(out[0].Slots) != 2 {
			t.Fatalf("expected started medicine with 2 slots, got %s", string(body))
		}
	}

	// 3) Otro usuario no lo ve
	{
		st, _ := doReq(t, ts.URL, "GET", "/medicines/"+medID, otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign user, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/medicines", otherID, nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty list for other user, got %d body=%s", st, string(body))
		}
	}

	// 4) Confirma toma; repetirla es conflicto
	{
		st, body := doReq(t, ts.URL, "POST", "/medicines/"+medID+"/doses", ownerID, map[string]any{"hour": "08:00"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 take dose, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "POST", "/medicines/"+medID+"/doses", ownerID, map[string]any{"hour": "08:00"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on repeated dose, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "POST", "/medicines/"+medID+"/doses", ownerID, map[string]any{"hour": "13:00"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for hour outside schedule, got %d", st)
		}
	}

	// 5) Historial del día
	{
		st, body := doReq(t, ts.URL, "GET", "/medicines/"+medID+"/history?date="+today, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var out []struct {
			Hour   string `json:"hour"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("unmarshal history: %v", err)
		}
		if len(out) != 1 || out[0].Hour != "08:00" || out[0].Status != "taken" {
			t.Fatalf("unexpected history: %s", string(body))
		}
	}

	// 6) Hay un aviso pendiente por horario
	var reminderID string
	{
		st, body := doReq(t, ts.URL, "GET", "/medicines/"+medID+"/reminders", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
		}
		var out []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Title  string `json:"title"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("unmarshal reminders: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 reminders, got %s", string(body))
		}
		for _, rem := range out {
			if rem.Status != "pending" || rem.Title != "Hora do remédio: Amoxicilina" {
				t.Fatalf("unexpected reminder: %+v", rem)
			}
		}
		reminderID = out[0].ID
	}

	// 7) Cancelar aviso ajeno => 404, propio => 204
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/reminders/"+reminderID, otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 canceling foreign reminder, got %d", st)
		}
		st, body := doReq(t, ts.URL, "DELETE", "/reminders/"+reminderID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 cancel reminder, got %d body=%s", st, string(body))
		}
	}

	// 8) Borrar
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/medicines/"+medID, otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting foreign medicine, got %d", st)
		}
		st, body := doReq(t, ts.URL, "DELETE", "/medicines/"+medID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/medicines/"+medID, ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_RequiresUser(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{"/medicines", "/me"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without user, got %d", path, st)
		}
	}
}

func TestHTTP_CreateMedicine_RejectsBadInput(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []map[string]any{
		{"name": "", "dosage": "1", "start_date": "2026-01-01", "schedule_hours": []string{"08:00"}},
		{"name": "X", "dosage": "1", "start_date": "01/01/2026", "schedule_hours": []string{"08:00"}},
		{"name": "X", "dosage": "1", "start_date": "2026-01-01", "schedule_hours": []string{"8h"}},
		{"name": "X", "dosage": "1", "start_date": "2026-01-01", "schedule_hours": []string{"08:00", "08:00"}},
		{"name": "X", "dosage_value": "1", "dosage_unit": "litro", "start_date": "2026-01-01", "schedule_hours": []string{"08:00"}},
	}
	for i, payload := range cases {
		st, body := doReq(t, ts.URL, "POST", "/medicines", "user-1", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d body=%s", i, st, string(body))
		}
	}
}

func TestHTTP_ProfileAndDevices(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "PATCH", "/me", "user-1", map[string]any{"name": "Ana", "email": "ana@example.com"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch profile, got %d body=%s", st, string(body))
	}
	st, body = doReq(t, ts.URL, "GET", "/me", "user-1", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"name":"Ana"`) {
		t.Fatalf("expected saved profile, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "PATCH", "/me", "user-1", map[string]any{"email": "not-an-email"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid email, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/me/devices", "user-1", map[string]any{"token": "ExponentPushToken[abc]", "platform": "android"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register device, got %d body=%s", st, string(body))
	}
	st, _ = doReq(t, ts.URL, "POST", "/me/devices", "user-1", map[string]any{"token": "x", "platform": "symbian"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown platform, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	m := metrics.New()
	ts := httptest.NewServer(router.NewRouter(router.Options{Metrics: m}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), `route="/health"`) {
		t.Fatalf("expected /health in request metrics, got %s", string(body))
	}
}

func TestHTTP_RequestIDHeader(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medicines", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal create medicine: %v", err)
	}
	if out.ID == "" {
		t.Fatalf("expected id in create medicine response")
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
