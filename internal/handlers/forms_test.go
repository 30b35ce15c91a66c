// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"khrm/internal/mailer"
	"khrm/internal/models"
)

// multipartRequest builds a multipart POST with fields and, when
// fileField is set, one file part.
func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		fw.Write(content)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var pdf = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func TestSubmitContact_Validation(t *testing.T) {
	env := newEnv(t, NewStores(nil))

	rec := httptest.NewRecorder()
	env.API.SubmitContact(rec, jsonRequest(t, http.MethodPost, "/api/contact", map[string]any{
		"email":        "bad",
		"inquiry_type": "spam",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fields := errorFields(t, rec)
	for _, f := range []string{"name", "email", "message", "inquiry_type"} {
		if fields[f] == "" {
			t.Errorf("missing %s error in %v", f, fields)
		}
	}
	if _, sent := env.Notifier.last(); sent {
		t.Error("invalid submission notified staff")
	}
}

func TestSubmitApplication_RequiresMultipart(t *testing.T) {
	env := newEnv(t, NewStores(nil))

	rec := httptest.NewRecorder()
	env.API.SubmitApplication(rec, jsonRequest(t, http.MethodPost, "/api/job-applications", map[string]string{}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitApplication_Validation(t *testing.T) {
	env := newEnv(t, NewStores(nil))

	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/job-applications", map[string]string{
		"first_name":          "Ram",
		"email":               "ram@",
		"years_of_experience": "many",
		"date_of_birth":       "01/02/1990",
	}, "", "", nil)
	env.API.SubmitApplication(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fields := errorFields(t, rec)
	for _, f := range []string{"job_id", "email", "phone", "resume", "years_of_experience", "date_of_birth"} {
		if fields[f] == "" {
			t.Errorf("missing %s error in %v", f, fields)
		}
	}
	if len(env.Files.puts) != 0 {
		t.Error("file stored for invalid application")
	}
}

func TestSubmitInquiry_JSONValidation(t *testing.T) {
	env := newEnv(t, NewStores(nil))

	rec := httptest.NewRecorder()
	env.API.SubmitInquiry(rec, jsonRequest(t, http.MethodPost, "/api/employer-inquiries", map[string]any{
		"company_name":      "Acme",
		"number_of_workers": 0,
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fields := errorFields(t, rec)
	for _, f := range []string{"contact_person", "email", "phone", "country", "required_positions", "number_of_workers"} {
		if fields[f] == "" {
			t.Errorf("missing %s error in %v", f, fields)
		}
	}
}

func TestAdminURL(t *testing.T) {
	env := newEnv(t, NewStores(nil))
	id := uuid.MustParse("2b9e6f0e-4c55-4b7b-9d0e-3c1f1b2a9e11")

	got := env.API.adminURL("applications", id)
	want := "https://khrm.test/admin/applications?id=" + id.String()
	if got != want {
		t.Errorf("adminURL = %q, want %q", got, want)
	}
}

// --- Integration ---

func seedIndustryAndJob(t *testing.T, env *testEnv, deadline *time.Time) *models.Job {
	t.Helper()
	ctx := t.Context()

	ind, err := env.Stores.Industries.Create(ctx, &models.Industry{Name: "Test Welding " + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("create industry: %v", err)
	}
	t.Cleanup(func() { env.Stores.Industries.Delete(context.Background(), ind.ID) })

	job, err := env.Stores.Jobs.Create(ctx, &models.Job{
		Title:               "Test Welder",
		IndustryID:          ind.ID,
		Country:             "Testland",
		Description:         "Welding.",
		Vacancies:           3,
		Status:              models.JobOpen,
		ApplicationDeadline: deadline,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM job_applications WHERE job_id = $1", job.ID)
		env.Stores.Jobs.Delete(context.Background(), job.ID)
	})
	return job
}

func applicationFields(jobID uuid.UUID) map[string]string {
	return map[string]string{
		"job_id":              jobID.String(),
		"first_name":          "Sita",
		"last_name":           "Rai",
		"email":               "Sita.Rai@Example.com",
		"phone":               "+977 1 555 0100",
		"years_of_experience": "4",
		"previous_experience": "TIG welding in Doha.",
		"date_of_birth":       "1994-03-12",
	}
}

func TestSubmitApplication_Flow(t *testing.T) {
	env := newTestEnv(t)
	job := seedIndustryAndJob(t, env, nil)

	rec := httptest.NewRecorder()
	env.API.SubmitApplication(rec, multipartRequest(t, "/api/job-applications",
		applicationFields(job.ID), "resume", "cv.pdf", pdf))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)

	app, err := env.Stores.Applications.FindByID(t.Context(), resp.ID)
	if err != nil || app == nil {
		t.Fatalf("application not stored: %v", err)
	}
	if app.Email != "sita.rai@example.com" {
		t.Errorf("email = %q, want lowercased", app.Email)
	}
	if app.Status != models.ApplicationSubmitted {
		t.Errorf("status = %q, want submitted", app.Status)
	}
	if _, ok := env.Files.puts[app.ResumeKey]; !ok {
		t.Errorf("resume key %q not uploaded", app.ResumeKey)
	}

	n, ok := env.Notifier.last()
	if !ok {
		t.Fatal("no notification queued")
	}
	if n.Kind != mailer.KindApplication || n.Title != job.Title || n.ReplyTo != app.Email {
		t.Errorf("notification = %+v", n)
	}
	if n.AdminURL != "https://khrm.test/admin/applications?id="+app.ID.String() {
		t.Errorf("admin url = %q", n.AdminURL)
	}
}

func TestSubmitApplication_ClosedJob(t *testing.T) {
	env := newTestEnv(t)
	yesterday := time.Now().UTC().AddDate(0, 0, -2)
	job := seedIndustryAndJob(t, env, &yesterday)

	rec := httptest.NewRecorder()
	env.API.SubmitApplication(rec, multipartRequest(t, "/api/job-applications",
		applicationFields(job.ID), "resume", "cv.pdf", pdf))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if errorFields(t, rec)["job_id"] == "" {
		t.Error("missing job_id error")
	}
	if len(env.Files.puts) != 0 {
		t.Error("resume stored for a closed job")
	}
}

func TestSubmitApplication_StorageDisabled(t *testing.T) {
	env := newTestEnv(t)
	job := seedIndustryAndJob(t, env, nil)
	env.API.files = nil

	rec := httptest.NewRecorder()
	env.API.SubmitApplication(rec, multipartRequest(t, "/api/job-applications",
		applicationFields(job.ID), "resume", "cv.pdf", pdf))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSubmitInquiry_MultipartWithDemandLetter(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.API.SubmitInquiry(rec, multipartRequest(t, "/api/employer-inquiries", map[string]string{
		"company_name":       "Test Gulf Builders",
		"contact_person":     "Omar",
		"email":              "omar@gulf.test",
		"phone":              "+971 4 000 0000",
		"country":            "UAE",
		"required_positions": "Masons",
		"number_of_workers":  "25",
	}, "demand_letter", "demand.pdf", pdf))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)
	t.Cleanup(func() { env.Stores.Inquiries.Delete(context.Background(), resp.ID) })

	q, err := env.Stores.Inquiries.FindByID(t.Context(), resp.ID)
	if err != nil || q == nil {
		t.Fatalf("inquiry not stored: %v", err)
	}
	if q.DemandLetterKey == "" || q.NumberOfWorkers != 25 || q.Status != models.InquiryNew {
		t.Errorf("inquiry = %+v", q)
	}
	if n, _ := env.Notifier.last(); n.Kind != mailer.KindInquiry {
		t.Errorf("notification kind = %q", n.Kind)
	}
}

func TestSubmitContact_Flow(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.API.SubmitContact(rec, jsonRequest(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Test Person",
		"email":   "person@example.com",
		"message": "Do you recruit for Japan?",
	}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)
	t.Cleanup(func() { env.Stores.Contacts.Delete(context.Background(), resp.ID) })

	m, err := env.Stores.Contacts.FindByID(t.Context(), resp.ID)
	if err != nil || m == nil {
		t.Fatalf("message not stored: %v", err)
	}
	if m.InquiryType != models.InquiryTypeGeneral || m.IsRead {
		t.Errorf("message = %+v", m)
	}
}
