// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"khrm/internal/mailer"
	"khrm/internal/models"
	"khrm/internal/respond"
	"khrm/internal/storage"
)

// maxMultipartMemory is held in memory before multipart parts spill to disk.
const maxMultipartMemory = 8 << 20

const dateLayout = "2006-01-02"

// SubmitApplication accepts a candidate's application. The request is
// multipart with a required "resume" file part.
func (a *API) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Expected a multipart form.", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fe := respond.FieldErrors{}
	app := &models.JobApplication{
		FirstName:          formValue(r, "first_name"),
		LastName:           formValue(r, "last_name"),
		Email:              strings.ToLower(formValue(r, "email")),
		Phone:              formValue(r, "phone"),
		Nationality:        formValue(r, "nationality"),
		CurrentLocation:    formValue(r, "current_location"),
		PreviousExperience: formValue(r, "previous_experience"),
		Skills:             formValue(r, "skills"),
	}
	if id, err := uuid.Parse(formValue(r, "job_id")); err == nil {
		app.JobID = id
	}
	if v := formValue(r, "years_of_experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fe.Add("years_of_experience", "Must be a whole number.")
		}
		app.YearsOfExperience = n
	}
	app.DateOfBirth = formDate(r, "date_of_birth", fe)

	for field, msg := range fieldErrors(app) {
		fe.Add(field, msg)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		fe.Add("resume", "A resume is required.")
	} else {
		defer file.Close()
	}
	if len(fe) > 0 {
		respond.Invalid(w, r, fe)
		return
	}

	ctx := r.Context()
	job, err := a.stores.Jobs.FindByID(ctx, app.JobID)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	if job == nil || !job.AcceptsApplications(a.now()) {
		respond.Invalid(w, r, respond.FieldErrors{"job_id": "This job is not accepting applications."})
		return
	}

	stored, err := a.upload(ctx, storage.Resume, file, header)
	if err != nil {
		storeError(w, r, err)
		return
	}
	app.ResumeKey = stored.Key

	created, err := a.stores.Applications.Create(ctx, app)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	a.notify(ctx, mailer.Notification{
		Kind:    mailer.KindApplication,
		Title:   job.Title,
		ReplyTo: created.Email,
		Fields: map[string]string{
			"Name":        created.FullName(),
			"Email":       created.Email,
			"Phone":       created.Phone,
			"Nationality": created.Nationality,
			"Experience":  strconv.Itoa(created.YearsOfExperience) + " years",
		},
		Message:  created.PreviousExperience,
		AdminURL: a.adminURL("applications", created.ID),
	})

	respond.JSON(w, r, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "Application received. We will contact you soon.",
	})
}

// SubmitInquiry accepts an employer's manpower request, either as JSON
// or as a multipart form with an optional "demand_letter" file part.
func (a *API) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	q := &models.EmployerInquiry{}
	fe := respond.FieldErrors{}

	var (
		file   multipart.File
		header *multipart.FileHeader
	)
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "Expected a multipart form.", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		q.CompanyName = formValue(r, "company_name")
		q.ContactPerson = formValue(r, "contact_person")
		q.Email = formValue(r, "email")
		q.Phone = formValue(r, "phone")
		q.Country = formValue(r, "country")
		q.RequiredPositions = formValue(r, "required_positions")
		q.JobDescription = formValue(r, "job_description")
		q.ContractDuration = formValue(r, "contract_duration")
		if v := formValue(r, "number_of_workers"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				fe.Add("number_of_workers", "Must be a whole number.")
			}
			q.NumberOfWorkers = n
		}
		if v := formValue(r, "industry_id"); v != "" {
			if id, err := uuid.Parse(v); err == nil {
				q.IndustryID = &id
			} else {
				fe.Add("industry_id", "Unknown industry.")
			}
		}
		q.ExpectedStartDate = formDate(r, "expected_start_date", fe)

		var err error
		file, header, err = r.FormFile("demand_letter")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			fe.Add("demand_letter", "Could not read the uploaded file.")
		}
		if file != nil {
			defer file.Close()
		}
	} else if !decodeJSON(w, r, q) {
		return
	}
	q.Email = strings.ToLower(strings.TrimSpace(q.Email))

	for field, msg := range fieldErrors(q) {
		fe.Add(field, msg)
	}
	if len(fe) > 0 {
		respond.Invalid(w, r, fe)
		return
	}

	ctx := r.Context()
	if q.IndustryID != nil {
		ind, err := a.stores.Industries.FindByID(ctx, *q.IndustryID)
		if err != nil {
			respond.Internal(w, r, err)
			return
		}
		if ind == nil {
			respond.Invalid(w, r, respond.FieldErrors{"industry_id": "Unknown industry."})
			return
		}
	}

	if file != nil {
		stored, err := a.upload(ctx, storage.DemandLetter, file, header)
		if err != nil {
			storeError(w, r, err)
			return
		}
		q.DemandLetterKey = stored.Key
	}

	created, err := a.stores.Inquiries.Create(ctx, q)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	a.notify(ctx, mailer.Notification{
		Kind:    mailer.KindInquiry,
		Title:   created.CompanyName,
		ReplyTo: created.Email,
		Fields: map[string]string{
			"Contact":   created.ContactPerson,
			"Email":     created.Email,
			"Phone":     created.Phone,
			"Country":   created.Country,
			"Positions": created.RequiredPositions,
			"Workers":   strconv.Itoa(created.NumberOfWorkers),
		},
		Message:  created.JobDescription,
		AdminURL: a.adminURL("inquiries", created.ID),
	})

	respond.JSON(w, r, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "Thank you. Our team will get back to you shortly.",
	})
}

// SubmitContact accepts a message from the public contact form.
func (a *API) SubmitContact(w http.ResponseWriter, r *http.Request) {
	m := &models.ContactMessage{}
	if !decodeJSON(w, r, m) {
		return
	}
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if m.InquiryType == "" {
		m.InquiryType = models.InquiryTypeGeneral
	}

	fe := respond.FieldErrors{}
	for field, msg := range fieldErrors(m) {
		fe.Add(field, msg)
	}
	if !m.InquiryType.Valid() {
		fe.Add("inquiry_type", "Unknown inquiry type.")
	}
	if len(fe) > 0 {
		respond.Invalid(w, r, fe)
		return
	}

	ctx := r.Context()
	created, err := a.stores.Contacts.Create(ctx, m)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	a.notify(ctx, mailer.Notification{
		Kind:    mailer.KindContact,
		Title:   created.Name,
		ReplyTo: created.Email,
		Fields: map[string]string{
			"Email":   created.Email,
			"Phone":   created.Phone,
			"Company": created.Company,
			"Type":    string(created.InquiryType),
		},
		Message:  created.Message,
		AdminURL: a.adminURL("contacts", created.ID),
	})

	respond.JSON(w, r, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "Message sent.",
	})
}

// upload hands a multipart file to the file store.
func (a *API) upload(ctx context.Context, kind storage.Kind, f multipart.File, h *multipart.FileHeader) (*storage.Stored, error) {
	if a.files == nil {
		return nil, storage.ErrDisabled
	}
	return a.files.Put(ctx, kind, h.Filename, f, h.Size)
}

// notify queues a staff notification. Submissions are already stored, so
// a missing notifier only loses the email.
func (a *API) notify(ctx context.Context, n mailer.Notification) {
	if a.notifier == nil {
		slog.DebugContext(ctx, "notification dropped, no notifier", "kind", n.Kind)
		return
	}
	a.notifier.Notify(ctx, n)
}

func (a *API) adminURL(path string, id uuid.UUID) string {
	return a.baseURL + "/admin/" + path + "?id=" + id.String()
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formDate parses an optional YYYY-MM-DD form field.
func formDate(r *http.Request, name string, fe respond.FieldErrors) *time.Time {
	v := formValue(r, name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		fe.Add(name, "Use the format YYYY-MM-DD.")
		return nil
	}
	return &t
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
