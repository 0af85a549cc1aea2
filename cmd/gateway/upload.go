package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"internship-matcher/internal/app"
	"internship-matcher/internal/httputil"
	"internship-matcher/internal/queue"
	"internship-matcher/internal/skillspot"
)

const defaultProfileName = "Uploaded profile"

var allowedTypes = map[string]bool{
	"text/plain":      true,
	"application/pdf": true,
}

// uploadHandler creates a student profile from a resume by spotting known
// skill keywords, then queues a rescore so the recommendations are warm.
func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize
	spotter := skillspot.Default()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			switch strings.ToLower(filepath.Ext(header.Filename)) {
			case ".txt":
				contentType = "text/plain"
			case ".pdf":
				contentType = "application/pdf"
			}
		}
		if !allowedTypes[contentType] {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		text := extractText(deps, header.Filename, contentType, content)
		skills := spotter.Spot(text)

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			name = defaultProfileName
		}
		student, err := deps.Store.CreateStudent(ctx, name, skills)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to save profile", err, http.StatusInternalServerError)
			return
		}
		log := deps.Log.With("student_id", student.ID)
		deps.Recommend.StudentAdded(ctx, student.ID)

		queued := false
		if deps.Queue != nil {
			task, err := queue.NewRescoreTask(student.ID)
			if err == nil {
				err = queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond)
			}
			if err != nil {
				log.Warn("failed to enqueue rescore; recommendations will be computed on demand", "err", err)
			} else {
				queued = true
			}
		}

		log.Info("profile created from resume", "filename", header.Filename, "skills", len(skills), "queued", queued)
		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"student_id": student.ID,
			"name":       student.Name,
			"skills":     student.Skills,
			"queued":     queued,
		})
	}
}

// extractText returns the text of an upload; PDFs that fail to parse fall back to raw bytes.
func extractText(deps app.Deps, filename, contentType string, content []byte) string {
	if contentType != "application/pdf" {
		return string(content)
	}
	text, err := extractPDF(content)
	if err != nil {
		deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", filename)
		return string(content)
	}
	return text
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
