// Package testutils provides shared helpers for handler tests: request
// builders for the Fiber app and a quiet logger.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/gofiber/fiber/v2"
)

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MakeRequest runs a JSON request against the app and returns the
// response.
func MakeRequest(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, 1000000)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// MakeUploadRequest posts a multipart form with one file part named
// "file" plus the given extra form values, and returns the response.
func MakeUploadRequest(
	app *fiber.App,
	path, filename, contentType string,
	content []byte,
	fields map[string]string,
) *http.Response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		panic(err)
	}
	if _, err := part.Write(content); err != nil {
		panic(err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, 1000000)
	if err != nil {
		panic(err)
	}
	return resp
}
