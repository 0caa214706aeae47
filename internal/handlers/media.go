// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"folioadmin/internal/imaging"
)

const (
	// maxUploadSize is the maximum accepted image upload (10 MB).
	maxUploadSize = 10 << 20

	defaultImageField = "image_url"
)

// fieldName restricts the ?field= parameter to plain form field names; it
// ends up in element ids.
var fieldName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,40}$`)

// MediaUpload stores an image picked in one of the image URL fields and
// answers with that field re-rendered around the public URL. Errors are
// rendered inside the field too, so the response is always 200.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !fieldName.MatchString(field) {
		field = defaultImageField
	}
	label := r.URL.Query().Get("label")
	if label == "" {
		label = "Image URL"
	}

	fieldData := func(value, errMsg string) map[string]any {
		return map[string]any{
			"Name":    field,
			"Label":   label,
			"Value":   value,
			"Uploads": a.uploads != nil,
			"Error":   errMsg,
		}
	}

	if a.uploads == nil {
		a.renderer.Partial(w, "image_field", fieldData(r.FormValue(field), "Image uploads are not configured."))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		a.renderer.Partial(w, "image_field", fieldData("", "File too large. Maximum size is 10 MB."))
		return
	}
	previous := r.FormValue(field)

	file, _, err := r.FormFile("file")
	if err != nil {
		a.renderer.Partial(w, "image_field", fieldData(previous, "No file provided."))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.renderer.Partial(w, "image_field", fieldData(previous, "Failed to read file."))
		return
	}

	img, err := imaging.Prepare(data, imaging.MaxWidth)
	if err != nil {
		msg := "The image could not be processed."
		if errors.Is(err, imaging.ErrUnsupported) {
			msg = "Only JPEG, PNG, GIF and WebP images can be uploaded."
		}
		slog.Warn("image prepare failed", "error", err)
		a.renderer.Partial(w, "image_field", fieldData(previous, msg))
		return
	}

	key := uploadKey(time.Now(), img.Ext)
	if err := a.uploads.Upload(r.Context(), key, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data))); err != nil {
		slog.Error("image upload failed", "error", err, "key", key)
		a.renderer.Partial(w, "image_field", fieldData(previous, "Failed to upload the image."))
		return
	}

	slog.Info("image uploaded", "key", key, "width", img.Width, "height", img.Height, "resized", img.Resized)
	a.renderer.Partial(w, "image_field", fieldData(a.uploads.FileURL(key), ""))
}

// uploadKey returns uploads/YYYY/MM/<uuid><ext>.
func uploadKey(now time.Time, ext string) string {
	return fmt.Sprintf("uploads/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext)
}
