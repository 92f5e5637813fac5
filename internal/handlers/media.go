// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"physiocms/internal/imaging"
	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/store"
)

const (
	// maxUploadSize is the largest accepted upload (20 MiB).
	maxUploadSize = 20 << 20

	maxFolderNameLen = 100
	maxAltTextLen    = 300

	defaultMediaLimit = 60
	maxMediaLimit     = 200

	msgNoStorage = "Der Objektspeicher ist nicht konfiguriert."
)

// allowedMediaTypes lists the sniffed content types accepted for upload,
// with the file extension used for the storage key.
var allowedMediaTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
	{"image/svg+xml", ".svg"},
	{"application/pdf", ".pdf"},
	{"video/mp4", ".mp4"},
	{"video/webm", ".webm"},
}

// thumbableTypes get a JPEG thumbnail. GIF is excluded to preserve
// animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ObjectStorage is the part of the S3 client used by the media library.
type ObjectStorage interface {
	Bucket() string
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}

// Media serves the media library: folders and assets.
type Media struct {
	folders *store.MediaFolderStore
	assets  *store.MediaStore
	storage ObjectStorage
	now     func() time.Time
}

// NewMedia creates the Media handler group. storage may be nil when no
// object storage is configured; uploads then answer 503.
func NewMedia(folders *store.MediaFolderStore, assets *store.MediaStore, storage ObjectStorage) *Media {
	return &Media{folders: folders, assets: assets, storage: storage, now: time.Now}
}

type folderInput struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
}

func (in *folderInput) validate() (string, bool) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "Der Ordnername ist erforderlich.", false
	}
	if utf8.RuneCountInString(in.Name) > maxFolderNameLen {
		return fmt.Sprintf("Der Ordnername darf höchstens %d Zeichen lang sein.", maxFolderNameLen), false
	}
	return "", true
}

// ListFolders returns every folder; the client builds the tree.
func (h *Media) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.List(r.Context())
	if err != nil {
		serverError(w, r, "list folders failed", err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// CreateFolder creates a folder, optionally below a parent.
func (h *Media) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var in folderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg, ok := in.validate(); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	folder, err := h.folders.Create(r.Context(), in.Name, in.ParentID)
	if err != nil {
		storeError(w, r, err, "Ein Ordner mit diesem Namen existiert hier bereits.")
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// UpdateFolder renames or moves a folder. Moving a folder below itself
// is rejected.
func (h *Media) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in folderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg, ok := in.validate(); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	folder, err := h.folders.Update(r.Context(), id, in.Name, in.ParentID)
	if err != nil {
		storeError(w, r, err, "Ein Ordner mit diesem Namen existiert hier bereits.")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// DeleteFolder removes an empty folder.
func (h *Media) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.folders.Delete(r.Context(), id); err != nil {
		storeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns assets newest first. ?folder= takes a folder ID or "root"
// for unfiled assets; ?limit= and ?offset= paginate.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter store.MediaFilter
	switch folder := q.Get("folder"); folder {
	case "":
	case "root":
		filter.RootOnly = true
	default:
		id, err := uuid.Parse(folder)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		filter.FolderID = &id
	}

	limit := intParam(q.Get("limit"), defaultMediaLimit)
	limit = min(max(limit, 1), maxMediaLimit)
	offset := max(intParam(q.Get("offset"), 0), 0)

	items, err := h.assets.List(r.Context(), filter, limit, offset)
	if err != nil {
		serverError(w, r, "list media failed", err)
		return
	}
	for i := range items {
		h.fillURLs(&items[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// Upload stores a multipart file (field "file") in object storage and
// records its metadata. Optional fields: alt_text, folder_id.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, msgNoStorage)
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}

	// Leave room for the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+64<<10)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Die Datei ist zu groß. Maximal 20 MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Ungültiger Upload.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Keine Datei übermittelt.")
		return
	}
	defer file.Close()
	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Die Datei ist zu groß. Maximal 20 MB.")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		serverError(w, r, "read upload failed", err)
		return
	}
	if len(data) > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Die Datei ist zu groß. Maximal 20 MB.")
		return
	}

	contentType, ext, ok := sniff(data)
	if !ok {
		writeError(w, http.StatusBadRequest, "Dieser Dateityp ist nicht erlaubt.")
		return
	}

	var folderID *uuid.UUID
	if raw := r.FormValue("folder_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		folderID = &id
	}
	altText, ok := optionalText(r.FormValue("alt_text"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Der Alternativtext darf höchstens %d Zeichen lang sein.", maxAltTextLen))
		return
	}

	asset := &models.MediaAsset{
		FolderID:     folderID,
		OriginalName: filepath.Base(header.Filename),
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
		Bucket:       h.storage.Bucket(),
		AltText:      altText,
		UploaderID:   sess.UserID,
	}

	now := h.now()
	fileID := uuid.New().String()
	asset.Filename = fileID + ext
	asset.S3Key = fmt.Sprintf("media/%d/%02d/%s", now.Year(), now.Month(), asset.Filename)

	var thumb []byte
	if asset.IsRaster() {
		info, err := imaging.Probe(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Das Bild kann nicht gelesen werden.")
			return
		}
		asset.Width, asset.Height = &info.Width, &info.Height

		if thumbableTypes[contentType] {
			thumb, err = imaging.Thumbnail(data, imaging.ThumbWidth)
			if err != nil {
				slog.Warn("thumbnail generation failed", "error", err, "key", asset.S3Key)
			}
		}
	}

	ctx := r.Context()
	if err := h.storage.Upload(ctx, asset.S3Key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		serverError(w, r, "s3 upload failed", err)
		return
	}
	if thumb != nil {
		key := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
		if err := h.storage.Upload(ctx, key, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
			slog.Warn("thumbnail upload failed", "error", err, "key", key)
		} else {
			asset.ThumbS3Key = &key
		}
	}

	created, err := h.assets.Create(ctx, asset)
	if err != nil {
		h.removeObjects(ctx, asset)
		storeError(w, r, err, "")
		return
	}
	h.fillURLs(created)
	writeJSON(w, http.StatusCreated, created)
}

type mediaUpdateInput struct {
	AltText  *string    `json:"alt_text"`
	FolderID *uuid.UUID `json:"folder_id"`
}

// Update sets alt text and folder of an asset. A null folder_id moves the
// asset to the root.
func (h *Media) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in mediaUpdateInput
	if !decodeJSON(w, r, &in) {
		return
	}
	var altText *string
	if in.AltText != nil {
		altText, ok = optionalText(*in.AltText)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Der Alternativtext darf höchstens %d Zeichen lang sein.", maxAltTextLen))
			return
		}
	}

	asset, err := h.assets.Update(r.Context(), id, altText, in.FolderID)
	if err != nil {
		storeError(w, r, err, "")
		return
	}
	h.fillURLs(asset)
	writeJSON(w, http.StatusOK, asset)
}

// Delete removes the asset record and its objects in storage.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.assets.Delete(r.Context(), id)
	if err != nil {
		serverError(w, r, "media delete failed", err)
		return
	}
	if deleted == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.removeObjects(r.Context(), deleted)
	w.WriteHeader(http.StatusNoContent)
}

// removeObjects deletes the original and thumbnail. Failures are logged
// and otherwise ignored.
func (h *Media) removeObjects(ctx context.Context, m *models.MediaAsset) {
	if h.storage == nil {
		slog.Warn("media objects left in storage: storage not configured", "key", m.S3Key)
		return
	}
	if err := h.storage.Delete(ctx, m.S3Key); err != nil {
		slog.Warn("s3 original delete failed", "error", err, "key", m.S3Key)
	}
	if m.ThumbS3Key != nil {
		if err := h.storage.Delete(ctx, *m.ThumbS3Key); err != nil {
			slog.Warn("s3 thumbnail delete failed", "error", err, "key", *m.ThumbS3Key)
		}
	}
}

func (h *Media) fillURLs(m *models.MediaAsset) {
	if h.storage == nil {
		return
	}
	m.URL = h.storage.FileURL(m.S3Key)
	if m.ThumbS3Key != nil {
		m.ThumbURL = h.storage.FileURL(*m.ThumbS3Key)
	}
}

// sniff detects the content type of data and checks it against the
// allow-list. The client-supplied type is never trusted.
func sniff(data []byte) (contentType, ext string, ok bool) {
	detected := mimetype.Detect(data)
	for _, t := range allowedMediaTypes {
		if detected.Is(t.mime) {
			return t.mime, t.ext, true
		}
	}
	return "", "", false
}

// optionalText trims s. Blank becomes nil; over-long text is rejected.
func optionalText(s string) (*string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if utf8.RuneCountInString(s) > maxAltTextLen {
		return nil, false
	}
	return &s, true
}

func intParam(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
