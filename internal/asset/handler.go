// Package asset stores avatar images referenced by a component's src prop.
package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tweakcn/tweakcn/backend-go/internal/typeid"
)

const (
	maxUploadSize = 5 << 20
	// maxDimension bounds either side of an uploaded image.
	maxDimension = 2048
)

var (
	ErrUnsupported = errors.New("only PNG and JPEG images are supported")
	ErrTooLarge    = fmt.Errorf("image exceeds %dx%d", maxDimension, maxDimension)
	ErrNotFound    = errors.New("image not found")
)

// Image is returned from the upload endpoint. URL goes into an avatar's src.
type Image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Handler serves image upload and retrieval endpoints.
type Handler struct {
	dir    string
	prefix string // URL path images are served under, e.g. "/images/"
}

func NewHandler(dir, prefix string) (*Handler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Handler{dir: dir, prefix: prefix}, nil
}

// Save decodes a PNG or JPEG and stores it re-encoded as PNG.
func (h *Handler) Save(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || (format != "png" && format != "jpeg") {
		return nil, ErrUnsupported
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	id := typeid.NewImageID()
	path := filepath.Join(h.dir, id+".png")
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("encode png: %w", err)
	}

	b := img.Bounds()
	return &Image{ID: id, URL: h.prefix + id + ".png", Width: b.Dx(), Height: b.Dy()}, nil
}

// Delete removes a stored image.
func (h *Handler) Delete(id string) error {
	if err := typeid.Validate(id, typeid.PrefixImage); err != nil {
		return ErrNotFound
	}
	if err := os.Remove(filepath.Join(h.dir, id+".png")); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Upload handles POST with a multipart "file" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large (max 5MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/png") && !strings.HasPrefix(contentType, "image/jpeg") {
		writeError(w, http.StatusBadRequest, ErrUnsupported.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	img, err := h.Save(data)
	switch {
	case errors.Is(err, ErrUnsupported), errors.Is(err, ErrTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("save image", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	slog.Info("image uploaded", "id", img.ID, "name", header.Filename, "width", img.Width, "height", img.Height)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}

// Serve returns an http.Handler that serves stored images with caching headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix(h.prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Image IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
