package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookquest/bookquest/internal/auth"
	"github.com/bookquest/bookquest/internal/handler/dto"
	"github.com/bookquest/bookquest/internal/service"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	svc    *service.BookService
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /. The request is multipart form data carrying the
// book fields plus the cover image file.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or missing token")
		return
	}

	if err := r.ParseMultipartForm(h.svc.MaxImageBytes() + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "request body must be multipart form data")
		return
	}

	input := service.CreateBookInput{
		Title:    r.FormValue("title"),
		Author:   r.FormValue("author"),
		Language: r.FormValue("language"),
		OwnerID:  authCtx.UserID,
	}

	if raw := r.FormValue("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_RATING", "rating must be a number")
			return
		}
		input.Rating = rating
	}

	if raw := r.FormValue("createdAt"); raw != "" {
		createdAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_CREATED_AT", "createdAt must be RFC 3339")
			return
		}
		input.CreatedAt = &createdAt
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "IMAGE_REQUIRED", "image file is required")
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversized uploads are detectable.
	image, err := io.ReadAll(io.LimitReader(file, h.svc.MaxImageBytes()+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_IMAGE", "could not read image file")
		return
	}
	input.Image = image

	book, err := h.svc.CreateBook(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_created",
		"book_id", book.ID,
		"owner_id", book.OwnerID,
		"language", book.Language,
	)

	writeJSON(w, http.StatusCreated, dto.MessageBookResponse{
		Message: "book created",
		Book:    dto.ToBookResponse(book, time.Now().UTC()),
	})
}

// List handles GET /.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or missing token")
		return
	}

	query := r.URL.Query()

	input := service.ListBooksInput{
		CallerID:   authCtx.UserID,
		Language:   query.Get("language"),
		Search:     query.Get("search"),
		OwnerID:    query.Get("userId"),
		Sort:       query.Get("sort"),
		RatingSort: query.Get("sortD"),
		NewOnly:    query.Has("New"),
		OldOnly:    query.Has("old"),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be a positive integer")
			return
		}
		input.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		input.Limit = limit
	}

	books, err := h.svc.ListBooks(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBookListResponse(books, time.Now().UTC()))
}

// Update handles PUT /{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or missing token")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "book ID is required")
		return
	}

	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), service.UpdateBookInput{
		ID:       id,
		OwnerID:  authCtx.UserID,
		Title:    req.Title,
		Author:   req.Author,
		Language: req.Language,
		Rating:   req.Rating,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_updated", "book_id", book.ID, "owner_id", book.OwnerID)

	writeJSON(w, http.StatusOK, dto.MessageBookResponse{
		Message: "book updated",
		Book:    dto.ToBookResponse(book, time.Now().UTC()),
	})
}

// Delete handles DELETE /{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or missing token")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "book ID is required")
		return
	}

	book, err := h.svc.DeleteBook(r.Context(), id, authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_deleted", "book_id", id, "owner_id", authCtx.UserID)

	writeJSON(w, http.StatusOK, dto.MessageBookResponse{
		Message: "book deleted",
		Book:    dto.ToBookResponse(book, time.Now().UTC()),
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
	case errors.Is(err, service.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, "TITLE_REQUIRED", "title is required")
	case errors.Is(err, service.ErrImageRequired):
		writeError(w, http.StatusBadRequest, "IMAGE_REQUIRED", "image file is required")
	case errors.Is(err, service.ErrImageTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image exceeds maximum size")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
