package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"titanicdash/internal/models"
	"titanicdash/internal/service"
	"titanicdash/internal/validation"
)

// CommentHandler handles comment writes and the delete confirmation page
type CommentHandler struct {
	comments  *service.CommentService
	templates *template.Template
	msg       Messages
	logger    *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *service.CommentService, templates *template.Template, msg Messages, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		comments:  comments,
		templates: templates,
		msg:       msg,
		logger:    logger,
	}
}

// Create adds a comment to a chart
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	chartType, err := models.ParseChartType(r.FormValue("type"))
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	c, err := h.comments.Create(r.Context(), chartType, r.FormValue("text"))
	switch {
	case err != nil:
		redirectToDashboard(w, r, ErrorParam, writeFailure(err, FlashCreateFailed), chartType)
	case c == nil:
		redirectToDashboard(w, r, "", "", chartType)
	default:
		redirectToDashboard(w, r, NoticeParam, FlashCreated, chartType)
	}
}

// Update saves the edited text of a comment
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	version, err := strconv.Atoi(r.FormValue("version"))
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	cached, _ := h.comments.Get(id)

	c, err := h.comments.Update(r.Context(), id, r.FormValue("text"), version)
	if err != nil {
		redirectToDashboard(w, r, ErrorParam, writeFailure(err, FlashUpdateFailed), cached.Type)
		return
	}
	if c == nil {
		// Blank text keeps the editor open
		http.Redirect(w, r, "/?"+EditParam+"="+url.QueryEscape(id)+panelAnchor(cached.Type), http.StatusSeeOther)
		return
	}
	redirectToDashboard(w, r, NoticeParam, FlashUpdated, c.Type)
}

// ConfirmDelete asks the visitor to confirm a deletion
func (h *CommentHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.EnsureLoaded(r.Context()); err != nil {
		redirectToDashboard(w, r, ErrorParam, FlashDeleteFailed, "")
		return
	}

	c, ok := h.comments.Get(r.PathValue("id"))
	if !ok {
		redirectToDashboard(w, r, ErrorParam, FlashNotFound, "")
		return
	}

	renderTemplate(h.logger, h.templates, w, http.StatusOK, "confirm_delete.tmpl", ConfirmDeleteViewData{
		PageData: PageData{Title: h.msg.ConfirmDeleteTitle, Msg: h.msg},
		Comment:  c,
	})
}

// Delete removes a comment after confirmation
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	version, err := strconv.Atoi(r.FormValue("version"))
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	cached, _ := h.comments.Get(id)

	if err := h.comments.Delete(r.Context(), id, version); err != nil {
		redirectToDashboard(w, r, ErrorParam, writeFailure(err, FlashDeleteFailed), cached.Type)
		return
	}
	redirectToDashboard(w, r, NoticeParam, FlashDeleted, cached.Type)
}

// writeFailure maps a store error to the flash shown to the visitor
func writeFailure(err error, fallback string) string {
	switch {
	case errors.Is(err, service.ErrVersionConflict):
		return FlashConflict
	case errors.Is(err, service.ErrCommentNotFound):
		return FlashNotFound
	case errors.As(err, new(validation.ValidationError)):
		return FlashTooLong
	default:
		return fallback
	}
}

func redirectToDashboard(w http.ResponseWriter, r *http.Request, param, key string, chartType models.ChartType) {
	target := "/"
	if param != "" {
		target += "?" + url.Values{param: {key}}.Encode()
	}
	http.Redirect(w, r, target+panelAnchor(chartType), http.StatusSeeOther)
}

func panelAnchor(chartType models.ChartType) string {
	if chartType == "" {
		return ""
	}
	return "#panel-" + string(chartType)
}
