// Package api exposes the tracker operations as a JSON HTTP surface. The
// bearer token stands in for the browser session; the reload endpoint is the
// explicit reconciliation hook a dashboard calls before rendering
// cross-session state.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lmarchuk/translix/internal/blob"
	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/logging"
	"github.com/lmarchuk/translix/internal/models"
	"github.com/lmarchuk/translix/internal/server/auth"
	"github.com/lmarchuk/translix/internal/tracker"
)

type Handler struct {
	tracker       *tracker.Tracker
	presigner     *blob.Presigner
	log           logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewHandler(t *tracker.Tracker, p *blob.Presigner, log logging.Logger, jwtSecret []byte, tokenValidity time.Duration) *Handler {
	return &Handler{
		tracker:       t,
		presigner:     p,
		log:           log,
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
	}
}

// userResponse is the user record with the password stripped.
type userResponse struct {
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Role      models.Role          `json:"role"`
	Files     []models.FileRequest `json:"files"`
	Artifacts []models.Artifact    `json:"artifacts"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Files:     u.Files,
		Artifacts: u.Artifacts,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	u, err := h.tracker.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateIdentity) {
			writeError(w, http.StatusConflict, "user with this email already exists")
			return
		}
		h.log.Error(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	u, err := h.tracker.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(u.Email, u.Role, h.jwtSecret, h.tokenValidity)
	if err != nil {
		h.log.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(*u)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Logout(r.Context()); err != nil {
		h.log.Error(r.Context(), "logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.tracker.UserByEmail(callerEmail(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Reload(r.Context()); err != nil {
		h.log.Error(r.Context(), "reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users := h.tracker.Users()
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	u, err := h.tracker.UserByEmail(callerEmail(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, u.Files)
}

func (h *Handler) statusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.tracker.StatusCounts(callerEmail(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type submitRequest struct {
	SourceLanguage  string `json:"sourceLanguage"`
	TargetLanguage  string `json:"targetLanguage"`
	TurnaroundHours int    `json:"turnaroundHours"`
	FileName        string `json:"fileName"`
	FileURL         string `json:"fileUrl"`
}

func (h *Handler) submitFile(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := h.tracker.Submit(r.Context(), callerEmail(r.Context()), models.FileRequest{
		SourceLanguage:  req.SourceLanguage,
		TargetLanguage:  req.TargetLanguage,
		TurnaroundHours: req.TurnaroundHours,
		FileName:        req.FileName,
		FileURL:         req.FileURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.log.Error(r.Context(), "submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) upsertFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if _, err := models.ParseStatus(string(req.Status)); err != nil {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	req.ID = id

	email := callerEmail(r.Context())
	// Admins may push a full record into any user's registry.
	if target := r.URL.Query().Get("email"); target != "" && callerRole(r.Context()) == models.RoleAdmin {
		email = target
	}

	if err := h.tracker.Upsert(r.Context(), email, req); err != nil {
		h.log.Error(r.Context(), "upsert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteFile enforces the Uploaded-only rule the dashboards apply: the
// registry itself would delete a request in any status.
func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	email := callerEmail(r.Context())
	u, err := h.tracker.UserByEmail(email)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	fi := u.FileByID(id)
	if fi < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !u.Files[fi].Status.AllowsDelete() {
		writeError(w, http.StatusConflict, "only uploaded requests may be deleted")
		return
	}

	if err := h.tracker.Remove(r.Context(), email, id); err != nil {
		h.log.Error(r.Context(), "remove failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteFileByName removes a request by its file name, which is how the
// client dashboard identifies rows. The same Uploaded-only rule applies.
func (h *Handler) deleteFileByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name")
		return
	}

	email := callerEmail(r.Context())
	u, err := h.tracker.UserByEmail(email)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	for _, f := range u.Files {
		if f.FileName == name && !f.Status.AllowsDelete() {
			writeError(w, http.StatusConflict, "only uploaded requests may be deleted")
			return
		}
	}

	if err := h.tracker.RemoveByName(r.Context(), email, name); err != nil {
		h.log.Error(r.Context(), "remove failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setStatusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	// The registry treats absent targets as a silent no-op; the API surface
	// is the guard that keeps callers from issuing them.
	u, err := h.tracker.UserByEmail(req.Email)
	if err != nil || u.FileByID(id) < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.tracker.SetStatus(r.Context(), req.Email, id, status); err != nil {
		h.log.Error(r.Context(), "status update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type attachArtifactRequest struct {
	RequestID int64  `json:"requestId"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Key       string `json:"key"`
}

func (h *Handler) attachArtifact(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req attachArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	// Delivery is only available once the request is Completed.
	u, err := h.tracker.UserByEmail(email)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if fi := u.FileByID(req.RequestID); fi < 0 || !u.Files[fi].Status.AllowsDelivery() {
		writeError(w, http.StatusConflict, "request is not completed")
		return
	}

	id, err := h.tracker.AttachArtifact(r.Context(), email, models.Artifact{
		RequestID: req.RequestID,
		Name:      req.Name,
		Content:   req.Content,
		Key:       req.Key,
	})
	if err != nil {
		h.log.Error(r.Context(), "attach artifact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type downloadResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// downloadArtifact resolves the translated file for one request. Keys are
// turned into presigned URLs when the blob layer is configured.
func (h *Handler) downloadArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	email := callerEmail(r.Context())
	u, err := h.tracker.UserByEmail(email)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	fi := u.FileByID(id)
	if fi < 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !u.Files[fi].Status.AllowsDownload() {
		writeError(w, http.StatusConflict, "request is not completed")
		return
	}

	a, err := h.tracker.ArtifactForRequest(email, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	resp := downloadResponse{ID: a.ID, Name: a.Name, Content: a.Content}
	if a.Key != "" && h.presigner.Enabled() {
		url, err := h.presigner.PresignGet(r.Context(), a.Key)
		if err != nil {
			h.log.Error(r.Context(), "presign failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.Content = ""
		resp.URL = url
	}
	writeJSON(w, http.StatusOK, resp)
}

type notifyRequest struct {
	Email string `json:"email"`
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	n, err := h.tracker.Notification(req.Email, id)
	if err != nil {
		if errors.Is(err, common.ErrorWrongStatus) {
			writeError(w, http.StatusConflict, "request is not completed")
			return
		}
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// presignUpload hands the admin UI a URL to PUT the translated file to.
func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	if !h.presigner.Enabled() {
		writeError(w, http.StatusNotImplemented, "object storage is not configured")
		return
	}

	key, url, err := h.presigner.PresignPut(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "presign failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
