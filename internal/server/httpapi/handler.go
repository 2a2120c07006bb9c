// Package httpapi exposes the HTTP/JSON surface of the service: auth routes,
// employee directory CRUD, and the metrics endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/filex"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/dmitrijs2005/staffkeeper/internal/server/services"
	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

// UserService is the slice of the auth service the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// EmployeeService is the slice of the directory service the handlers need.
type EmployeeService interface {
	Add(ctx context.Context, in services.CreateEmployeeInput, imagePath string) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, id string, in services.UpdateEmployeeInput, imagePath string) (*models.Employee, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Employee, error)
	Delete(ctx context.Context, id string) (*models.Employee, error)
}

const imageFormField = "imgUpload"

// maxUploadBytes bounds how much of a multipart body is kept in memory.
const maxUploadBytes = 32 << 20

type Handler struct {
	users     UserService
	employees EmployeeService
	logger    logging.Logger
	uploadDir string
}

func NewHandler(users UserService, employees EmployeeService, uploadDir string, logger logging.Logger) *Handler {
	return &Handler{
		users:     users,
		employees: employees,
		logger:    logger.With("module", "httpapi"),
		uploadDir: uploadDir,
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully",
		"token":   token,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User registered successfully",
		"token":   token,
	})
}

// stageImage extracts the uploaded image from the multipart form and writes
// it to the local staging directory. The returned cleanup removes the temp
// file and must be deferred by the caller so removal happens on success and
// failure alike.
func (h *Handler) stageImage(r *http.Request) (string, func(), error) {
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		return "", nil, shared.ErrorMissingImage
	}
	defer file.Close()

	path, err := filex.StageFile(h.uploadDir, file, header.Filename)
	if err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := filex.RemoveIfExists(path); err != nil {
			h.logger.Error(r.Context(), "failed to remove staged upload", "path", path, "error", err.Error())
		}
	}
	return path, cleanup, nil
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	path, cleanup, err := h.stageImage(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	defer cleanup()

	in := services.CreateEmployeeInput{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		MobileNo:    r.PostFormValue("mobileNo"),
		Designation: r.PostFormValue("designation"),
		Gender:      r.PostFormValue("gender"),
		Course:      r.PostForm["course"],
	}

	employee, err := h.employees.Add(r.Context(), in, path)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employees.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// formPtr reports a form field as a pointer: nil when the field was absent
// from the request, so updates can distinguish "unchanged" from "set empty".
func formPtr(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	var path string
	if _, _, err := r.FormFile(imageFormField); err == nil {
		staged, cleanup, err := h.stageImage(r)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		defer cleanup()
		path = staged
	}

	in := services.UpdateEmployeeInput{
		Name:        formPtr(r, "name"),
		Email:       formPtr(r, "email"),
		MobileNo:    formPtr(r, "mobileNo"),
		Designation: formPtr(r, "designation"),
		Gender:      formPtr(r, "gender"),
		Course:      r.PostForm["course"],
	}

	employee, err := h.employees.Update(r.Context(), r.PathValue("id"), in, path)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	status := r.FormValue("status")

	employee, err := h.employees.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Employee status updated successfully",
		"data":    employee,
	})
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	employee, err := h.employees.Delete(r.Context(), req.ID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Employee deleted successfully",
		"data":    employee,
	})
}

func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrorMissingImage):
		writeError(w, http.StatusBadRequest, "Image file is required")
	case errors.Is(err, shared.ErrorInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid Employee ID")
	case errors.Is(err, shared.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, "email already exists")
	case errors.Is(err, shared.ErrorInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, shared.ErrorMissingToken), errors.Is(err, shared.ErrorInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, shared.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
	default:
		h.logger.Error(r.Context(), "unexpected error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
