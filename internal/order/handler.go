package order

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/codecourse-api/internal/auth"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	util "github.com/saulo-duarte/codecourse-api/internal/utils"
)

type Handler struct {
	service OrderService
}

func NewHandler(s OrderService) *Handler {
	return &Handler{service: s}
}

func userIDFromRequest(r *http.Request) (uint, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("Checkout without an authenticated user")
		config.Error(w, http.StatusUnauthorized, "Unauthorized Error")
		return
	}

	req, err := decodeCheckout(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	courseID := req.CourseID
	if courseID.IsEmpty() {
		courseID = util.FlexibleID(r.URL.Query().Get("courseId"))
	}
	if courseID.IsEmpty() {
		courseID = util.FlexibleID(chi.URLParam(r, "courseId"))
	}
	if courseID.IsEmpty() {
		config.Error(w, http.StatusBadRequest, "Course ID is required")
		return
	}
	id, err := courseID.Uint()
	if err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = r.URL.Query().Get("paymentMethod")
	}

	resp, err := h.service.Checkout(r.Context(), userID, id, paymentMethod)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			config.Error(w, http.StatusNotFound, "Course not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "Unauthorized Error")
		return
	}

	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	config.JSON(w, http.StatusOK, orders)
}

// decodeCheckout reads JSON or urlencoded bodies. Other content types leave the request
// empty so the query and path fallbacks apply.
func decodeCheckout(r *http.Request) (CheckoutRequest, error) {
	var req CheckoutRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.CourseID = util.FlexibleID(strings.TrimSpace(r.PostForm.Get("courseId")))
		if req.CourseID.IsEmpty() {
			req.CourseID = util.FlexibleID(strings.TrimSpace(r.PostForm.Get("CourseId")))
		}
		req.PaymentMethod = r.PostForm.Get("paymentMethod")
	}
	return req, nil
}
