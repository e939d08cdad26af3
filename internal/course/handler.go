package course

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	util "github.com/saulo-duarte/codecourse-api/internal/utils"
)

type Handler struct {
	service CourseService
}

func NewHandler(s CourseService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := ListQuery{
		Search: params.Get("search"),
		Sort:   params.Get("sort"),
	}

	var err error
	if q.Page, err = intParam(params.Get("page")); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid page")
		return
	}
	if q.Limit, err = intParam(params.Get("limit")); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	if f := params.Get("filter"); f != "" {
		if q.CategoryID, err = util.FlexibleID(f).Uint(); err != nil {
			config.Error(w, http.StatusBadRequest, "Invalid category filter")
			return
		}
	}

	resp, err := h.service.List(r.Context(), q)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := util.FlexibleID(chi.URLParam(r, "id")).Uint()
	if err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			config.Error(w, http.StatusNotFound, "Course not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
