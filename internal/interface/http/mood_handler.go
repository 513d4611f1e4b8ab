package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
	"github.com/oksasatya/mood-diary/pkg/response"
)

type MoodHandler struct {
	Service *application.MoodService
	Cache   *ReadCache
	Logger  *logrus.Logger
}

func NewMoodHandler(svc *application.MoodService, cache *ReadCache, logger *logrus.Logger) *MoodHandler {
	return &MoodHandler{Service: svc, Cache: cache, Logger: logger}
}

type createMoodRequest struct {
	Date  string `json:"date" binding:"required,day"`
	Value int    `json:"value" binding:"required,moodvalue"`
	Note  string `json:"note"`
}

type updateMoodRequest struct {
	Value *int    `json:"value" binding:"omitempty,moodvalue"`
	Note  *string `json:"note"`
}

type listMoodQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,day"`
	EndDate   string `form:"end_date" binding:"omitempty,day"`
	Value     *int   `form:"value" binding:"omitempty,moodvalue"`
}

func (q listMoodQuery) filter() repository.MoodFilter {
	var f repository.MoodFilter
	if d, err := entity.ParseDate(q.StartDate); err == nil {
		f.StartDate = &d
	}
	if d, err := entity.ParseDate(q.EndDate); err == nil {
		f.EndDate = &d
	}
	f.Value = q.Value
	return f
}

// pathDate parses the :date segment, answering 422 itself when it is malformed.
func pathDate(c *gin.Context) (time.Time, bool) {
	d, err := entity.ParseDate(c.Param("date"))
	if err != nil {
		response.Validation(c, map[string]string{"date": "must be a date in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	return d, true
}

// Create POST /mood/
func (h *MoodHandler) Create(c *gin.Context) {
	var req createMoodRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := entity.ParseDate(req.Date)
	if err != nil {
		response.Validation(c, map[string]string{"date": "must be a date in YYYY-MM-DD format"})
		return
	}
	uid := userID(c)
	m, err := h.Service.Create(c.Request.Context(), uid, application.CreateMoodInput{Date: d, Value: req.Value, Note: req.Note})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.invalidate(c, uid, m.Date)
	response.JSON(c, http.StatusOK, m)
}

// Get GET /mood/:date
func (h *MoodHandler) Get(c *gin.Context) {
	d, ok := pathDate(c)
	if !ok {
		return
	}
	uid := userID(c)
	ctx := c.Request.Context()
	key := moodKey(uid, entity.FormatDate(d))

	var cached application.MoodStamp
	if getCached(ctx, h.Cache, key, &cached) {
		response.JSON(c, http.StatusOK, cached)
		return
	}
	m, err := h.Service.Get(ctx, uid, d)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cache.Set(ctx, key, m)
	response.JSON(c, http.StatusOK, m)
}

// List GET /mood/?start_date=&end_date=&value=
func (h *MoodHandler) List(c *gin.Context) {
	var q listMoodQuery
	if !bindQuery(c, &q) {
		return
	}
	uid := userID(c)
	ctx := c.Request.Context()
	f := q.filter()
	key := moodListKey(uid, f)

	var cached []application.MoodStamp
	if getCached(ctx, h.Cache, key, &cached) {
		response.JSON(c, http.StatusOK, cached)
		return
	}
	list, err := h.Service.List(ctx, uid, f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cache.Set(ctx, key, list)
	response.JSON(c, http.StatusOK, list)
}

// Update PUT /mood/:date
func (h *MoodHandler) Update(c *gin.Context) {
	d, ok := pathDate(c)
	if !ok {
		return
	}
	var req updateMoodRequest
	if !bindJSON(c, &req) {
		return
	}
	uid := userID(c)
	m, err := h.Service.Update(c.Request.Context(), uid, d, repository.MoodPatch{Value: req.Value, Note: req.Note})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.invalidate(c, uid, m.Date)
	response.JSON(c, http.StatusOK, m)
}

// Delete DELETE /mood/:date
func (h *MoodHandler) Delete(c *gin.Context) {
	d, ok := pathDate(c)
	if !ok {
		return
	}
	uid := userID(c)
	if err := h.Service.Delete(c.Request.Context(), uid, d); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.invalidate(c, uid, entity.FormatDate(d))
	response.Message(c, http.StatusOK, "MoodStamp deleted successfully")
}

func (h *MoodHandler) invalidate(c *gin.Context, uid, date string) {
	h.Cache.Invalidate(c.Request.Context(), []string{moodKey(uid, date)}, moodListPattern(uid))
}
