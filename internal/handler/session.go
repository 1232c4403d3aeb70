package handler

import (
	"errors"
	"log"
	"net/http"

	"session-planner/internal/service"
	"session-planner/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionHandler 负责会话相关接口
type SessionHandler struct {
	Svc *service.Service
}

func NewSessionHandler(svc *service.Service) *SessionHandler {
	return &SessionHandler{Svc: svc}
}

// ---------- 请求结构 ----------

type createSessionReq struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	MaxParticipants int    `json:"maxParticipants"`
	Type            string `json:"type"`
	Location        string `json:"location"`
}

type updateSessionReq struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	MaxParticipants *int    `json:"maxParticipants"`
	Type            *string `json:"type"`
	Location        *string `json:"location"`
}

type attendReq struct {
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
}

// fail maps service errors onto the fixed wire contract. forbiddenMsg differs
// per endpoint (management vs attendance code).
func fail(c *gin.Context, err error, forbiddenMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"missing": verr.Missing,
			"invalid": verr.Invalid,
		})
	case errors.Is(err, service.ErrNotFound):
		util.Fail(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		util.Fail(c, http.StatusForbidden, forbiddenMsg)
	case errors.Is(err, service.ErrMissingCode):
		util.Fail(c, http.StatusBadRequest, "Missing attendance code")
	case errors.Is(err, service.ErrSessionFull):
		util.Fail(c, http.StatusConflict, "Session is full")
	case errors.Is(err, service.ErrDuplicateAttendee):
		util.Fail(c, http.StatusConflict, "Already joined")
	case errors.Is(err, service.ErrBusy):
		util.Fail(c, http.StatusServiceUnavailable, "Session is busy, retry shortly")
	default:
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		util.Fail(c, http.StatusInternalServerError, "Internal error")
	}
}

// List handles GET /sessions?filter=&scope=all|upcoming|past
func (h *SessionHandler) List(c *gin.Context) {
	filter := c.Query("filter")
	scope := c.DefaultQuery("scope", service.ScopeAll)

	items, err := h.Svc.List(filter, scope)
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create handles POST /sessions. The management code appears in this response
// and nowhere else, ever.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.Svc.Create(service.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		MaxParticipants: req.MaxParticipants,
		Type:            req.Type,
		Location:        req.Location,
	})
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":             res.ID,
		"managementCode": res.ManagementCode,
	})
}

// Update handles PATCH /sessions/:id?code=MANAGEMENT_CODE
func (h *SessionHandler) Update(c *gin.Context) {
	var req updateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.Svc.Update(c.Param("id"), c.Query("code"), service.UpdatePatch{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		MaxParticipants: req.MaxParticipants,
		Type:            req.Type,
		Location:        req.Location,
	})
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /sessions/:id?code=MANAGEMENT_CODE
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id"), c.Query("code")); err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	util.OK(c)
}

// Attend handles POST /sessions/:id/attend. The client id is a best-effort
// duplicate-join heuristic, not identity; body wins over the X-Client-Id
// header when both are present.
func (h *SessionHandler) Attend(c *gin.Context) {
	var req attendReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = c.GetHeader("X-Client-Id")
	}

	res, err := h.Svc.Attend(c.Param("id"), req.Name, clientID)
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"attendanceCode": res.AttendanceCode,
		"attendeeId":     res.AttendeeID,
	})
}

// Unattend handles DELETE /sessions/:id/attend?code=ATTENDANCE_CODE
func (h *SessionHandler) Unattend(c *gin.Context) {
	if err := h.Svc.Unattend(c.Param("id"), c.Query("code")); err != nil {
		fail(c, err, "Invalid attendance code")
		return
	}
	util.OK(c)
}

// Kick handles DELETE /sessions/:id/attend/:attendeeId?code=MANAGEMENT_CODE
func (h *SessionHandler) Kick(c *gin.Context) {
	if err := h.Svc.Kick(c.Param("id"), c.Query("code"), c.Param("attendeeId")); err != nil {
		fail(c, err, "Invalid management code")
		return
	}
	util.OK(c)
}
