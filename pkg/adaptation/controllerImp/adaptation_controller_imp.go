package controllerImp

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"botanica/pkg/adaptation/service"
)

type AdaptCtrl struct {
	svc service.AdaptationService

	mu       sync.Mutex
	sessions map[string]*service.Session
}

func New(svc service.AdaptationService) *AdaptCtrl {
	return &AdaptCtrl{svc: svc, sessions: map[string]*service.Session{}}
}

// session returns the per-user latch, creating it on first use. The latch
// lives for the server process, which stands in for an app session.
func (h *AdaptCtrl) session(uid string) *service.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[uid]
	if !ok {
		s = &service.Session{}
		h.sessions[uid] = s
	}
	return s
}

func (h *AdaptCtrl) Status(c echo.Context) error {
	uid := c.Get("uid").(string)
	due, err := h.svc.ShouldAdapt(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"due": due})
}

type runReq struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Language  string   `json:"language"`
	Force     bool     `json:"force"` // start a fresh session latch
}

func (h *AdaptCtrl) Run(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req runReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	sess := h.session(uid)
	if req.Force {
		sess = &service.Session{}
		h.mu.Lock()
		h.sessions[uid] = sess
		h.mu.Unlock()
	}
	res, err := h.svc.RunIfDue(sess, uid, req.Latitude, req.Longitude, req.Language)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
