package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"botanica/pkg/careplan/service"
)

type CareplanCtrl struct{ svc service.CareplanService }

func New(svc service.CareplanService) *CareplanCtrl { return &CareplanCtrl{svc} }

type planReq struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Language  string   `json:"language"`
}

// GeneratePlan creates the annual structural task set for a plant. When
// the plant already has tasks this is a no-op and reports zero created.
func (h *CareplanCtrl) GeneratePlan(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	n, err := h.svc.EnsureAnnualPlan(uid, c.Param("id"), req.Latitude, req.Longitude, req.Language)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"tasks_created": n})
}

// Bootstrap runs the annual planner over every plant that has no tasks
// yet. Called by the client on session start; already-planned plants are
// skipped, so repeat calls are harmless.
func (h *CareplanCtrl) Bootstrap(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.BootstrapAll(uid, req.Latitude, req.Longitude, req.Language); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CareplanCtrl) CarePlan(c echo.Context) error {
	uid := c.Get("uid").(string)
	md, err := h.svc.CarePlanSheet(uid, c.Param("id"), c.QueryParam("lang"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"markdown": md})
}
