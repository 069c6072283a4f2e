package controllerImp

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"botanica/entities"
	"botanica/pkg/ai"
	"botanica/pkg/plant/repository"
	taskrepo "botanica/pkg/task/repository"
)

type PlantCtrl struct {
	repo  repository.PlantRepository
	tasks taskrepo.TaskRepository
	llm   ai.Client
}

func New(repo repository.PlantRepository, tasks taskrepo.TaskRepository, llm ai.Client) *PlantCtrl {
	return &PlantCtrl{repo: repo, tasks: tasks, llm: llm}
}

type createReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CareNeeds   string   `json:"care_needs"`
	Notes       string   `json:"notes"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Language    string   `json:"language"`
}

func (h *PlantCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	p := &entities.Plant{
		UserID:      uid,
		Name:        req.Name,
		Description: req.Description,
		CareNeeds:   req.CareNeeds,
		Notes:       req.Notes,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Language:    req.Language,
	}
	// Fill in species info from the model when the caller gave only a name.
	if p.Description == "" && h.llm != nil {
		if info, err := h.llm.SearchPlant(req.Name, p.Language); err == nil && info != nil {
			p.Description = info.Description
			if p.CareNeeds == "" {
				p.CareNeeds = info.CareNeeds
			}
		} else if err != nil {
			log.Printf("[plant] species lookup failed for %q: %v", req.Name, err)
		}
	}
	if err := h.repo.Create(p); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlantCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	plants, err := h.repo.ListForUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, plants)
}

func (h *PlantCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	p, err := h.repo.FindByID(c.Param("id"), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes the plant and every task that belongs to it.
func (h *PlantCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")
	if _, err := h.repo.FindByID(id, uid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err := h.tasks.DeleteForPlant(id, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if err := h.repo.Delete(id, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": id})
}
