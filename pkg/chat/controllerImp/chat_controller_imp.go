package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"botanica/pkg/ai"
	"botanica/pkg/plant/repository"
)

type ChatCtrl struct {
	llm    ai.Client
	plants repository.PlantRepository
}

func New(llm ai.Client, plants repository.PlantRepository) *ChatCtrl {
	return &ChatCtrl{llm: llm, plants: plants}
}

type chatReq struct {
	Messages []ai.ChatMessage `json:"messages"`
	Language string           `json:"language"`
}

// Chat answers a garden question with the user's plant collection as
// context so the model can refer to specific plants.
func (h *ChatCtrl) Chat(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages is required"})
	}
	plants, err := h.plants.ListForUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	reply, err := h.llm.Chat(req.Messages, plants, req.Language)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
