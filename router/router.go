package router

import (
	"github.com/labstack/echo/v4"

	"botanica/pkg/middleware"
)

func New(
	e *echo.Echo,
	plantCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Delete(echo.Context) error
	},
	taskCtrl interface {
		List(echo.Context) error
		Calendar(echo.Context) error
		Complete(echo.Context) error
		Uncomplete(echo.Context) error
		UpdateWindow(echo.Context) error
	},
	planCtrl interface {
		GeneratePlan(echo.Context) error
		Bootstrap(echo.Context) error
		CarePlan(echo.Context) error
	},
	adaptCtrl interface {
		Status(echo.Context) error
		Run(echo.Context) error
	},
	chatCtrl interface{ Chat(echo.Context) error },
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.DevLogin())
	api := e.Group("")

	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)
	e.GET("/health", healthCtrl.Health)

	api.POST("/plants", plantCtrl.Create)
	api.GET("/plants", plantCtrl.List)
	api.GET("/plants/:id", plantCtrl.Get)
	api.DELETE("/plants/:id", plantCtrl.Delete)

	g := e.Group("/plants")
	g.POST("/bootstrap", planCtrl.Bootstrap)
	g.POST("/:id/plan", planCtrl.GeneratePlan)
	g.GET("/:id/careplan", planCtrl.CarePlan)

	api.GET("/tasks", taskCtrl.List)
	api.GET("/tasks/calendar", taskCtrl.Calendar)
	api.POST("/tasks/:id/complete", taskCtrl.Complete)
	api.POST("/tasks/:id/uncomplete", taskCtrl.Uncomplete)
	api.PATCH("/tasks/:id/window", taskCtrl.UpdateWindow)

	api.GET("/adaptation/status", adaptCtrl.Status)
	api.POST("/adaptation/run", adaptCtrl.Run)

	api.POST("/chat", chatCtrl.Chat)

	// KB endpoints
	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)

	return e
}
