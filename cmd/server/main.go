package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"botanica/config"
	"botanica/database"
	"botanica/router"

	// Auth
	authCtrlImp "botanica/pkg/auth/controllerImp"

	// Plants
	plantCtrlImp "botanica/pkg/plant/controllerImp"
	plantRepoImp "botanica/pkg/plant/repositoryImp"

	// Tasks
	taskCtrlImp "botanica/pkg/task/controllerImp"
	taskRepoImp "botanica/pkg/task/repositoryImp"

	// Care plans
	planCtrlImp "botanica/pkg/careplan/controllerImp"
	planSvcImp "botanica/pkg/careplan/serviceImp"

	// Adaptation
	adaptCtrlImp "botanica/pkg/adaptation/controllerImp"
	adaptRepoImp "botanica/pkg/adaptation/repositoryImp"
	adaptSvcImp "botanica/pkg/adaptation/serviceImp"

	// Chat
	chatCtrlImp "botanica/pkg/chat/controllerImp"

	// AI / weather / climate
	"botanica/pkg/ai"
	"botanica/pkg/climate"
	"botanica/pkg/weather"

	// KB
	kbCtrlImp "botanica/pkg/kb/controllerImp"
	kbEmbedder "botanica/pkg/kb/embedder"
	kbRepoImp "botanica/pkg/kb/repositoryImp"
	kbServiceImp "botanica/pkg/kb/serviceImp"

	// Health
	healthCtrlImp "botanica/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) Climate normals (optional workbook; nil Normals falls back to
	//    a temperate default inside Digest)
	normals, err := climate.LoadXLSX(cfg.ClimateXLSX)
	if err != nil {
		log.Printf("climate warn: %v", err)
	}

	// 5) LLM (mock fallback)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = ai.NewMock()
	}

	// 6) Weather
	wx := weather.NewClient(cfg.WeatherEndpoint)

	// 7) KB wiring
	emb := kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	kbRepo := kbRepoImp.New(db)
	kbSvc := kbServiceImp.New(kbRepo, emb)
	kbCtrl := kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains, cfg.KBMaxPageBytes)

	// 8) Repos
	pRepo := plantRepoImp.New(db)
	tRepo := taskRepoImp.New(db)
	aRepo := adaptRepoImp.New(db)

	// 9) Services
	planSvc := planSvcImp.New(pRepo, tRepo, llm, wx, normals, kbSvc)
	adaptSvc := adaptSvcImp.NewEngine(tRepo, aRepo, pRepo, llm, wx, normals, kbSvc, cfg.AdaptIntervalDays)

	// 10) Controllers
	plCtrl := plantCtrlImp.New(pRepo, tRepo, llm)
	tkCtrl := taskCtrlImp.New(tRepo, wx)
	cpCtrl := planCtrlImp.New(planSvc)
	adCtrl := adaptCtrlImp.New(adaptSvc)
	chCtrl := chatCtrlImp.New(llm, pRepo)
	authCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 11) Router
	r := router.New(e, plCtrl, tkCtrl, cpCtrl, adCtrl, chCtrl, authCtrl, kbCtrl, hCtrl)

	// 12) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
