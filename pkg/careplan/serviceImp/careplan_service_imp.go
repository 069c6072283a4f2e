package serviceImp

import (
	"fmt"
	"log"
	"time"

	"botanica/entities"
	"botanica/pkg/ai"
	"botanica/pkg/careplan/service"
	"botanica/pkg/climate"
	plantrepo "botanica/pkg/plant/repository"
	taskrepo "botanica/pkg/task/repository"
	"botanica/pkg/weather"
)

const carePlanMaxAge = 15 * 24 * time.Hour

type kbSearcher interface {
	Search(query string, k int) ([]entities.KBChunk, error)
}

type CareplanSvc struct {
	plants  plantrepo.PlantRepository
	tasks   taskrepo.TaskRepository
	llm     ai.Client
	weather *weather.Client
	normals *climate.Normals
	kb      kbSearcher
}

func New(pr plantrepo.PlantRepository, tr taskrepo.TaskRepository, llm ai.Client, wc *weather.Client, normals *climate.Normals, kb kbSearcher) service.CareplanService {
	return &CareplanSvc{plants: pr, tasks: tr, llm: llm, weather: wc, normals: normals, kb: kb}
}

func (s *CareplanSvc) EnsureAnnualPlan(userID, plantID string, lat, lon *float64, language string) (int, error) {
	has, err := s.tasks.HasForPlant(plantID, userID)
	if err != nil {
		return 0, err
	}
	if has {
		return 0, nil
	}

	plant, err := s.plants.FindByID(plantID, userID)
	if err != nil {
		return 0, err
	}

	loc, digest := s.locationAndWeather(plant, lat, lon)
	kbCtx := s.searchKB(plant)

	drafts, err := s.llm.ProposeAnnualPlan(plant, loc, digest, kbCtx, language)
	if err != nil {
		return 0, fmt.Errorf("annual plan proposal for %s: %w", plant.Name, err)
	}

	tasks := ValidateStructural(drafts)
	if len(tasks) == 0 {
		log.Printf("[careplan] no valid structural tasks for %s", plant.Name)
		return 0, nil
	}

	batchID := fmt.Sprintf("annual_%s_%d", plant.PlantID, time.Now().Unix())
	if err := s.tasks.CreateBatch(userID, plant.PlantID, plant.Name, language, batchID, tasks); err != nil {
		return 0, fmt.Errorf("persist annual plan for %s: %w", plant.Name, err)
	}
	log.Printf("[careplan] bootstrapped %d tasks for %s batch=%s", len(tasks), plant.Name, batchID)
	return len(tasks), nil
}

func (s *CareplanSvc) BootstrapAll(userID string, lat, lon *float64, language string) error {
	plants, err := s.plants.ListForUser(userID)
	if err != nil {
		return err
	}
	for _, p := range plants {
		if _, err := s.EnsureAnnualPlan(userID, p.PlantID, lat, lon, language); err != nil {
			// one plant failing must not block the others; retried next launch
			log.Printf("[careplan] bootstrap failed for %s: %v", p.Name, err)
		}
	}
	return nil
}

func (s *CareplanSvc) CarePlanSheet(userID, plantID, language string) (string, error) {
	plant, err := s.plants.FindByID(plantID, userID)
	if err != nil {
		return "", err
	}
	if plant.CarePlanMD != "" && plant.CarePlanGeneratedAt != nil &&
		time.Since(*plant.CarePlanGeneratedAt) < carePlanMaxAge {
		return plant.CarePlanMD, nil
	}

	md, err := s.llm.DetailedCarePlan(plant, language)
	if err != nil {
		// stale beats nothing
		if plant.CarePlanMD != "" {
			return plant.CarePlanMD, nil
		}
		return "", err
	}
	if err := s.plants.SaveCarePlan(plantID, userID, md, time.Now()); err != nil {
		log.Printf("[careplan] cache save failed for %s: %v", plant.Name, err)
	}
	return md, nil
}

func (s *CareplanSvc) locationAndWeather(plant *entities.Plant, lat, lon *float64) (ai.LocationContext, string) {
	if lat == nil || lon == nil {
		lat, lon = plant.Latitude, plant.Longitude
	}
	loc := ai.LocationContext{Latitude: lat, Longitude: lon}
	now := time.Now()
	if lat == nil || lon == nil {
		loc.Fallback = "No coordinates available. Assume a temperate Mediterranean climate (USDA zone 8-9)."
		return loc, s.normals.Digest(nil, now.Month())
	}
	if s.weather != nil {
		if fc, err := s.weather.Fetch(*lat, *lon); err == nil {
			return loc, weather.Digest(fc)
		} else {
			log.Printf("[careplan] weather fetch failed, using normals: %v", err)
		}
	}
	return loc, s.normals.Digest(lat, now.Month())
}

func (s *CareplanSvc) searchKB(plant *entities.Plant) string {
	if s.kb == nil {
		return ""
	}
	chunks, err := s.kb.Search(plant.Name+" annual care pruning fertilizing", 4)
	if err != nil {
		return ""
	}
	ctx := ""
	for _, ch := range chunks {
		if len(ctx) > 4000 {
			break
		}
		ctx += "\n---\n" + ch.Text
	}
	return ctx
}
