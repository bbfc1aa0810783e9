package service

import (
	"context"
	"encoding/json"

	"seedy/internal/model"
	"seedy/internal/pkg"
	"seedy/internal/repository/mysql"
)

type PlantService struct {
	repo       *mysql.PlantRepository
	identifier *pkg.PlantIdentifier
}

func NewPlantService(repo *mysql.PlantRepository, identifier *pkg.PlantIdentifier) *PlantService {
	return &PlantService{repo: repo, identifier: identifier}
}

func (s *PlantService) Create(scientificName, family string, images, commonNames []string) (*model.Plant, error) {
	if err := validatePlant(scientificName, family, images); err != nil {
		return nil, err
	}
	plant := &model.Plant{
		ScientificName: scientificName,
		Family:         family,
		Images:         images,
		CommonNames:    commonNames,
	}
	if err := s.repo.Create(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// FirstOrCreate returns the existing plant for the scientific name when one
// exists; found lets callers distinguish the two cases without parsing
// message text.
func (s *PlantService) FirstOrCreate(scientificName, family string, images, commonNames []string) (*model.Plant, bool, error) {
	if err := validatePlant(scientificName, family, images); err != nil {
		return nil, false, err
	}
	plant := &model.Plant{
		ScientificName: scientificName,
		Family:         family,
		Images:         images,
		CommonNames:    commonNames,
	}
	found, err := s.repo.FirstOrCreate(plant)
	if err != nil {
		return nil, false, err
	}
	return plant, found, nil
}

func (s *PlantService) List() ([]model.Plant, error) {
	return s.repo.List()
}

func (s *PlantService) Associate(userID, plantID uint64) (bool, error) {
	if plantID == 0 {
		return false, missing("plant_id")
	}
	if _, err := s.repo.FindByID(plantID); err != nil {
		return false, notFound("Plant not found")
	}
	return s.repo.Associate(userID, plantID)
}

func (s *PlantService) Dissociate(userID, plantID uint64) error {
	removed, err := s.repo.Dissociate(userID, plantID)
	if err != nil {
		return err
	}
	if !removed {
		return notFound("Association not found")
	}
	return nil
}

func (s *PlantService) IsAssociated(userID, plantID uint64) (bool, error) {
	return s.repo.IsAssociated(userID, plantID)
}

// UserPlants pages when page and limit are given, otherwise returns the full
// listing.
func (s *PlantService) UserPlants(userID uint64, page, limit int) ([]model.Plant, int64, error) {
	offset := 0
	if limit > 0 {
		if page <= 0 {
			page = 1
		}
		offset = (page - 1) * limit
	}
	return s.repo.UserPlants(userID, offset, limit)
}

// Identify proxies the photo to the external identification API, relaying
// its response body untouched.
func (s *PlantService) Identify(ctx context.Context, photoURL, lang string) (json.RawMessage, error) {
	if photoURL == "" {
		return nil, missing("photo_url")
	}
	return s.identifier.Identify(ctx, photoURL, lang)
}

func validatePlant(scientificName, family string, images []string) error {
	var fields []string
	if scientificName == "" {
		fields = append(fields, "scientific_name")
	}
	if family == "" {
		fields = append(fields, "family")
	}
	if len(images) == 0 {
		fields = append(fields, "images")
	}
	if len(fields) > 0 {
		return missing(fields...)
	}
	return nil
}
