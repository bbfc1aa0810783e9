package mysql

import (
	"errors"

	"seedy/internal/model"

	"gorm.io/gorm"
)

type PlantRepository struct {
	DB *gorm.DB
}

func (r *PlantRepository) Create(plant *model.Plant) error {
	return r.DB.Create(plant).Error
}

func (r *PlantRepository) FindByID(id uint64) (*model.Plant, error) {
	var plant model.Plant
	err := r.DB.First(&plant, id).Error
	return &plant, err
}

func (r *PlantRepository) FindByScientificName(name string) (*model.Plant, error) {
	var plant model.Plant
	err := r.DB.Where("scientific_name = ?", name).First(&plant).Error
	return &plant, err
}

func (r *PlantRepository) List() ([]model.Plant, error) {
	var list []model.Plant
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// FirstOrCreate returns the existing row for the scientific name, creating
// the plant only when none exists. found reports which case it was.
func (r *PlantRepository) FirstOrCreate(plant *model.Plant) (found bool, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.Plant
		err := tx.Where("scientific_name = ?", plant.ScientificName).First(&existing).Error
		if err == nil {
			*plant = existing
			found = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(plant).Error
	})
	return found, err
}

// Associate inserts the (user, plant) join row; created is false when the
// association already existed.
func (r *PlantRepository) Associate(userID, plantID uint64) (created bool, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserPlant
		err := tx.Where("user_id = ? AND plant_id = ?", userID, plantID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = true
		return tx.Create(&model.UserPlant{UserID: userID, PlantID: plantID}).Error
	})
	return created, err
}

func (r *PlantRepository) Dissociate(userID, plantID uint64) (bool, error) {
	res := r.DB.Where("user_id = ? AND plant_id = ?", userID, plantID).
		Delete(&model.UserPlant{})
	return res.RowsAffected > 0, res.Error
}

func (r *PlantRepository) IsAssociated(userID, plantID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserPlant{}).
		Where("user_id = ? AND plant_id = ?", userID, plantID).
		Count(&count).Error
	return count > 0, err
}

// UserPlants lists a user's plants; limit <= 0 disables pagination.
func (r *PlantRepository) UserPlants(userID uint64, offset, limit int) ([]model.Plant, int64, error) {
	q := r.DB.Model(&model.Plant{}).
		Joins("JOIN user_plants ON user_plants.plant_id = plants.id").
		Where("user_plants.user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var list []model.Plant
	err := q.Order("plants.id").Find(&list).Error
	return list, total, err
}
