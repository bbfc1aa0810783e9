package mysql

import (
	"seedy/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository struct {
	DB *gorm.DB
}

func (r *RoleRepository) FindByName(name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.Where("name = ?", name).First(&role).Error
	return &role, err
}

func (r *RoleRepository) FindByID(id uint64) (*model.Role, error) {
	var role model.Role
	err := r.DB.First(&role, id).Error
	return &role, err
}

// Seed inserts the fixed role catalog, ignoring rows already present.
func (r *RoleRepository) Seed() error {
	roles := []model.Role{
		{Name: model.RoleFounder, DisplayName: "Founder"},
		{Name: model.RoleModerator, DisplayName: "Moderator"},
		{Name: model.RoleMember, DisplayName: "Member"},
		{Name: model.RoleSysAdmin, DisplayName: "Administrator"},
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&roles).Error
}
