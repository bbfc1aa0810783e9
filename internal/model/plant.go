package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type Plant struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	ScientificName string     `gorm:"uniqueIndex;size:128;not null" json:"scientific_name"`
	Family         string     `gorm:"size:128;not null" json:"family"`
	Images         StringList `gorm:"type:json;not null" json:"images"`
	CommonNames    StringList `gorm:"type:json" json:"common_names"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// UserPlant is a pure association row, no timestamps.
type UserPlant struct {
	ID      uint64 `gorm:"primaryKey"`
	UserID  uint64 `gorm:"not null;index;uniqueIndex:uk_user_plant"`
	PlantID uint64 `gorm:"not null;uniqueIndex:uk_user_plant"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Plant *Plant `gorm:"foreignKey:PlantID;constraint:OnDelete:CASCADE"`
}

func (UserPlant) TableName() string { return "user_plants" }
