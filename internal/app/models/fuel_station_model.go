package models

import (
	"time"

	"github.com/google/uuid"
)

type FuelStation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	City      string    `json:"city" gorm:"type:varchar(100)"`
	Address   string    `json:"address" gorm:"type:varchar(300)"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type FuelStationCreateRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	City    string `json:"city" validate:"omitempty,max=100"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

type FuelStationUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Active  *bool   `json:"active,omitempty"`
}
