package models

import (
	"time"

	"github.com/google/uuid"
)

type Driver struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string     `json:"name" gorm:"type:varchar(200);not null"`
	DocID            string     `json:"doc_id" gorm:"type:varchar(20)"`
	Phone            string     `json:"phone" gorm:"type:varchar(20)"`
	CurrentVehicleID *uuid.UUID `json:"current_vehicle_id,omitempty" gorm:"type:uuid"`
	Active           bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Lookup convenience only, not ownership.
	CurrentVehicle *Vehicle `json:"current_vehicle,omitempty" gorm:"foreignKey:CurrentVehicleID"`
}

type DriverCreateRequest struct {
	Name             string  `json:"name" validate:"required,max=200"`
	DocID            string  `json:"doc_id" validate:"omitempty,max=20"`
	Phone            string  `json:"phone" validate:"omitempty,max=20"`
	CurrentVehicleID *string `json:"current_vehicle_id,omitempty" validate:"omitempty,uuid"`
}

type DriverUpdateRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,max=200"`
	DocID            *string `json:"doc_id,omitempty" validate:"omitempty,max=20"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	CurrentVehicleID *string `json:"current_vehicle_id,omitempty" validate:"omitempty,uuid"`
	Active           *bool   `json:"active,omitempty"`
}
