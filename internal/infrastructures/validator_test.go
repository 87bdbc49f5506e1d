package infrastructures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
)

type validatedRequest struct {
	Name      string `validate:"required,max=10"`
	VehicleID string `validate:"omitempty,uuid"`
	FuelType  string `validate:"omitempty,oneof=GASOLINE ETHANOL DIESEL"`
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&validatedRequest{Name: "Strada 01", FuelType: "DIESEL"})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&validatedRequest{VehicleID: "not-a-uuid", FuelType: "KEROSENE"})
	assert.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "vehicle_id")
	assert.Contains(t, appErr.Fields, "fuel_type")
	assert.Equal(t, "This field is required", appErr.Fields["name"])
	assert.Equal(t, "Must be a valid UUID", appErr.Fields["vehicle_id"])
}

func TestValidateNilRequest(t *testing.T) {
	v := NewValidator()

	assert.Error(t, v.Validate(nil))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "vehicle_id", toSnakeCase("VehicleID"))
	assert.Equal(t, "name", toSnakeCase("Name"))
	assert.Equal(t, "min_expected_km_per_liter", toSnakeCase("MinExpectedKmPerLiter"))
	assert.Equal(t, "odometer_km", toSnakeCase("OdometerKm"))
}
