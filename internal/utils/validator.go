package utils

import (
	"sync"

	"Recipe-Box-Backend/entities"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		Validate = validator.New()
		_ = Validate.RegisterValidation("servings_unit", validateServingsUnit)
	})
}

func validateServingsUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case entities.ServingsUnitNumber, entities.ServingsUnitSpringform, entities.ServingsUnitBakingTray:
		return true
	}
	return false
}
