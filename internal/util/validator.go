package util

import (
	"github.com/go-playground/validator/v10"

	"github.com/dropstats/backend/internal/constant"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("gameserver", gameServer)

	return validate
}

func gameServer(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	_, ok := constant.ServerMap[val]
	return ok
}
