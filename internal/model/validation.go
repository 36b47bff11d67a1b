package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding validators for the enum-valued request fields. Registered
// once at package load so every handler gets them.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("contact_status", func(fl validator.FieldLevel) bool {
		return ContactStatus(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("outreach_channel", func(fl validator.FieldLevel) bool {
		return Channel(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return TaskStatus(fl.Field().String()).IsValid()
	})
}
