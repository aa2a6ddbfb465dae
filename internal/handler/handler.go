// Package handler exposes the conversion service over HTTP.
package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

type Handler struct {
	cfg       *config.Config
	service   converter.Service
	validator *validator.Validate
	logger    logger.Logger
}

func New(cfg *config.Config, svc converter.Service, v *validator.Validate, log logger.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		service:   svc,
		validator: v,
		logger:    log,
	}
}

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
