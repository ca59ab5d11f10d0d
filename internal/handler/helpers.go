package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinel errors to HTTP status codes.
// Errors that don't carry a sentinel are internal: they get logged and the
// client sees a generic 500, never the underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTransicionEstado),
		errors.Is(err, service.ErrPedidoYaCancelado),
		errors.Is(err, service.ErrPedidoInmutable),
		errors.Is(err, service.ErrConflictoVersion),
		errors.Is(err, service.ErrEnUso):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrUnidadesIncompatibles),
		errors.Is(err, service.ErrSinRutaConversion),
		errors.Is(err, service.ErrIntegridadDatos):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrValidacion), errors.Is(err, service.ErrFechaCerrada):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Error no clasificado en handler")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
