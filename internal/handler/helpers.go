package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/apierror"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/middleware"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

	// Report fields under their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Corps de requête JSON invalide"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New("Requête invalide"))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// fieldPath drops the root struct name: "PeriodePrixRequest.lignes[0].ug_id" → "lignes[0].ug_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// respondError maps service errors onto HTTP statuses. Anything not known to
// the domain is attached to the context for ErrorHandler, which logs it and
// answers with the generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConflit):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}

// acteur builds the caller identity from the verified JWT claims.
func acteur(c *gin.Context) (service.Acteur, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentification requise"))
		return service.Acteur{}, false
	}
	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Jeton incomplet"))
		return service.Acteur{}, false
	}
	userID, _ := uuid.Parse(claims.UserID)
	return service.Acteur{CompanyID: companyID, UserID: userID, Role: claims.Role}, true
}

// uuidParam parses a path parameter, answering 404 when it is not an id:
// no resource can live there.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(service.ErrNotFound.Error()))
		return uuid.Nil, false
	}
	return id, true
}

func versionParam(c *gin.Context) (int, bool) {
	v, err := strconv.Atoi(c.Param("version"))
	if err != nil || v < 1 {
		c.JSON(http.StatusNotFound, apierror.New(service.ErrNotFound.Error()))
		return 0, false
	}
	return v, true
}
