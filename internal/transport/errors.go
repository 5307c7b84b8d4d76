package transport

import (
	"errors"
	"net/http"

	"github.com/Nayelic98/backend-spring-01/internal/middleware"
	"github.com/Nayelic98/backend-spring-01/internal/pagination"
	"github.com/Nayelic98/backend-spring-01/internal/repository"
	"github.com/Nayelic98/backend-spring-01/internal/service"

	"go.uber.org/zap"
)

// respondServiceError maps service and repository errors onto the HTTP error
// taxonomy: invalid parameters are 400, missing references 404, duplicate
// names 409, ownership failures 403. Anything unrecognized is a 500 and gets
// logged at error level.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidPageSize),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrInvalidFilter):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrProductNameTaken),
		errors.Is(err, repository.ErrUserAlreadyExists),
		errors.Is(err, repository.ErrCategoryAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrAccessDenied):
		middleware.RespondWithError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())

	default:
		logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondBadRequest handles decode/validation failures for JSON payloads
func respondBadRequest(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
