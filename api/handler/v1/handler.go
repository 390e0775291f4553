package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lotto/api/handler/v1/response"
	"lotto/api/middleware"
	"lotto/domain/entities"
	"lotto/domain/services"
)

// authUserID reads the caller's identity placed on the context by the JWT
// middleware
func authUserID(ctx *gin.Context) (uuid.UUID, *response.Err) {
	value, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return uuid.Nil, response.ErrUnauthorized("missing authentication")
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.ErrUnauthorized("missing authentication")
	}
	return userID, nil
}

// mapDomainErr translates domain errors into HTTP responses. Anything
// unrecognized is a server fault.
func mapDomainErr(err error) *response.Err {
	var (
		insufficientFunds *entities.InsufficientFundsError
		invalidSelection  *entities.InvalidSelectionError
		invalidNumbers    *entities.InvalidWinningNumbersError
		notScheduled      *entities.DrawNotScheduledError
		alreadyProcessed  *entities.AlreadyProcessedError
		notFound          *entities.NotFoundError
	)

	switch {
	case errors.As(err, &insufficientFunds),
		errors.As(err, &invalidSelection),
		errors.As(err, &invalidNumbers),
		errors.Is(err, services.ErrEmailTaken):
		return response.ErrBadRequest(err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.ErrUnauthorized(err.Error())
	case errors.As(err, &notFound):
		return response.ErrNotFound(notFound.Kind, "ID", notFound.ID)
	case errors.As(err, &notScheduled),
		errors.As(err, &alreadyProcessed),
		errors.Is(err, entities.ErrScheduledDrawExists):
		return response.ErrConflict(err)
	default:
		return response.ErrInternalServerError(err)
	}
}
