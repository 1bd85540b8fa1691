package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
)

// writeDomainError translates domain and use-case errors into the
// wire format: field validation failures become field-scoped 400s,
// business rule codes become 400s (404 for *_not_found), anything
// else is a 500.
func writeDomainError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		httperr.Validation(c, ve.Field, ve.Code)
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if strings.HasSuffix(code, "_not_found") {
			httperr.NotFound(c, code, "Resource not found.")
			return
		}
		httperr.BadRequest(c, code, "The request was rejected by a business rule.")
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong.")
}
