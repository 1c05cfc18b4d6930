package middleware

import (
	"net/http"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// RequireRole checks that the authenticated identity currently holds the
// given role. The role is re-resolved from the user store on every request
// and never read from the token, so promotions and demotions take effect
// immediately, and a caller can never assert another identity's role.
func RequireRole(users *service.UserService, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		resolved, err := users.RoleOf(c.Request.Context(), claims.Email)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		if resolved != role {
			response.AbortFail(c, http.StatusForbidden, forbiddenCode(role))
			return
		}

		c.Next()
	}
}

func forbiddenCode(role model.Role) response.ErrCode {
	switch role {
	case model.RoleAdmin:
		return response.ErrAdminOnly
	case model.RoleInstructor:
		return response.ErrInstructorOnly
	default:
		return response.ErrForbidden
	}
}
