package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
)

// BusinessMiddleware resolves the business from the :business_id path
// parameter, verifies it exists and stores it in the request context for the
// handlers and the rate limiter.
func BusinessMiddleware(businessRepo repository.BusinessRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, err := uuid.Parse(c.Param("business_id"))
		if err != nil {
			response.BadRequest(c, "Invalid business ID")
			c.Abort()
			return
		}

		business, err := businessRepo.GetByID(c.Request.Context(), businessID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if business == nil {
			response.NotFound(c, "Business not found")
			c.Abort()
			return
		}

		c.Set("business_id", business.ID)
		c.Set("business", business)

		c.Next()
	}
}

// GetBusinessID retrieves the business ID from gin context
func GetBusinessID(c *gin.Context) uuid.UUID {
	businessID, exists := c.Get("business_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := businessID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
