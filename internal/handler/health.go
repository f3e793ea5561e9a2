package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statusConnected = "connected"
	statusError     = "error"
	statusDisabled  = "disabled"
)

// Health godoc
// @Summary  État des dépendances
// @Description  503 si la base est injoignable ou si Redis est configuré mais ne répond pas.
// @Tags     health
// @Produce  json
// @Success  200 {object} dto.HealthResponse
// @Failure  503 {object} dto.HealthResponse
// @Router   /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		resp := dto.HealthResponse{
			DB:      pingDB(ctx, db),
			Dialect: db.Dialector.Name(),
			Redis:   statusDisabled,
		}
		if rdb != nil {
			resp.Redis = statusConnected
			if rdb.Ping(ctx).Err() != nil {
				resp.Redis = statusError
			}
		}
		resp.OK = resp.DB == statusConnected && resp.Redis != statusError

		code := http.StatusOK
		if !resp.OK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return statusError
	}
	return statusConnected
}
