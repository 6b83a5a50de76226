package get_shop_status

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetShopStatus(ctx context.Context) (*models.ShopStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
