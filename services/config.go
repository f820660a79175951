package services

import (
	ctx "context"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// ConfigService serves the restaurant configuration singleton. The row is
// created with defaults on first read and cached in redis.
type ConfigService struct {
	context.DefaultService

	sqlSvc   SqlService
	redisSvc *RedisService
}

const CONFIG_SVC = "config_svc"

const (
	configCacheKey = "config:restaurant"
	configCacheTTL = 10 * time.Minute

	defaultTaxRate = 0.10
)

func (svc ConfigService) Id() string {
	return CONFIG_SVC
}

func (svc *ConfigService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ConfigService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Get returns the singleton config, creating it with defaults if missing.
func (svc *ConfigService) Get() (*model.RestaurantConfig, error) {
	c, cancel := ctx.WithTimeout(ctx.Background(), 2*time.Second)
	defer cancel()

	var cached model.RestaurantConfig
	hit, err := svc.redisSvc.GetJSON(c, configCacheKey, &cached)
	if err != nil {
		log.WithError(err).Warn("Config cache read failed")
	}
	if hit {
		return &cached, nil
	}

	var cfg model.RestaurantConfig
	err = svc.sqlSvc.Db().First(&cfg).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, svc.sqlSvc.HandleError(err)
		}

		cfg = model.RestaurantConfig{
			ID:             uuid.Must(uuid.NewV7()).String(),
			RestaurantName: "FastBite",
			Country:        "México",
			Currency:       "MXN",
			TaxRate:        defaultTaxRate,
		}
		if err := svc.sqlSvc.Db().Create(&cfg).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	if err := svc.redisSvc.Set(c, configCacheKey, cfg, configCacheTTL); err != nil {
		log.WithError(err).Warn("Config cache write failed")
	}

	return &cfg, nil
}

// Update applies partial changes to the singleton and drops the cache.
func (svc *ConfigService) Update(req *dto.UpdateConfigRequest) (*model.RestaurantConfig, error) {
	cfg, err := svc.Get()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.RestaurantName != "" {
		updates["restaurant_name"] = req.RestaurantName
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.TaxRate != nil {
		updates["tax_rate"] = *req.TaxRate
	}
	if req.Telefono != "" {
		updates["telefono"] = req.Telefono
	}
	if req.Direccion != "" {
		updates["direccion"] = req.Direccion
	}
	if req.Horario != "" {
		updates["horario"] = req.Horario
	}
	if req.Extras != nil {
		raw, err := sonic.Marshal(req.Extras)
		if err != nil {
			return nil, shared.ErrBadRequest("Extras no serializable")
		}
		updates["extras"] = datatypes.JSON(raw)
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(&model.RestaurantConfig{}).Where("id = ?", cfg.ID).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	c, cancel := ctx.WithTimeout(ctx.Background(), 2*time.Second)
	defer cancel()
	if err := svc.redisSvc.Delete(c, configCacheKey); err != nil {
		log.WithError(err).Warn("Config cache invalidation failed")
	}

	return svc.Get()
}

// TaxRate returns the configured rate, falling back to the default when the
// config cannot be read. Order pricing must not fail on a cache hiccup.
func (svc *ConfigService) TaxRate() float64 {
	cfg, err := svc.Get()
	if err != nil {
		log.WithError(err).Warn("Falling back to default tax rate")
		return defaultTaxRate
	}
	return cfg.TaxRate
}
