package services

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
)

func newTestConfigService(t *testing.T) (*ConfigService, *SqliteService) {
	t.Helper()
	s := newTestSqlService(t)
	return &ConfigService{sqlSvc: s, redisSvc: &RedisService{}}, s
}

func TestConfigGetCreatesDefaults(t *testing.T) {
	svc, s := newTestConfigService(t)

	cfg, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "FastBite", cfg.RestaurantName)
	assert.Equal(t, "MXN", cfg.Currency)
	assert.Equal(t, 0.10, cfg.TaxRate)

	// The singleton is created once.
	_, err = svc.Get()
	require.NoError(t, err)
	var count int64
	s.Db().Model(&model.RestaurantConfig{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestConfigUpdatePartial(t *testing.T) {
	svc, _ := newTestConfigService(t)

	newRate := 0.16
	updated, err := svc.Update(&dto.UpdateConfigRequest{
		RestaurantName: "FastBite Centro",
		TaxRate:        &newRate,
	})
	require.NoError(t, err)

	assert.Equal(t, "FastBite Centro", updated.RestaurantName)
	assert.Equal(t, 0.16, updated.TaxRate)
	assert.Equal(t, "MXN", updated.Currency, "unset fields keep their defaults")
}

func TestTaxRateFollowsConfig(t *testing.T) {
	svc, _ := newTestConfigService(t)

	assert.Equal(t, 0.10, svc.TaxRate())

	newRate := 0.16
	_, err := svc.Update(&dto.UpdateConfigRequest{TaxRate: &newRate})
	require.NoError(t, err)

	assert.Equal(t, 0.16, svc.TaxRate())
}

func TestConfigUpdatePersistsExtras(t *testing.T) {
	svc, s := newTestConfigService(t)

	updated, err := svc.Update(&dto.UpdateConfigRequest{
		Extras: map[string]interface{}{
			"facebook":           "fastbite.mx",
			"delivery_radius_km": 5,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, updated.Extras)

	var reloaded model.RestaurantConfig
	require.NoError(t, s.Db().First(&reloaded).Error)

	var extras map[string]interface{}
	require.NoError(t, sonic.Unmarshal(reloaded.Extras, &extras))
	assert.Equal(t, "fastbite.mx", extras["facebook"])
	assert.Equal(t, float64(5), extras["delivery_radius_km"])

	// An update without extras leaves the column alone.
	_, err = svc.Update(&dto.UpdateConfigRequest{RestaurantName: "FastBite Norte"})
	require.NoError(t, err)

	require.NoError(t, s.Db().First(&reloaded).Error)
	require.NoError(t, sonic.Unmarshal(reloaded.Extras, &extras))
	assert.Equal(t, "fastbite.mx", extras["facebook"])
}
