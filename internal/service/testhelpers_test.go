package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/infra"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fixture struct {
	db          *gorm.DB
	acteur      Acteur
	batiment    model.Batiment
	ugs         []model.UG
	autreUG     model.UG // belongs to another building of the same company
	cache       *memCache
	prix        PeriodePrixService
	conventions ConventionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		db:     db,
		acteur: Acteur{CompanyID: uuid.New(), UserID: uuid.New(), Role: "admin"},
		cache:  newMemCache(),
	}

	f.batiment = model.Batiment{CompanyID: f.acteur.CompanyID, Nom: "Pépinière Nord"}
	require.NoError(t, db.Create(&f.batiment).Error)
	autre := model.Batiment{CompanyID: f.acteur.CompanyID, Nom: "Centre Sud"}
	require.NoError(t, db.Create(&autre).Error)

	for _, nom := range []string{"B101", "B102", "B103"} {
		u := model.UG{
			CompanyID:  f.acteur.CompanyID,
			BatimentID: f.batiment.ID,
			Nom:        nom,
			Nature:     "bureau",
			Surface:    decimal.NewFromInt(20),
		}
		require.NoError(t, db.Create(&u).Error)
		f.ugs = append(f.ugs, u)
	}
	f.autreUG = model.UG{
		CompanyID:  f.acteur.CompanyID,
		BatimentID: autre.ID,
		Nom:        "S001",
		Nature:     "atelier",
		Surface:    decimal.NewFromInt(80),
	}
	require.NoError(t, db.Create(&f.autreUG).Error)

	batimentRepo := repository.NewBatimentRepository(db)
	txOpts := TxOptions{Serializable: true, MaxRetries: 3}
	f.prix = NewPeriodePrixService(repository.NewPeriodePrixRepository(db), batimentRepo, f.cache, txOpts)
	f.conventions = NewConventionService(repository.NewConventionRepository(db), batimentRepo, nil, txOpts)
	return f
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// memCache is an in-process PrixCache with the same generation rule as the
// Redis one. It counts its traffic; beforeSet runs ahead of every fill.
type memCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	data        map[string]map[string][]byte
	hits        int
	invalidated int
	beforeSet   func()
}

func newMemCache() *memCache {
	return &memCache{gens: map[string]int64{}, data: map[string]map[string][]byte{}}
}

func memKey(owner string, gen int64) string { return fmt.Sprintf("%s:%d", owner, gen) }

func (c *memCache) Get(_ context.Context, owner, field string) ([]byte, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[owner]
	b, ok := c.data[memKey(owner, gen)][field]
	if ok {
		c.hits++
	}
	return b, gen, ok
}

func (c *memCache) Set(_ context.Context, owner string, gen int64, field string, payload []byte) {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := memKey(owner, gen)
	if c.data[key] == nil {
		c.data[key] = map[string][]byte{}
	}
	c.data[key][field] = payload
}

func (c *memCache) Invalidate(_ context.Context, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, memKey(owner, c.gens[owner]))
	c.gens[owner]++
	c.invalidated++
}
