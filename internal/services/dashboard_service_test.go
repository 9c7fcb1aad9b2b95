package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoloop/internal/domain"
	"ecoloop/internal/repos"
	"ecoloop/internal/services"
	"ecoloop/internal/wizard"
)

func newDashboard() *services.DashboardService {
	listings := repos.NewListingRepo()
	return &services.DashboardService{
		Analytics: repos.NewAnalyticsRepo(),
		Orders:    services.NewOrderService(repos.NewOrderRepo()),
		Catalog:   services.NewCatalogService(listings),
		Wishlist:  services.NewWishlistService(listings),
	}
}

func TestSellerDashboard(t *testing.T) {
	d := newDashboard().For(domain.User{Role: domain.RoleSeller}, nil)
	require.NotNil(t, d.Seller)
	assert.Nil(t, d.Buyer)
	assert.Equal(t, 450000+680000+920000, d.Seller.TotalRevenue)
	assert.Equal(t, 54, d.Seller.TotalOrders)
	assert.Equal(t, 3, d.Seller.ActiveListings)
	assert.Equal(t, 125000, d.Seller.PendingAmount)
}

func TestBuyerDashboard(t *testing.T) {
	st := newMem()
	st.kv[services.KeyWishlist] = "[1,2]"
	saved := services.NewSavedItems(st)
	require.NoError(t, saved.Hydrate())

	d := newDashboard().For(domain.User{Role: domain.RoleBuyer}, saved)
	require.NotNil(t, d.Buyer)
	assert.Nil(t, d.Seller)
	assert.Equal(t, 2, d.Buyer.SavedCount)
	assert.Equal(t, 72500+180000, d.Buyer.SavedValue)
	assert.Equal(t, []int{1, 2, 4, 8}, ids(d.Buyer.Featured))
	assert.LessOrEqual(t, len(d.Buyer.RecentOrders), 3)
}

func TestSellServiceDropsDraftAfterRedirect(t *testing.T) {
	svc := services.NewSellService(0)
	w := svc.Wizard("sid")
	assert.Same(t, w, svc.Wizard("sid"))

	require.NoError(t, w.SelectItemType("pcb"))
	require.NoError(t, w.SetSpec("Server PCB"))
	require.NoError(t, w.SetCondition("Corroded"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPrice("2500"))
	require.NoError(t, w.SetLocation("Chennai"))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetAcceptTerms(true))

	_, err := w.Submit()
	require.NoError(t, err)
	assert.False(t, svc.Active("sid"))
	assert.Equal(t, wizard.StepItemType, svc.Wizard("sid").Step())
}

func TestSellServiceKeepsDraftUntilRedirect(t *testing.T) {
	svc := services.NewSellService(time.Hour)
	w := svc.Wizard("sid")
	require.NoError(t, w.SelectItemType("tv"))
	assert.True(t, svc.Active("sid"))

	svc.Reset("sid")
	assert.False(t, svc.Active("sid"))
	assert.NotSame(t, w, svc.Wizard("sid"))
}

func TestSellServiceEvictsIdleDrafts(t *testing.T) {
	svc := services.NewSellService(time.Hour)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	require.NoError(t, svc.Wizard("old").SelectItemType("tv"))
	now = now.Add(services.IdleTTL / 2)
	svc.Wizard("kept")

	now = now.Add(services.IdleTTL/2 + time.Minute)
	svc.Wizard("new")
	assert.False(t, svc.Active("old"))
	assert.True(t, svc.Active("kept"))
	assert.Equal(t, wizard.StepItemType, svc.Wizard("old").Step())
}
