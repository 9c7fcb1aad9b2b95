package handlers

import (
	"ecoloop/internal/config"
	"ecoloop/internal/repos"
	"ecoloop/internal/services"
)

// StorageFunc opens the local storage namespace of one session.
type StorageFunc func(sid string) services.Storage

type Deps struct {
	Storage      StorageFunc
	CookieSecure bool

	AuthHandler        *AuthHandler
	MarketplaceHandler *MarketplaceHandler
	WishlistHandler    *WishlistHandler
	SellHandler        *SellHandler
	OrderHandler       *OrderHandler
	MessageHandler     *MessageHandler
	DashboardHandler   *DashboardHandler
}

func NewDeps(cfg config.Config, storage StorageFunc) *Deps {
	listingRepo := repos.NewListingRepo()
	orderRepo := repos.NewOrderRepo()
	messageRepo := repos.NewMessageRepo()
	analyticsRepo := repos.NewAnalyticsRepo()

	catalogSvc := services.NewCatalogService(listingRepo)
	wishSvc := services.NewWishlistService(listingRepo)
	orderSvc := services.NewOrderService(orderRepo)
	msgSvc := services.NewMessageService(messageRepo)
	sellSvc := services.NewSellService(cfg.RedirectDelay)
	authSvc := services.NewAuthService(cfg.AuthDelay)
	dashSvc := &services.DashboardService{
		Analytics: analyticsRepo,
		Orders:    orderSvc,
		Catalog:   catalogSvc,
		Wishlist:  wishSvc,
	}

	return &Deps{
		Storage:      storage,
		CookieSecure: cfg.CookieSecure,

		AuthHandler:        &AuthHandler{Auth: authSvc, Sell: sellSvc, Messages: msgSvc},
		MarketplaceHandler: &MarketplaceHandler{Catalog: catalogSvc},
		WishlistHandler:    &WishlistHandler{Wish: wishSvc},
		SellHandler:        &SellHandler{Sell: sellSvc},
		OrderHandler:       &OrderHandler{Orders: orderSvc},
		MessageHandler:     &MessageHandler{Messages: msgSvc},
		DashboardHandler:   &DashboardHandler{Svc: dashSvc},
	}
}
