package handlers

import (
	"github.com/jmoiron/sqlx"

	"brocante/internal/mail"
	"brocante/internal/repos"
	"brocante/internal/services"
	"brocante/internal/storage"
)

type Deps struct {
	ShopHandler      *ShopHandler
	CartHandler      *CartHandler
	FavoritesHandler *FavoritesHandler
	OrderHandler     *OrderHandler
	NotifyHandler    *NotifyHandler
	AdminHandler     *AdminHandler
	PagesHandler     *PagesHandler
}

func NewDeps(db *sqlx.DB, mailer mail.Mailer, uploader storage.Uploader) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(orderRepo, mailer)

	return &Deps{
		ShopHandler:      &ShopHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Catalog: catalogSvc},
		FavoritesHandler: &FavoritesHandler{Catalog: catalogSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc, Repo: orderRepo},
		NotifyHandler:    &NotifyHandler{Mail: mailer},
		AdminHandler: &AdminHandler{
			Catalog:  catalogSvc,
			Order:    orderSvc,
			Orders:   orderRepo,
			Products: prodRepo,
			Uploader: uploader,
		},
		PagesHandler: &PagesHandler{},
	}
}
