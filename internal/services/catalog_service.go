package services

import (
	"brocante/internal/domain"
	"brocante/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List returns the filtered storefront view, capped at 50 records.
func (s *CatalogService) List(f repos.Filter) ([]domain.Product, error) {
	switch f.Sort {
	case "price-asc", "price-desc", "newest":
	default:
		f.Sort = "newest"
	}
	return s.Prods.ListAvailable(f)
}

// Featured returns the newest available products for the home page.
func (s *CatalogService) Featured(n int) ([]domain.Product, error) {
	prods, err := s.Prods.ListAvailable(repos.Filter{Sort: "newest"})
	if err != nil {
		return nil, err
	}
	if n > 0 && len(prods) > n {
		prods = prods[:n]
	}
	return prods, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

// ResolveFavorites looks up the client-side favorites set against live
// product records, preserving the saved order.
func (s *CatalogService) ResolveFavorites(ids []string) ([]domain.Product, error) {
	prods, err := s.Prods.ByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
