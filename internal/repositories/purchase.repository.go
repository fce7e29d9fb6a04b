package repositories

import (
	"fmt"
	"sort"

	"gamestore/internal/database"
	. "gamestore/internal/models"

	"github.com/shopspring/decimal"
)

type PurchaseRepository interface {
	NextID() int
	Create(purchase *Purchase) error
	GetAll() []*Purchase
	GetByUser(userID int) []*Purchase
	SalesByDeveloper() []DeveloperSales
}

type purchaseRepository struct {
	store *database.Store
}

func NewPurchaseRepository(db database.DB) PurchaseRepository {
	return &purchaseRepository{store: db.Store}
}

func (r *purchaseRepository) NextID() int {
	return r.store.Purchases.NextID()
}

func (r *purchaseRepository) Create(purchase *Purchase) error {
	if err := r.store.Purchases.Insert(purchase.ID, purchase); err != nil {
		return fmt.Errorf("%w: purchase %d already exists", ErrConflict, purchase.ID)
	}
	return nil
}

func (r *purchaseRepository) GetAll() []*Purchase {
	return r.store.Purchases.All()
}

func (r *purchaseRepository) GetByUser(userID int) []*Purchase {
	return r.store.Purchases.Filter(func(p *Purchase) bool { return p.UserID == userID })
}

// SalesByDeveloper totals units and revenue per developer, sorted by developer name.
func (r *purchaseRepository) SalesByDeveloper() []DeveloperSales {
	totals := make(map[string]*DeveloperSales)
	for _, purchase := range r.store.Purchases.All() {
		sales, ok := totals[purchase.Developer]
		if !ok {
			sales = &DeveloperSales{Developer: purchase.Developer, Revenue: decimal.Zero}
			totals[purchase.Developer] = sales
		}
		sales.Units++
		sales.Revenue = sales.Revenue.Add(purchase.Price)
	}

	report := make([]DeveloperSales, 0, len(totals))
	for _, sales := range totals {
		report = append(report, *sales)
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].Developer < report[j].Developer
	})
	return report
}
