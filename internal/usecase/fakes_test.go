package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/promoprecio/backend/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type fakeProductRepo struct {
	products []domain.Product
	nextID   int64

	substringCalls int
	universeCalls  int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{nextID: 1}
	for _, p := range products {
		p := p
		if p.ID == 0 {
			p.ID = repo.nextID
		}
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
		repo.products = append(repo.products, p)
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, *p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *fakeProductRepo) SearchSubstring(_ context.Context, term string) ([]domain.Product, error) {
	r.substringCalls++
	term = strings.ToLower(term)
	var out []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.EAN), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AllDescriptions(_ context.Context, limit int) ([]string, error) {
	r.universeCalls++
	var out []string
	for _, p := range r.products {
		if len(out) == limit {
			break
		}
		out = append(out, p.Description)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByDescriptions(_ context.Context, descriptions []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, d := range descriptions {
		for _, p := range r.products {
			if p.Description == d {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeEstablishmentRepo struct {
	establishments []domain.Establishment
	nextID         int64
}

func newFakeEstablishmentRepo(establishments ...domain.Establishment) *fakeEstablishmentRepo {
	repo := &fakeEstablishmentRepo{nextID: 1}
	for _, e := range establishments {
		e := e
		if e.ID == 0 {
			e.ID = repo.nextID
		}
		if e.ID >= repo.nextID {
			repo.nextID = e.ID + 1
		}
		repo.establishments = append(repo.establishments, e)
	}
	return repo
}

func (r *fakeEstablishmentRepo) Create(_ context.Context, e *domain.Establishment) error {
	e.ID = r.nextID
	r.nextID++
	r.establishments = append(r.establishments, *e)
	return nil
}

func (r *fakeEstablishmentRepo) GetByID(_ context.Context, id int64) (*domain.Establishment, error) {
	for _, e := range r.establishments {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEstablishmentRepo) Update(_ context.Context, e *domain.Establishment) error {
	for i := range r.establishments {
		if r.establishments[i].ID == e.ID {
			r.establishments[i] = *e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeEstablishmentRepo) Delete(_ context.Context, id int64) error {
	for i := range r.establishments {
		if r.establishments[i].ID == id {
			r.establishments = append(r.establishments[:i], r.establishments[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeEstablishmentRepo) List(_ context.Context) ([]domain.Establishment, error) {
	return append([]domain.Establishment(nil), r.establishments...), nil
}

func (r *fakeEstablishmentRepo) SearchSubstring(_ context.Context, term string) ([]domain.Establishment, error) {
	term = strings.ToLower(term)
	var out []domain.Establishment
	for _, e := range r.establishments {
		if strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Neighborhood), term) ||
			strings.Contains(strings.ToLower(e.City), term) ||
			strings.Contains(strings.ToLower(e.CNPJ), term) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEstablishmentRepo) AllNames(_ context.Context, limit int) ([]string, error) {
	var out []string
	for _, e := range r.establishments {
		if len(out) == limit {
			break
		}
		out = append(out, e.Name)
	}
	return out, nil
}

func (r *fakeEstablishmentRepo) FindByNames(_ context.Context, names []string) ([]domain.Establishment, error) {
	var out []domain.Establishment
	for _, n := range names {
		for _, e := range r.establishments {
			if e.Name == n {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakePriceRepo struct {
	establishments *fakeEstablishmentRepo
	observations   []domain.PriceObservation
	nextID         int64
}

func newFakePriceRepo(establishments *fakeEstablishmentRepo) *fakePriceRepo {
	return &fakePriceRepo{establishments: establishments, nextID: 1}
}

func (r *fakePriceRepo) Create(_ context.Context, o *domain.PriceObservation) error {
	if o.ID == 0 {
		o.ID = r.nextID
	}
	if o.ID >= r.nextID {
		r.nextID = o.ID + 1
	}
	r.observations = append(r.observations, *o)
	return nil
}

func (r *fakePriceRepo) join(o domain.PriceObservation) domain.EstablishmentPrice {
	for _, e := range r.establishments.establishments {
		if e.ID == o.EstablishmentID {
			return domain.EstablishmentPrice{Observation: o, Establishment: e}
		}
	}
	return domain.EstablishmentPrice{Observation: o}
}

func (r *fakePriceRepo) ListByProduct(_ context.Context, productID int64) ([]domain.EstablishmentPrice, error) {
	var out []domain.EstablishmentPrice
	for _, o := range r.observations {
		if o.ProductID == productID {
			out = append(out, r.join(o))
		}
	}
	return out, nil
}

func (r *fakePriceRepo) History(_ context.Context, productID int64, since time.Time) ([]domain.EstablishmentPrice, error) {
	var out []domain.EstablishmentPrice
	for _, o := range r.observations {
		if o.ProductID == productID && !o.CollectedAt.Before(since) {
			out = append(out, r.join(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Observation.CollectedAt.After(out[j].Observation.CollectedAt)
	})
	return out, nil
}

func (r *fakePriceRepo) Filter(_ context.Context, f domain.PriceFilter) ([]domain.EstablishmentPrice, error) {
	var out []domain.EstablishmentPrice
	for _, o := range r.observations {
		if f.ProductID != 0 && o.ProductID != f.ProductID {
			continue
		}
		if f.EstablishmentID != 0 && o.EstablishmentID != f.EstablishmentID {
			continue
		}
		if f.MinValue != nil && o.Value.LessThan(*f.MinValue) {
			continue
		}
		if f.MaxValue != nil && o.Value.GreaterThan(*f.MaxValue) {
			continue
		}
		out = append(out, r.join(o))
	}
	return out, nil
}

type fakeListRepo struct {
	products *fakeProductRepo
	lists    []domain.ShoppingList
	items    []domain.ShoppingListItem
	nextID   int64
}

func newFakeListRepo(products *fakeProductRepo) *fakeListRepo {
	return &fakeListRepo{products: products, nextID: 1}
}

func (r *fakeListRepo) CreateList(_ context.Context, l *domain.ShoppingList) error {
	l.ID = r.nextID
	r.nextID++
	l.CreatedAt = time.Now()
	r.lists = append(r.lists, *l)
	return nil
}

func (r *fakeListRepo) GetList(_ context.Context, id int64) (*domain.ShoppingList, error) {
	for _, l := range r.lists {
		if l.ID == id && l.Active {
			l := l
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeListRepo) ListLists(_ context.Context) ([]domain.ShoppingList, error) {
	var out []domain.ShoppingList
	for _, l := range r.lists {
		if l.Active {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListRepo) DeactivateList(_ context.Context, id int64) error {
	for i := range r.lists {
		if r.lists[i].ID == id {
			r.lists[i].Active = false
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeListRepo) AddItem(_ context.Context, item *domain.ShoppingListItem) error {
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeListRepo) GetItem(_ context.Context, listID, itemID int64) (*domain.ShoppingListItem, error) {
	for _, it := range r.items {
		if it.ID == itemID && it.ListID == listID {
			it := it
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeListRepo) GetItemByProduct(_ context.Context, listID, productID int64) (*domain.ShoppingListItem, error) {
	for _, it := range r.items {
		if it.ListID == listID && it.ProductID == productID {
			it := it
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeListRepo) UpdateItem(_ context.Context, item *domain.ShoppingListItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeListRepo) DeleteItem(_ context.Context, listID, itemID int64) error {
	for i := range r.items {
		if r.items[i].ID == itemID && r.items[i].ListID == listID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeListRepo) ItemsWithProducts(_ context.Context, listID int64) ([]domain.ListItemDetail, error) {
	var out []domain.ListItemDetail
	for _, it := range r.items {
		if it.ListID != listID {
			continue
		}
		detail := domain.ListItemDetail{Item: it}
		for _, p := range r.products.products {
			if p.ID == it.ProductID {
				detail.Product = p
				break
			}
		}
		out = append(out, detail)
	}
	return out, nil
}
