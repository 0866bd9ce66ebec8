// Package memstore is an in-process store.Store used by tests and by the
// STORE_DRIVER=memory mode. It enforces the same unique keys as the Mongo
// indexes.
package memstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"filter-backend/internal/models"
	"filter-backend/internal/store"
)

type record[T any] struct {
	seq int64
	doc T
}

type Store struct {
	mu        sync.RWMutex
	seq       int64
	customers []record[models.Customer]
	providers []record[models.Provider]
	items     []record[models.CatalogItem]
	orders    []record[models.Order]
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// ---- customers ----

func (s *Store) FindCustomerByPhone(_ context.Context, phone string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.customers {
		if r.doc.Phone == phone {
			c := r.doc
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.customers {
		if r.doc.Email != "" && r.doc.Email == email {
			c := r.doc
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) InsertCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.customers {
		if r.doc.Phone == customer.Phone || (customer.Email != "" && r.doc.Email == customer.Email) {
			return store.ErrDuplicate
		}
	}
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	s.customers = append(s.customers, record[models.Customer]{seq: s.next(), doc: *customer})
	return nil
}

// ---- providers ----

func (s *Store) findProvider(match func(models.Provider) bool) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.providers {
		if match(r.doc) {
			p := r.doc
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindProviderByID(_ context.Context, id primitive.ObjectID) (*models.Provider, error) {
	return s.findProvider(func(p models.Provider) bool { return p.ID == id })
}

func (s *Store) FindProviderByMobile(_ context.Context, mobile string) (*models.Provider, error) {
	return s.findProvider(func(p models.Provider) bool { return p.MobileNumber != "" && p.MobileNumber == mobile })
}

func (s *Store) FindOwnerByMobile(_ context.Context, mobile string) (*models.Provider, error) {
	return s.findProvider(func(p models.Provider) bool {
		return p.Type == models.ProviderTypeOwner && p.MobileNumber != "" && p.MobileNumber == mobile
	})
}

func (s *Store) FindProviderByEmail(_ context.Context, email string) (*models.Provider, error) {
	return s.findProvider(func(p models.Provider) bool { return p.Email != "" && p.Email == email })
}

func (s *Store) InsertProvider(_ context.Context, provider *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.providers {
		if provider.MobileNumber != "" && r.doc.MobileNumber == provider.MobileNumber {
			return store.ErrDuplicate
		}
	}
	if provider.ID.IsZero() {
		provider.ID = primitive.NewObjectID()
	}
	s.providers = append(s.providers, record[models.Provider]{seq: s.next(), doc: *provider})
	return nil
}

func (s *Store) ListProviders(_ context.Context, page store.Page) ([]models.Provider, error) {
	s.mu.RLock()
	matched := make([]record[models.Provider], 0, len(s.providers))
	for _, r := range s.providers {
		if r.doc.Status != models.ProviderStatusRejected {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(matched, func(p models.Provider) int64 { return p.CreatedAt.UnixNano() })
	docs := unwrap(matched)
	return paginate(docs, page), nil
}

// ---- catalog ----

func (s *Store) InsertItem(_ context.Context, item *models.CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	for _, r := range s.items {
		if r.doc.ID == item.ID {
			return store.ErrDuplicate
		}
	}
	s.items = append(s.items, record[models.CatalogItem]{seq: s.next(), doc: cloneItem(*item)})
	return nil
}

func (s *Store) FindItemByID(_ context.Context, id primitive.ObjectID) (*models.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.items {
		if r.doc.ID == id {
			item := cloneItem(r.doc)
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListItemsByProvider(_ context.Context, providerID string) ([]models.CatalogItem, error) {
	s.mu.RLock()
	matched := make([]record[models.CatalogItem], 0)
	for _, r := range s.items {
		if r.doc.ProviderID == providerID {
			matched = append(matched, record[models.CatalogItem]{seq: r.seq, doc: cloneItem(r.doc)})
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(matched, func(i models.CatalogItem) int64 { return i.CreatedAt.UnixNano() })
	return unwrap(matched), nil
}

func (s *Store) UpdateItem(_ context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.doc.ID != item.ID {
			continue
		}
		updated := cloneItem(*item)
		updated.ProviderID = r.doc.ProviderID
		updated.CreatedAt = r.doc.CreatedAt
		s.items[i].doc = updated
		out := cloneItem(updated)
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteItem(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.doc.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ---- orders ----

func (s *Store) InsertOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, record[models.Order]{seq: s.next(), doc: *order})
	return nil
}

func (s *Store) ListOrdersByCustomer(_ context.Context, customerID string) ([]models.Order, error) {
	s.mu.RLock()
	matched := make([]record[models.Order], 0)
	for _, r := range s.orders {
		if r.doc.CustomerID == customerID {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(matched, func(o models.Order) int64 { return o.CreatedAt.UnixNano() })
	return unwrap(matched), nil
}

// sortNewestFirst orders by timestamp descending; equal timestamps fall back
// to reverse insertion order.
func sortNewestFirst[T any](records []record[T], createdAt func(T) int64) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := createdAt(records[i].doc), createdAt(records[j].doc)
		if ti != tj {
			return ti > tj
		}
		return records[i].seq > records[j].seq
	})
}

func unwrap[T any](records []record[T]) []T {
	docs := make([]T, 0, len(records))
	for _, r := range records {
		docs = append(docs, r.doc)
	}
	return docs
}

func paginate[T any](docs []T, page store.Page) []T {
	if page.Limit <= 0 {
		return docs
	}
	if page.Skip >= int64(len(docs)) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > int64(len(docs)) {
		end = int64(len(docs))
	}
	return docs[page.Skip:end]
}

func cloneItem(item models.CatalogItem) models.CatalogItem {
	if item.Images != nil {
		item.Images = append([]string{}, item.Images...)
	}
	if item.ServiceTypes != nil {
		item.ServiceTypes = append(models.StringList{}, item.ServiceTypes...)
	}
	return item
}
