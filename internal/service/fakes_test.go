package service

import (
	"context"
	"fmt"
	"sort"

	"proxym-fin/internal/models"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	users  map[int64]models.User
	nextID int64
	err    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: email %s", ErrNotFound, email)
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.ID]; !ok {
		return ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProductStore struct {
	products map[int64]models.Product
	nextID   int64
	err      error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[int64]models.Product)}
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) List(_ context.Context) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
}

func (f *fakeProductStore) Update(_ context.Context, product *models.Product) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.products[product.ID]; !ok {
		return ErrNotFound
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeTransactionStore struct {
	transactions map[int64]models.Transaction
	nextID       int64
	err          error
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{transactions: make(map[int64]models.Transaction)}
}

func (f *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	tx.ID = f.nextID
	f.transactions[tx.ID] = *tx
	return nil
}

func (f *fakeTransactionStore) List(_ context.Context) ([]*models.Transaction, error) {
	return f.listWhere(func(models.Transaction) bool { return true })
}

func (f *fakeTransactionStore) ListByUser(_ context.Context, userID int64) ([]*models.Transaction, error) {
	return f.listWhere(func(t models.Transaction) bool { return t.UserID == userID })
}

func (f *fakeTransactionStore) listWhere(keep func(models.Transaction) bool) ([]*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Transaction, 0, len(f.transactions))
	for _, t := range f.transactions {
		if keep(t) {
			t := t
			out = append(out, &t)
		}
	}
	// Newest first, matching the repository ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, id int64) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.transactions[id]; ok {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
}

func (f *fakeTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.transactions[tx.ID]; !ok {
		return ErrNotFound
	}
	f.transactions[tx.ID] = *tx
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(f.transactions, id)
	return nil
}

// fakeGenerator scripts the LLM used by recommendation and chat tests.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
