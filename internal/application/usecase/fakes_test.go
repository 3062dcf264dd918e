package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de persistencia. Los IDs se asignan
// secuencialmente, como haría la base con BIGSERIAL.

type fakeUserRepo struct {
	users    map[int64]*entity.User
	nextID   int64
	emailErr error // si está fijado, GetByEmail falla con este error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(role string, limit, offset int) ([]*entity.User, int64, error) {
	var all []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ListByManager(managerID int64) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeStoreRepo struct {
	stores  map[int64]*entity.Store
	nextID  int64
	creates int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[int64]*entity.Store), nextID: 1}
}

func (r *fakeStoreRepo) Create(s *entity.Store) error {
	r.creates++
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) GetByID(id int64) (*entity.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) GetByName(name string) (*entity.Store, error) {
	for _, s := range r.stores {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) List() ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range r.stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStoreRepo) Update(s *entity.Store) error {
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) Delete(id int64) error {
	delete(r.stores, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[int64]*entity.Assignment
	nextID      int64
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[int64]*entity.Assignment), nextID: 1}
}

func (r *fakeAssignmentRepo) Create(a *entity.Assignment) error {
	a.ID = r.nextID
	r.nextID++
	for i := range a.Tasks {
		a.Tasks[i].ID = int64(i + 1)
		a.Tasks[i].AssignmentID = a.ID
	}
	cp := *a
	cp.Tasks = append([]entity.TaskItem(nil), a.Tasks...)
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) GetByID(id int64) (*entity.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	cp.Tasks = append([]entity.TaskItem(nil), a.Tasks...)
	return &cp, nil
}

func (r *fakeAssignmentRepo) List(f repository.AssignmentFilter, limit, offset int) ([]*entity.Assignment, int64, error) {
	var all []*entity.Assignment
	for _, a := range r.assignments {
		if f.Date != nil && !sameDay(a.Date, *f.Date) {
			continue
		}
		if f.UserID != nil && a.UserID != *f.UserID {
			continue
		}
		if f.StoreID != nil && a.StoreID != *f.StoreID {
			continue
		}
		cp := *a
		all = append(all, &cp)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeAssignmentRepo) ListByUserAndDate(userID int64, date time.Time) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	for _, a := range r.assignments {
		if a.UserID == userID && sameDay(a.Date, date) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListByUsersAndDate(userIDs []int64, date time.Time) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	for _, id := range userIDs {
		list, _ := r.ListByUserAndDate(id, date)
		out = append(out, list...)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(a *entity.Assignment) error {
	cp := *a
	cp.Tasks = append([]entity.TaskItem(nil), a.Tasks...)
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) UpdateCheckTimes(id int64, checkIn, checkOut *time.Time) error {
	a, ok := r.assignments[id]
	if !ok {
		return nil
	}
	a.CheckInTime = checkIn
	a.CheckOutTime = checkOut
	return nil
}

func (r *fakeAssignmentRepo) Delete(id int64) error {
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) CountByDateAndStatus(date time.Time, status string) (int64, error) {
	var n int64
	for _, a := range r.assignments {
		if sameDay(a.Date, date) && a.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*entity.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(category string, limit, offset int) ([]*entity.Product, int64, error) {
	var all []*entity.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			cp := *p
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeVisitRepo struct {
	visits map[int64]*entity.Visit
	nextID int64
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[int64]*entity.Visit), nextID: 1}
}

func (r *fakeVisitRepo) Create(v *entity.Visit) error {
	v.ID = r.nextID
	r.nextID++
	cp := *v
	r.visits[v.ID] = &cp
	return nil
}

func (r *fakeVisitRepo) GetByID(id int64) (*entity.Visit, error) {
	v, ok := r.visits[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVisitRepo) ListAll() ([]*entity.Visit, error) {
	var out []*entity.Visit
	for _, v := range r.visits {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVisitRepo) ListByUser(userID int64) ([]*entity.Visit, error) {
	var out []*entity.Visit
	for _, v := range r.visits {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) ListByStore(storeID int64) ([]*entity.Visit, error) {
	var out []*entity.Visit
	for _, v := range r.visits {
		if v.StoreID == storeID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) UpdateStatus(id int64, status string) error {
	if v, ok := r.visits[id]; ok {
		v.Status = status
	}
	return nil
}

func (r *fakeVisitRepo) UpdateSalesAmount(id int64, amount decimal.Decimal) error {
	if v, ok := r.visits[id]; ok {
		v.SalesAmount = amount
	}
	return nil
}

func (r *fakeVisitRepo) UpdatePhotoURL(id int64, url string) error {
	if v, ok := r.visits[id]; ok {
		v.PhotoURL = url
	}
	return nil
}

func (r *fakeVisitRepo) CountCompleted() (int64, error) {
	var n int64
	for _, v := range r.visits {
		if v.Status == entity.VisitCompleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeVisitRepo) SumSales() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.visits {
		if v.Status == entity.VisitCompleted {
			total = total.Add(v.SalesAmount)
		}
	}
	return total, nil
}

func (r *fakeVisitRepo) AvgShelfShare() (float64, error) {
	var (
		sum float64
		n   int
	)
	for _, v := range r.visits {
		if v.Status == entity.VisitCompleted {
			sum += v.ShelfShare
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

type fakeSelloutRepo struct {
	sellouts map[int64]*entity.Sellout
	nextID   int64
}

func newFakeSelloutRepo() *fakeSelloutRepo {
	return &fakeSelloutRepo{sellouts: make(map[int64]*entity.Sellout), nextID: 1}
}

func (r *fakeSelloutRepo) Create(s *entity.Sellout) error {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.sellouts[s.ID] = &cp
	return nil
}

func (r *fakeSelloutRepo) GetByID(id int64) (*entity.Sellout, error) {
	s, ok := r.sellouts[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSelloutRepo) ListByVisit(visitID int64) ([]*entity.Sellout, error) {
	var out []*entity.Sellout
	for _, s := range r.sellouts {
		if s.VisitID == visitID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSelloutRepo) ListByVisits(visitIDs []int64) (map[int64][]*entity.Sellout, error) {
	out := make(map[int64][]*entity.Sellout, len(visitIDs))
	for _, id := range visitIDs {
		list, _ := r.ListByVisit(id)
		if len(list) > 0 {
			out[id] = list
		}
	}
	return out, nil
}

func (r *fakeSelloutRepo) SumAmountByVisit(visitID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sellouts {
		if s.VisitID == visitID {
			total = total.Add(s.Amount)
		}
	}
	return total, nil
}

func (r *fakeSelloutRepo) Delete(id int64) error {
	delete(r.sellouts, id)
	return nil
}

type fakeInteractionRepo struct {
	interactions map[int64]*entity.Interaction
	nextID       int64
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{interactions: make(map[int64]*entity.Interaction), nextID: 1}
}

func (r *fakeInteractionRepo) Create(i *entity.Interaction) error {
	i.ID = r.nextID
	r.nextID++
	cp := *i
	r.interactions[i.ID] = &cp
	return nil
}

func (r *fakeInteractionRepo) ListByVisit(visitID int64) ([]*entity.Interaction, error) {
	var out []*entity.Interaction
	for _, i := range r.interactions {
		if i.VisitID == visitID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInteractionRepo) ListByVisits(visitIDs []int64) (map[int64][]*entity.Interaction, error) {
	out := make(map[int64][]*entity.Interaction, len(visitIDs))
	for _, id := range visitIDs {
		list, _ := r.ListByVisit(id)
		if len(list) > 0 {
			out[id] = list
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta los callbacks directamente sobre los fakes, sin
// transacción real.
type fakeTxRunner struct {
	users       *fakeUserRepo
	stores      *fakeStoreRepo
	assignments *fakeAssignmentRepo
	products    *fakeProductRepo
}

var _ usecase.UserTxRunner = (*fakeTxRunner)(nil)
var _ usecase.StoreTxRunner = (*fakeTxRunner)(nil)
var _ usecase.AssignmentTxRunner = (*fakeTxRunner)(nil)
var _ usecase.ProductTxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error {
	return fn(r.users)
}

func (r *fakeTxRunner) RunStores(ctx context.Context, fn func(repo repository.StoreRepository) error) error {
	return fn(r.stores)
}

func (r *fakeTxRunner) RunAssignments(ctx context.Context, fn func(
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
) error) error {
	return fn(r.assignments, r.users, r.stores)
}

func (r *fakeTxRunner) RunProducts(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	return fn(r.products)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
