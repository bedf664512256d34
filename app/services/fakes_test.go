package services

import (
	"bytes"
	"context"
	"io"
	"math"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
)

// In-memory stands-ins for the Mongo repositories. They mimic the repository
// contracts, including the atomic stock guard and the wishlist add filter.

type fakeProducts struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Product
}

func newFakeProducts(products ...*models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) List(_ context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Product{}
	for _, p := range f.byID {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (f *fakeProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProducts) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (f *fakeProducts) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		p.Stock += qty
	}
	return nil
}

func (f *fakeProducts) UpdateRating(_ context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

func (f *fakeProducts) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *fakeProducts) CountLowStock(_ context.Context, threshold int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.byID {
		if p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

func (f *fakeProducts) FindLowStock(_ context.Context, threshold int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Product{}
	for _, p := range f.byID {
		if p.Stock < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCarts struct {
	mu     sync.Mutex
	byUser map[primitive.ObjectID]*models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{byUser: map[primitive.ObjectID]*models.Cart{}}
}

func (f *fakeCarts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byUser[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp, nil
}

func (f *fakeCarts) Save(_ context.Context, c *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	f.byUser[c.UserID] = &cp
	return nil
}

func (f *fakeCarts) Clear(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byUser[userID]; ok {
		c.Items = []models.CartItem{}
	}
	return nil
}

type fakeOrders struct {
	mu         sync.Mutex
	orders     []*models.Order
	failInsert bool
}

func newFakeOrders() *fakeOrders { return &fakeOrders{} }

func (f *fakeOrders) Insert(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return io.ErrUnexpectedEOF
	}
	o.ID = primitive.NewObjectID()
	cp := *o
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeOrders) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindByIDForUser(_ context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id && o.UserID == userID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrders) All(context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.OrderStatus = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeOrders) UpdatePaymentStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.PaymentStatus = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeOrders) HasDelivered(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.UserID != userID || o.OrderStatus != models.OrderDelivered {
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeOrders) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

func (f *fakeOrders) Revenue(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, o := range f.orders {
		if o.PaymentStatus == models.PaymentPaid {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (f *fakeOrders) CountByStatus(context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int64{}
	for _, o := range f.orders {
		out[o.OrderStatus]++
	}
	return out, nil
}

type fakeReviews struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func newFakeReviews() *fakeReviews { return &fakeReviews{} }

func (f *fakeReviews) Insert(_ context.Context, rev *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.ProductID == rev.ProductID && existing.UserID == rev.UserID {
			return repositories.ErrDuplicate
		}
	}
	rev.ID = primitive.NewObjectID()
	cp := *rev
	f.reviews = append(f.reviews, &cp)
	return nil
}

func (f *fakeReviews) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Review{}
	for _, rev := range f.reviews {
		if rev.ProductID == productID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (f *fakeReviews) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rev := range f.reviews {
		if rev.ID == id {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReviews) FindByProductAndUser(_ context.Context, productID, userID primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rev := range f.reviews {
		if rev.ProductID == productID && rev.UserID == userID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReviews) Update(_ context.Context, rev *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.ID == rev.ID {
			existing.Rating = rev.Rating
			existing.Title = rev.Title
			existing.Comment = rev.Comment
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, rev := range f.reviews {
		if rev.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeReviews) Aggregate(_ context.Context, productID primitive.ObjectID) (float64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int
	for _, rev := range f.reviews {
		if rev.ProductID == productID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, count, nil
}

type fakeWishlists struct {
	mu     sync.Mutex
	byUser map[primitive.ObjectID]*models.Wishlist
}

func newFakeWishlists() *fakeWishlists {
	return &fakeWishlists{byUser: map[primitive.ObjectID]*models.Wishlist{}}
}

func (f *fakeWishlists) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byUser[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *w
	cp.Items = append([]models.WishlistItem(nil), w.Items...)
	return &cp, nil
}

func (f *fakeWishlists) AddItem(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byUser[userID]
	if !ok {
		w = &models.Wishlist{ID: primitive.NewObjectID(), UserID: userID}
		f.byUser[userID] = w
	}
	for _, it := range w.Items {
		if it.ProductID == productID {
			return false, nil
		}
	}
	w.Items = append(w.Items, models.WishlistItem{ProductID: productID})
	return true, nil
}

func (f *fakeWishlists) RemoveItem(_ context.Context, userID, productID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byUser[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	for i, it := range w.Items {
		if it.ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWishlists) Clear(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.byUser[userID]; ok {
		w.Items = []models.WishlistItem{}
	}
	return nil
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := fields["ageGroup"].(string); ok {
		u.AgeGroup = v
	}
	if v, ok := fields["experienceLevel"].(string); ok {
		u.ExperienceLevel = v
	}
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUsers) All(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *fakeUsers) CountByRole(_ context.Context, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) AddAddress(_ context.Context, id primitive.ObjectID, addr models.SavedAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if addr.IsDefault {
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = false
		}
	}
	u.Addresses = append(u.Addresses, addr)
	return nil
}

func (f *fakeUsers) RemoveAddress(_ context.Context, id, addressID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for i, a := range u.Addresses {
		if a.ID == addressID {
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUsers) SetDefaultAddress(_ context.Context, id, addressID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	found := false
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = u.Addresses[i].ID == addressID
		if u.Addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		return repositories.ErrNotFound
	}
	return nil
}

type fakeDiet struct {
	mu   sync.Mutex
	logs []*models.DietLog
}

func newFakeDiet() *fakeDiet { return &fakeDiet{} }

func (f *fakeDiet) Upsert(_ context.Context, log *models.DietLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.logs {
		if existing.UserID == log.UserID && existing.Date == log.Date {
			existing.Calories = log.Calories
			existing.Notes = log.Notes
			log.ID = existing.ID
			return nil
		}
	}
	log.ID = primitive.NewObjectID()
	cp := *log
	f.logs = append(f.logs, &cp)
	return nil
}

func (f *fakeDiet) FindByUser(_ context.Context, userID primitive.ObjectID, from, to string) ([]models.DietLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.DietLog{}
	for _, log := range f.logs {
		if log.UserID != userID {
			continue
		}
		if from != "" && log.Date < from {
			continue
		}
		if to != "" && log.Date > to {
			continue
		}
		out = append(out, *log)
	}
	return out, nil
}

func (f *fakeDiet) DeleteForUser(_ context.Context, id, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, log := range f.logs {
		if log.ID == id && log.UserID == userID {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeWorkouts struct {
	mu   sync.Mutex
	logs []*models.WorkoutLog
}

func newFakeWorkouts() *fakeWorkouts { return &fakeWorkouts{} }

func (f *fakeWorkouts) Insert(_ context.Context, log *models.WorkoutLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = primitive.NewObjectID()
	cp := *log
	f.logs = append(f.logs, &cp)
	return nil
}

func (f *fakeWorkouts) FindByUser(_ context.Context, userID primitive.ObjectID, from, to string) ([]models.WorkoutLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.WorkoutLog{}
	for _, log := range f.logs {
		if log.UserID != userID {
			continue
		}
		if from != "" && log.Date < from {
			continue
		}
		if to != "" && log.Date > to {
			continue
		}
		out = append(out, *log)
	}
	return out, nil
}

func (f *fakeWorkouts) FindByIDForUser(_ context.Context, id, userID primitive.ObjectID) (*models.WorkoutLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, log := range f.logs {
		if log.ID == id && log.UserID == userID {
			cp := *log
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeWorkouts) Update(_ context.Context, log *models.WorkoutLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.logs {
		if existing.ID == log.ID && existing.UserID == log.UserID {
			*existing = *log
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeWorkouts) DeleteForUser(_ context.Context, id, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, log := range f.logs {
		if log.ID == id && log.UserID == userID {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// fakeDisk is an in-memory object store.
type fakeDisk struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{objects: map[string][]byte{}}
}

func (d *fakeDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.objects[path] = content
	return nil
}

func (d *fakeDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, data)
}

func (d *fakeDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.objects[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (d *fakeDisk) GetStream(path string) (io.ReadCloser, error) {
	data, err := d.Get(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *fakeDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.objects[path]
	return ok
}

func (d *fakeDisk) URL(path string) string {
	return "http://assets.test/" + path
}

func (d *fakeDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.objects, path)
	d.deleted = append(d.deleted, path)
	return nil
}

// fakeNotifier records order events.
type fakeNotifier struct {
	mu      sync.Mutex
	placed  []*models.Order
	changed []*models.Order
}

func (n *fakeNotifier) OrderPlaced(o *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, o)
}

func (n *fakeNotifier) OrderStatusChanged(o *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, o)
}
