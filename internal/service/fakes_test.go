package service

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/repository"
)

// fakeStore is an in-memory repository.Store used by the service tests.
// InTx runs the callback directly; the tests are single-goroutine.
type fakeStore struct {
	users       map[uint64]model.User
	byEmail     map[string]uint64
	comments    map[uint64]model.Comment
	ratings     map[uint64]model.SellerRating
	nextUser    uint64
	nextComment uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uint64]model.User),
		byEmail:  make(map[string]uint64),
		comments: make(map[uint64]model.Comment),
		ratings:  make(map[uint64]model.SellerRating),
	}
}

func (f *fakeStore) Users() repository.UserStore       { return fakeUsers{f} }
func (f *fakeStore) Comments() repository.CommentStore { return fakeComments{f} }
func (f *fakeStore) Ratings() repository.RatingStore   { return fakeRatings{f} }

func (f *fakeStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(f)
}

type fakeUsers struct{ f *fakeStore }

func (r fakeUsers) Create(ctx context.Context, u *model.User) error {
	if _, taken := r.f.byEmail[u.Email]; taken {
		return repository.ErrEmailExists
	}
	r.f.nextUser++
	u.ID = r.f.nextUser
	u.CreatedAt = time.Now().UTC()
	r.f.users[u.ID] = *u
	r.f.byEmail[u.Email] = u.ID
	return nil
}

func (r fakeUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	id, ok := r.f.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return r.f.users[id], nil
}

func (r fakeUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r fakeUsers) SetEmailConfirmed(ctx context.Context, id uint64, confirmed bool) error {
	u, ok := r.f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.EmailConfirmed = confirmed
	r.f.users[id] = u
	return nil
}

func (r fakeUsers) SetActivated(ctx context.Context, id uint64, activated bool) error {
	u, ok := r.f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Activated = activated
	r.f.users[id] = u
	return nil
}

func (r fakeUsers) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	u, ok := r.f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.f.users[id] = u
	return nil
}

func (r fakeUsers) Delete(ctx context.Context, id uint64) error {
	u, ok := r.f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.f.users, id)
	delete(r.f.byEmail, u.Email)
	return nil
}

type fakeComments struct{ f *fakeStore }

func (r fakeComments) Create(ctx context.Context, c *model.Comment) error {
	r.f.nextComment++
	c.ID = r.f.nextComment
	c.CreatedAt = time.Now().UTC()
	r.f.comments[c.ID] = *c
	return nil
}

func (r fakeComments) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	c, ok := r.f.comments[id]
	if !ok {
		return model.Comment{}, repository.ErrNotFound
	}
	return c, nil
}

func (r fakeComments) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.f.comments {
		if c.SellerID == sellerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeComments) Update(ctx context.Context, id uint64, message string, grade int) error {
	c, ok := r.f.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Message = message
	c.Grade = grade
	r.f.comments[id] = c
	return nil
}

func (r fakeComments) SetApproved(ctx context.Context, id uint64, approved bool) error {
	c, ok := r.f.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsApproved = approved
	r.f.comments[id] = c
	return nil
}

func (r fakeComments) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.f.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.f.comments, id)
	return nil
}

func (r fakeComments) ClearAuthor(ctx context.Context, authorID uint64) error {
	for id, c := range r.f.comments {
		if c.AuthorID != nil && *c.AuthorID == authorID {
			c.AuthorID = nil
			r.f.comments[id] = c
		}
	}
	return nil
}

type fakeRatings struct{ f *fakeStore }

func (r fakeRatings) GetBySeller(ctx context.Context, sellerID uint64) (model.SellerRating, error) {
	sr, ok := r.f.ratings[sellerID]
	if !ok {
		return model.SellerRating{}, repository.ErrNotFound
	}
	return sr, nil
}

func (r fakeRatings) Upsert(ctx context.Context, sr model.SellerRating) error {
	if old, ok := r.f.ratings[sr.SellerID]; ok {
		sr.CreatedAt = old.CreatedAt
	} else {
		sr.CreatedAt = time.Now().UTC()
	}
	r.f.ratings[sr.SellerID] = sr
	return nil
}

// fakeMailer records dispatched emails instead of sending them.
type fakeMailer struct {
	registrations []string // recipient addresses
	resetCodes    map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{resetCodes: make(map[string]string)}
}

func (m *fakeMailer) SendRegistrationEmail(ctx context.Context, to, name, confirmLink string) {
	m.registrations = append(m.registrations, to)
}

func (m *fakeMailer) SendPasswordResetEmail(ctx context.Context, to, name, code string) {
	m.resetCodes[to] = code
}
