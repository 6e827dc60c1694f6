package usecase

import (
	"context"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each records enough of its call history
// for tests to assert on what the services asked for.

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie

	page     []*entity.Movie
	total    int64
	pageErr  error
	countErr error
	findErr  error

	lastFilter repository.MovieFilter
	lastSort   repository.MovieSort
	lastOffset int
	lastLimit  int

	created *entity.Movie
	updated *entity.Movie
	deleted []uuid.UUID
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.created = movie
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.movies[id], nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	f.updated = movie
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.movies, id)
	return nil
}

func (f *fakeMovieRepo) FindPage(_ context.Context, filter repository.MovieFilter, sort repository.MovieSort, offset, limit int) ([]*entity.Movie, error) {
	f.lastFilter = filter
	f.lastSort = sort
	f.lastOffset = offset
	f.lastLimit = limit
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.page, nil
}

func (f *fakeMovieRepo) Count(_ context.Context, filter repository.MovieFilter) (int64, error) {
	f.lastFilter = filter
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

type statusUpdate struct {
	id     uuid.UUID
	status entity.PaymentStatus
	intent *string
}

type fakePaymentRepo struct {
	bySession map[string]*entity.Payment

	// onCreate, when set, intercepts Create before the insert happens.
	onCreate func(*entity.Payment) error

	creates []*entity.Payment
	updates []statusUpdate

	sumAmount int64
	sumCount  int64
	sumErr    error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{bySession: make(map[string]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if f.onCreate != nil {
		if err := f.onCreate(payment); err != nil {
			return err
		}
	}
	if _, exists := f.bySession[payment.SessionID]; exists {
		return repository.ErrDuplicateSession
	}
	f.creates = append(f.creates, payment)
	f.bySession[payment.SessionID] = payment
	return nil
}

func (f *fakePaymentRepo) FindBySessionID(_ context.Context, sessionID string) (*entity.Payment, error) {
	return f.bySession[sessionID], nil
}

func (f *fakePaymentRepo) FindByPaymentIntentID(_ context.Context, paymentIntentID string) (*entity.Payment, error) {
	for _, payment := range f.bySession {
		if payment.PaymentIntentID != nil && *payment.PaymentIntentID == paymentIntentID {
			return payment, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus, paymentIntentID *string) error {
	f.updates = append(f.updates, statusUpdate{id: id, status: status, intent: paymentIntentID})
	for _, payment := range f.bySession {
		if payment.ID == id {
			payment.Status = status
			if paymentIntentID != nil {
				payment.PaymentIntentID = paymentIntentID
			}
		}
	}
	return nil
}

func (f *fakePaymentRepo) SummarizeSucceeded(_ context.Context) (int64, int64, error) {
	if f.sumErr != nil {
		return 0, 0, f.sumErr
	}
	return f.sumAmount, f.sumCount, nil
}

type fakeCommentRepo struct {
	byID    map[uuid.UUID]*entity.CommentWithAuthor
	byMovie []*entity.CommentWithAuthor

	created *entity.Comment
	deleted []uuid.UUID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{byID: make(map[uuid.UUID]*entity.CommentWithAuthor)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.created = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CommentWithAuthor, error) {
	return f.byID[id], nil
}

func (f *fakeCommentRepo) FindByMovieID(_ context.Context, _ uuid.UUID) ([]*entity.CommentWithAuthor, error) {
	return f.byMovie, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

type fakeUserRepo struct {
	byID       map[uuid.UUID]*entity.User
	byEmail    map[string]*entity.User
	byUsername map[string]*entity.User

	created *entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[uuid.UUID]*entity.User),
		byEmail:    make(map[string]*entity.User),
		byUsername: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) add(user *entity.User) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.created = user
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.byUsername[username], nil
}
