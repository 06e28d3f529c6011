package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/external"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fakeUserRepo struct {
	users map[string]domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeSeverityRepo struct {
	severities map[string]domain.Severity
	seq        int
}

func newFakeSeverityRepo() *fakeSeverityRepo {
	return &fakeSeverityRepo{severities: map[string]domain.Severity{}}
}

func (r *fakeSeverityRepo) add(level int, description string) *domain.Severity {
	r.seq++
	s := domain.Severity{ID: fmt.Sprintf("sev-%d", r.seq), Level: level, Description: description}
	r.severities[s.ID] = s
	return &s
}

func (r *fakeSeverityRepo) ListAll(ctx context.Context) ([]domain.Severity, error) {
	out := make([]domain.Severity, 0, len(r.severities))
	for _, s := range r.severities {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSeverityRepo) Create(ctx context.Context, severity *domain.Severity) error {
	r.seq++
	severity.ID = fmt.Sprintf("sev-%d", r.seq)
	r.severities[severity.ID] = *severity
	return nil
}

func (r *fakeSeverityRepo) GetByID(ctx context.Context, id string) (*domain.Severity, error) {
	s, ok := r.severities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (r *fakeSeverityRepo) GetByLevel(ctx context.Context, level int) (*domain.Severity, error) {
	for _, s := range r.severities {
		if s.Level == level {
			s := s
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSeverityRepo) Update(ctx context.Context, severity *domain.Severity) error {
	if _, ok := r.severities[severity.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.severities[severity.ID] = *severity
	return nil
}

func (r *fakeSeverityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.severities[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.severities, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]domain.Category
	seq        int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]domain.Category{}}
}

func (r *fakeCategoryRepo) add(name string) *domain.Category {
	r.seq++
	c := domain.Category{ID: fmt.Sprintf("cat-%d", r.seq), Name: name}
	r.categories[c.ID] = c
	return &c
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.seq++
	category.ID = fmt.Sprintf("cat-%d", r.seq)
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type fakeSubcategoryRepo struct {
	subcategories map[string]domain.Subcategory
	seq           int
}

func newFakeSubcategoryRepo() *fakeSubcategoryRepo {
	return &fakeSubcategoryRepo{subcategories: map[string]domain.Subcategory{}}
}

func (r *fakeSubcategoryRepo) add(name, categoryID string) *domain.Subcategory {
	r.seq++
	s := domain.Subcategory{ID: fmt.Sprintf("sub-%d", r.seq), Name: name, CategoryID: categoryID}
	r.subcategories[s.ID] = s
	return &s
}

func (r *fakeSubcategoryRepo) ListAll(ctx context.Context) ([]domain.Subcategory, error) {
	out := make([]domain.Subcategory, 0, len(r.subcategories))
	for _, s := range r.subcategories {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSubcategoryRepo) Create(ctx context.Context, subcategory *domain.Subcategory) error {
	r.seq++
	subcategory.ID = fmt.Sprintf("sub-%d", r.seq)
	r.subcategories[subcategory.ID] = *subcategory
	return nil
}

func (r *fakeSubcategoryRepo) GetByID(ctx context.Context, id string) (*domain.Subcategory, error) {
	s, ok := r.subcategories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (r *fakeSubcategoryRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Subcategory, error) {
	out := make([]domain.Subcategory, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.subcategories[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubcategoryRepo) GetByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Subcategory, error) {
	for _, s := range r.subcategories {
		if s.Name == name && s.CategoryID == categoryID {
			s := s
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSubcategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	out := []domain.Subcategory{}
	for _, s := range r.subcategories {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubcategoryRepo) Update(ctx context.Context, subcategory *domain.Subcategory) error {
	if _, ok := r.subcategories[subcategory.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.subcategories[subcategory.ID] = *subcategory
	return nil
}

func (r *fakeSubcategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.subcategories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.subcategories, id)
	return nil
}

// fakeTicketRepo keeps tickets and their link sets in memory. The
// failUpdate switch forces the scalar write to fail so rollback
// behavior can be observed through fakeTxRunner.
type fakeTicketRepo struct {
	tickets    map[string]domain.Ticket
	cats       map[string][]string
	subs       map[string][]string
	seq        int
	failUpdate bool
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: map[string]domain.Ticket{},
		cats:    map[string][]string{},
		subs:    map[string][]string{},
	}
}

func (r *fakeTicketRepo) snapshot() (map[string]domain.Ticket, map[string][]string, map[string][]string) {
	tickets := make(map[string]domain.Ticket, len(r.tickets))
	for k, v := range r.tickets {
		tickets[k] = v
	}
	cats := make(map[string][]string, len(r.cats))
	for k, v := range r.cats {
		cats[k] = append([]string(nil), v...)
	}
	subs := make(map[string][]string, len(r.subs))
	for k, v := range r.subs {
		subs[k] = append([]string(nil), v...)
	}
	return tickets, cats, subs
}

func (r *fakeTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r *fakeTicketRepo) GetByTitle(ctx context.Context, title string) (*domain.Ticket, error) {
	for _, t := range r.tickets {
		if t.Title == title {
			t := t
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) Create(ctx context.Context, q repository.Querier, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, q repository.Querier, ticket *domain.Ticket) error {
	if r.failUpdate {
		return fmt.Errorf("forced update failure")
	}
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, q repository.Querier, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) SetComment(ctx context.Context, id, comment, commentUser string) error {
	t, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Comment = &comment
	t.CommentUser = &commentUser
	r.tickets[id] = t
	return nil
}

func (r *fakeTicketRepo) CategoryIDs(ctx context.Context, q repository.Querier, ticketID string) ([]string, error) {
	return append([]string(nil), r.cats[ticketID]...), nil
}

func (r *fakeTicketRepo) SubcategoryIDs(ctx context.Context, q repository.Querier, ticketID string) ([]string, error) {
	return append([]string(nil), r.subs[ticketID]...), nil
}

func (r *fakeTicketRepo) ReplaceCategories(ctx context.Context, q repository.Querier, ticketID string, categoryIDs []string) error {
	r.cats[ticketID] = uniqueStrings(categoryIDs)
	return nil
}

func (r *fakeTicketRepo) ReplaceSubcategories(ctx context.Context, q repository.Querier, ticketID string, subcategoryIDs []string) error {
	r.subs[ticketID] = uniqueStrings(subcategoryIDs)
	return nil
}

func (r *fakeTicketRepo) DeleteAssociations(ctx context.Context, q repository.Querier, ticketID string) error {
	delete(r.subs, ticketID)
	delete(r.cats, ticketID)
	return nil
}

// fakeTxRunner snapshots the ticket repo before running fn and restores
// the snapshot when fn fails, mimicking a rolled back transaction.
type fakeTxRunner struct {
	repo *fakeTicketRepo
}

func (r *fakeTxRunner) InTx(ctx context.Context, fn func(q repository.Querier) error) error {
	tickets, cats, subs := r.repo.snapshot()
	if err := fn(nil); err != nil {
		r.repo.tickets, r.repo.cats, r.repo.subs = tickets, cats, subs
		return err
	}
	return nil
}

type fakeCommentFetcher struct {
	comment *external.Comment
	err     error
}

func (f *fakeCommentFetcher) FetchRandomComment(ctx context.Context) (*external.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comment, nil
}
