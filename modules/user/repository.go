package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kuba-04/task-manager-rest-demo/database"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the persisted form of a user.
type Record struct {
	ID        string    `gorm:"primaryKey;size:36"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;not null;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for Record.
func (Record) TableName() string {
	return "users"
}

// Repository stores users with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts u or overwrites the stored user with the same id.
func (r *Repository) Save(ctx context.Context, u *domain.User) error {
	rec := toRecord(u)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *Repository) FindByID(ctx context.Context, id domain.ID) (*domain.User, bool, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	u, err := rec.toDomain()
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// DeleteByID removes a user. Deleting a missing user is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id domain.ID) error {
	if err := r.db.WithContext(ctx).Delete(&Record{}, "id = ?", id.String()).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ExistsByID checks if a user exists.
func (r *Repository) ExistsByID(ctx context.Context, id domain.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Record{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}

// FindBySearchParams returns one page of matching users ordered by creation time.
func (r *Repository) FindBySearchParams(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.User], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Record{}).Scopes(searchScope(params)).Count(&total).Error; err != nil {
		return page.Page[*domain.User]{}, fmt.Errorf("failed to count users: %w", err)
	}
	if !req.InRange() {
		return page.New[*domain.User](nil, total, req), nil
	}

	var recs []Record
	err := r.db.WithContext(ctx).
		Scopes(searchScope(params)).
		Order("created_at ASC, id ASC").
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&recs).Error
	if err != nil {
		return page.Page[*domain.User]{}, fmt.Errorf("failed to search users: %w", err)
	}

	users := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		u, err := rec.toDomain()
		if err != nil {
			return page.Page[*domain.User]{}, err
		}
		users = append(users, u)
	}
	return page.New(users, total, req), nil
}

func searchScope(p SearchParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.ID != nil {
			db = db.Where("id = ?", p.ID.String())
		}
		if p.FirstName != "" {
			db = db.Where("LOWER(first_name) LIKE ? ESCAPE '\\'", database.ContainsPattern(p.FirstName))
		}
		if p.LastName != "" {
			db = db.Where("LOWER(last_name) LIKE ? ESCAPE '\\'", database.ContainsPattern(p.LastName))
		}
		if p.Email != "" {
			db = db.Where("LOWER(email) LIKE ? ESCAPE '\\'", database.ContainsPattern(p.Email))
		}
		return db
	}
}

func toRecord(u *domain.User) Record {
	return Record{
		ID:        u.ID().String(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
	}
}

func (rec Record) toDomain() (*domain.User, error) {
	id, err := domain.ParseID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user row: %w", err)
	}
	u, err := domain.New(id, rec.FirstName, rec.LastName, rec.Email)
	if err != nil {
		return nil, fmt.Errorf("corrupt user row %s: %w", rec.ID, err)
	}
	return u, nil
}
