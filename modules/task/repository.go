package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kuba-04/task-manager-rest-demo/database"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the persisted form of a task.
type Record struct {
	ID          string             `gorm:"primaryKey;size:36"`
	Title       string             `gorm:"size:255;not null"`
	Description *string            `gorm:"size:2000"`
	Deadline    *time.Time         `gorm:"index"`
	Status      string             `gorm:"size:16;not null;index"`
	Assignments []AssignmentRecord `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for Record.
func (Record) TableName() string {
	return "tasks"
}

// AssignmentRecord links a task to one assigned user. Position keeps the
// assignment order.
type AssignmentRecord struct {
	TaskID   string `gorm:"primaryKey;size:36"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	UserID   string `gorm:"size:36;not null;index"`
}

// TableName returns the table name for AssignmentRecord.
func (AssignmentRecord) TableName() string {
	return "task_assigned_users"
}

// Models lists the records to migrate.
func Models() []any {
	return []any{&Record{}, &AssignmentRecord{}}
}

// Repository stores tasks with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts t or overwrites the stored task with the same id, replacing
// its assignments, in one transaction.
func (r *Repository) Save(ctx context.Context, t *domain.Task) error {
	rec := toRecord(t)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "deadline", "status", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", rec.ID).Delete(&AssignmentRecord{}).Error; err != nil {
			return err
		}
		if len(rec.Assignments) > 0 {
			if err := tx.Create(&rec.Assignments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task with its assignments.
func (r *Repository) FindByID(ctx context.Context, id domain.ID) (*domain.Task, bool, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Preload("Assignments", orderByPosition).
		First(&rec, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find task: %w", err)
	}

	t, err := rec.toDomain()
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// DeleteByID removes a task and its assignments. Deleting a missing task is
// not an error.
func (r *Repository) DeleteByID(ctx context.Context, id domain.ID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id.String()).Delete(&AssignmentRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Record{}, "id = ?", id.String()).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// FindBySearchParams returns one page of matching tasks ordered by creation time.
func (r *Repository) FindBySearchParams(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.Task], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Record{}).Scopes(searchScope(params)).Count(&total).Error; err != nil {
		return page.Page[*domain.Task]{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	if !req.InRange() {
		return page.New[*domain.Task](nil, total, req), nil
	}

	var recs []Record
	err := r.db.WithContext(ctx).
		Scopes(searchScope(params)).
		Preload("Assignments", orderByPosition).
		Order("created_at ASC, id ASC").
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&recs).Error
	if err != nil {
		return page.Page[*domain.Task]{}, fmt.Errorf("failed to search tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.toDomain()
		if err != nil {
			return page.Page[*domain.Task]{}, err
		}
		tasks = append(tasks, t)
	}
	return page.New(tasks, total, req), nil
}

func searchScope(p SearchParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.ID != nil {
			db = db.Where("id = ?", p.ID.String())
		}
		if p.Title != "" {
			db = db.Where("LOWER(title) LIKE ? ESCAPE '\\'", database.ContainsPattern(p.Title))
		}
		if p.Description != "" {
			db = db.Where("LOWER(description) LIKE ? ESCAPE '\\'", database.ContainsPattern(p.Description))
		}
		if p.Status != nil {
			db = db.Where("status = ?", string(*p.Status))
		}
		if p.DeadlineFrom != nil {
			db = db.Where("deadline >= ?", p.DeadlineFrom.UTC())
		}
		if p.DeadlineTo != nil {
			db = db.Where("deadline <= ?", p.DeadlineTo.UTC())
		}
		if p.AssignedUser != nil {
			db = db.Where("id IN (SELECT task_id FROM task_assigned_users WHERE user_id = ?)", p.AssignedUser.String())
		}
		return db
	}
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func toRecord(t *domain.Task) Record {
	rec := Record{
		ID:          t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      string(t.Status()),
	}
	if d := t.Deadline(); d != nil {
		utc := d.UTC()
		rec.Deadline = &utc
	}
	for i, userID := range t.AssignedUsers() {
		rec.Assignments = append(rec.Assignments, AssignmentRecord{
			TaskID:   rec.ID,
			Position: i,
			UserID:   userID.String(),
		})
	}
	return rec
}

func (rec Record) toDomain() (*domain.Task, error) {
	id, err := domain.ParseID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt task row: %w", err)
	}
	status, err := domain.ParseStatus(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("corrupt task row %s: %w", rec.ID, err)
	}

	assigned := make([]user.ID, 0, len(rec.Assignments))
	for _, a := range rec.Assignments {
		userID, err := user.ParseID(a.UserID)
		if err != nil {
			return nil, fmt.Errorf("corrupt assignment of task %s: %w", rec.ID, err)
		}
		assigned = append(assigned, userID)
	}

	return domain.Restore(id, rec.Title, rec.Description, rec.Deadline, status, assigned), nil
}
