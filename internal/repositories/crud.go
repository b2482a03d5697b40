package repositories

import (
	"context"
	"errors"
	"reflect"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate is a where clause plus its bind arguments.
type Predicate struct {
	Query string
	Args  []any
}

// Where builds a Predicate, e.g. Where("author_id = ? AND hidden = ?", id, false).
func Where(query string, args ...any) Predicate {
	return Predicate{Query: query, Args: args}
}

// EntityRepository is the set of primitives every entity kind supports.
type EntityRepository[T any] interface {
	GetByID(ctx context.Context, id uint) (*T, error)
	FindBy(ctx context.Context, p Predicate, order ...string) ([]T, error)
	Count(ctx context.Context, p Predicate) (int64, error)
	Exists(ctx context.Context, p Predicate) (bool, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	DeleteWhere(ctx context.Context, p Predicate) (int64, error)
	FetchWithRelations(ctx context.Context, id uint, relations ...string) (*T, error)
}

// crud implements EntityRepository on top of a *gorm.DB, which may be a transaction.
type crud[T any] struct {
	db     *gorm.DB
	entity string
}

func (r crud[T]) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r crud[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.conn(ctx).First(&out, id).Error; err != nil {
		return nil, translateRead(err, r.entity, id)
	}
	return &out, nil
}

func (r crud[T]) FindBy(ctx context.Context, p Predicate, order ...string) ([]T, error) {
	var out []T
	q := r.conn(ctx).Where(p.Query, p.Args...)
	for _, o := range order {
		q = q.Order(o)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r crud[T]) Count(ctx context.Context, p Predicate) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(new(T)).Where(p.Query, p.Args...).Count(&count).Error
	return count, err
}

func (r crud[T]) Exists(ctx context.Context, p Predicate) (bool, error) {
	count, err := r.Count(ctx, p)
	return count > 0, err
}

func (r crud[T]) Create(ctx context.Context, entity *T) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return translateWrite(err, r.entity)
	}
	return nil
}

func (r crud[T]) Save(ctx context.Context, entity *T) error {
	if err := r.conn(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return translateWrite(err, r.entity)
	}
	return nil
}

func (r crud[T]) Delete(ctx context.Context, entity *T) error {
	res := r.conn(ctx).Delete(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if id := primaryKeyOf(res); id != nil {
			return apperr.NotFound(r.entity, id)
		}
		return &apperr.Error{Kind: apperr.ErrNotFound, Entity: r.entity, Message: "no longer exists"}
	}
	return nil
}

// primaryKeyOf returns the single primary key value of the statement's model, or nil
// for composite or unset keys.
func primaryKeyOf(db *gorm.DB) any {
	stmt := db.Statement
	if stmt.Schema == nil || stmt.Schema.PrioritizedPrimaryField == nil || stmt.ReflectValue.Kind() != reflect.Struct {
		return nil
	}
	v, zero := stmt.Schema.PrioritizedPrimaryField.ValueOf(stmt.Context, stmt.ReflectValue)
	if zero {
		return nil
	}
	return v
}

func (r crud[T]) DeleteWhere(ctx context.Context, p Predicate) (int64, error) {
	res := r.conn(ctx).Where(p.Query, p.Args...).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (r crud[T]) FetchWithRelations(ctx context.Context, id uint, relations ...string) (*T, error) {
	q := r.conn(ctx)
	for _, rel := range relations {
		q = q.Preload(rel)
	}
	var out T
	if err := q.First(&out, id).Error; err != nil {
		return nil, translateRead(err, r.entity, id)
	}
	return &out, nil
}

func translateRead(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// translateWrite maps store constraint violations to typed errors. A foreign key
// violation on insert means a referenced row is gone.
func translateWrite(err error, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperr.Error{Kind: apperr.ErrConflict, Entity: entity, Message: "duplicate value", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperr.Error{Kind: apperr.ErrNotFound, Entity: entity, Message: "referenced entity does not exist", Err: err}
	}
	return err
}
