package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when the id is taken.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrVersionConflict is returned by UpdateIfVersion when the stored version moved on.
	ErrVersionConflict = errors.New("document version conflict")
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "=="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "in"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type Order struct {
	Field string
	Desc  bool
}

// Query is a collection-scoped filter/order/limit description understood by every backend.
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   int
}

func (q Query) Where(field string, op Op, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, desc bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Field: field, Desc: desc})
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Collection is a named set of documents keyed by id.
type Collection interface {
	Get(ctx context.Context, id string, dst any) error
	Create(ctx context.Context, id string, doc any) error
	Update(ctx context.Context, id string, fields map[string]any) error
	// UpdateIfVersion applies fields only when the stored "version" equals version, and bumps it by one.
	UpdateIfVersion(ctx context.Context, id string, version int64, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// Find decodes every matching document into dst, which must be a pointer to a slice.
	Find(ctx context.Context, q Query, dst any) error
	Count(ctx context.Context, q Query) (int64, error)
}

// Store hands out collections over one backend connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// sliceAppender grows the slice behind a *[]T or *[]*T one decoded element at a time.
type sliceAppender struct {
	slice reflect.Value
	elem  reflect.Type
	ptr   bool
}

func newSliceAppender(dst any) (*sliceAppender, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return nil, fmt.Errorf("database: destination must be a pointer to a slice, got %T", dst)
	}
	slice := v.Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, 0))

	elem := slice.Type().Elem()
	a := &sliceAppender{slice: slice, elem: elem}
	if elem.Kind() == reflect.Ptr {
		a.ptr = true
		a.elem = elem.Elem()
	}
	return a, nil
}

func (a *sliceAppender) next(decode func(target any) error) error {
	item := reflect.New(a.elem)
	if err := decode(item.Interface()); err != nil {
		return err
	}
	if a.ptr {
		a.slice.Set(reflect.Append(a.slice, item))
	} else {
		a.slice.Set(reflect.Append(a.slice, item.Elem()))
	}
	return nil
}
