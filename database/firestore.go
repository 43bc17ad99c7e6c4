package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on Cloud Firestore. The id is the document key.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, app *firebase.App) (*FirestoreStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Collection(name string) Collection {
	return &firestoreCollection{client: s.client, ref: s.client.Collection(name)}
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close(ctx context.Context) error {
	return s.client.Close()
}

type firestoreCollection struct {
	client *firestore.Client
	ref    *firestore.CollectionRef
}

func translateFirestoreErr(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	}
	return err
}

func (c *firestoreCollection) Get(ctx context.Context, id string, dst any) error {
	snap, err := c.ref.Doc(id).Get(ctx)
	if err != nil {
		if errors.Is(translateFirestoreErr(err), ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch %s/%s: %w", c.ref.ID, id, err)
	}
	return snap.DataTo(dst)
}

func (c *firestoreCollection) Create(ctx context.Context, id string, doc any) error {
	if _, err := c.ref.Doc(id).Create(ctx, doc); err != nil {
		if errors.Is(translateFirestoreErr(err), ErrAlreadyExists) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create %s/%s: %w", c.ref.ID, id, err)
	}
	return nil
}

func toUpdates(fields map[string]any) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	return updates
}

func (c *firestoreCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := c.ref.Doc(id).Update(ctx, toUpdates(fields)); err != nil {
		if errors.Is(translateFirestoreErr(err), ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update %s/%s: %w", c.ref.ID, id, err)
	}
	return nil
}

func (c *firestoreCollection) UpdateIfVersion(ctx context.Context, id string, version int64, fields map[string]any) error {
	doc := c.ref.Doc(id)
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if err != nil {
			return translateFirestoreErr(err)
		}
		var current int64
		if v, err := snap.DataAt("version"); err == nil {
			if n, ok := v.(int64); ok {
				current = n
			}
		}
		if current != version {
			return ErrVersionConflict
		}
		updates := toUpdates(fields)
		updates = append(updates, firestore.Update{Path: "version", Value: version + 1})
		return tx.Update(doc, updates)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVersionConflict):
		return err
	default:
		return fmt.Errorf("failed to update %s/%s: %w", c.ref.ID, id, err)
	}
}

func (c *firestoreCollection) Delete(ctx context.Context, id string) error {
	if _, err := c.ref.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if errors.Is(translateFirestoreErr(err), ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s/%s: %w", c.ref.ID, id, err)
	}
	return nil
}

func (c *firestoreCollection) query(q Query) firestore.Query {
	fq := c.ref.Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	for _, o := range q.Orders {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(o.Field, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func (c *firestoreCollection) Find(ctx context.Context, q Query, dst any) error {
	appender, err := newSliceAppender(dst)
	if err != nil {
		return err
	}

	iter := c.query(q).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", c.ref.ID, err)
		}
		if err := appender.next(snap.DataTo); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", c.ref.ID, snap.Ref.ID, err)
		}
	}
}

func (c *firestoreCollection) Count(ctx context.Context, q Query) (int64, error) {
	iter := c.query(q).Select().Documents(ctx)
	defer iter.Stop()

	var n int64
	for {
		_, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count %s: %w", c.ref.ID, err)
		}
		n++
	}
}
