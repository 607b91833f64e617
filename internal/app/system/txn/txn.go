// internal/app/system/txn/txn.go
// Package txn runs multi-step storage work inside a MongoDB transaction,
// falling back to direct execution on deployments without transaction
// support (standalone mongod, some DocumentDB versions).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"
)

// Runner executes fn as one unit of work.
type Runner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mongo is a Runner backed by a mongo client session.
type Mongo struct {
	client *mongo.Client
	log    *zap.Logger
}

// New creates a Mongo runner.
func New(client *mongo.Client, logger *zap.Logger) *Mongo {
	return &Mongo{client: client, log: logger}
}

// Do runs fn in a snapshot-read, majority-write transaction. Transient
// errors (write conflicts between concurrent transactions) make the driver
// re-run fn, so fn must be safe to repeat.
func (m *Mongo) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			m.log.Warn("sessions not supported; running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	}, opts)
	if err != nil && IsNotSupported(err) {
		m.log.Warn("transactions not supported; running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Direct runs fn without a transaction. Used in tests and by callers that
// only ever perform a single write.
type Direct struct{}

// Do calls fn with ctx.
func (Direct) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// IsNotSupported reports whether err indicates that the server cannot run
// sessions or multi-document transactions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // codes seen from deployments without transaction support
			return true
		}
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "transaction") && strings.Contains(s, "replica set"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "transaction") && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "illegal operation"):
		return true
	}
	return false
}
