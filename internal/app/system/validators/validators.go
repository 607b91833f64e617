// internal/app/system/validators/validators.go
// Package validators creates the app's collections and attaches
// $jsonSchema validators to them.
package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Mongo server error codes.
const (
	codeNamespaceExists = 48
	codeCommandNotFound = 59
	codeNotImplemented  = 115
)

type collection struct {
	name   string
	schema bson.M
}

func collections() []collection {
	return []collection{
		{"organizations", orgsSchema()},
		{"teams", teamsSchema()},
		{"users", usersSchema()},
	}
}

// EnsureAll creates missing collections and sets their validators.
// Deployments that reject collMod validators (some DocumentDB versions)
// keep the collection without one; that is logged, not returned.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var errs []error
	for _, c := range collections() {
		if err := ensure(ctx, db, c); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	return errors.Join(errs...)
}

func ensure(ctx context.Context, db *mongo.Database, c collection) error {
	if err := ensureCollection(ctx, db, c.name); err != nil {
		return err
	}
	err := setValidator(ctx, db, c.name, c.schema)
	if isCode(err, codeCommandNotFound, "no such command") || isCode(err, codeNotImplemented, "not implemented", "not supported") {
		zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
		return nil
	}
	return err
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	// Listing can fail on restricted users; CreateCollection still tells us.
	err = db.CreateCollection(ctx, name)
	switch {
	case err == nil:
		zap.L().Info("created collection", zap.String("collection", name))
		return nil
	case isCode(err, codeNamespaceExists, "already exists", "namespace exists"):
		return nil
	default:
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
}

func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

// isCode reports whether err is a command error with code, or mentions one
// of phrases.
func isCode(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

/* ------------------------- JSON-Schema docs ---------------------- */

// hexColor matches "#RRGGBB".
const hexColor = "^#[0-9A-Fa-f]{6}$"

func object(required []string, props bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": props,
	}}
}

func nonBlank() bson.M {
	return bson.M{"bsonType": "string", "minLength": 1, "pattern": `.*\S.*`}
}

func objectID() bson.M { return bson.M{"bsonType": "objectId"} }

func usersSchema() bson.M {
	return object(
		[]string{"cuid", "first_name", "last_name", "email", "role", "organization_id", "team_id"},
		bson.M{
			"cuid":            bson.M{"bsonType": "string", "pattern": "^C[0-9]{8}$"},
			"first_name":      nonBlank(),
			"last_name":       nonBlank(),
			"email":           bson.M{"bsonType": "string", "pattern": `\.edu$`},
			"role":            bson.M{"enum": bson.A{models.RoleUser, models.RoleAdmin}},
			"organization_id": objectID(),
			"team_id":         objectID(),
		},
	)
}

func orgsSchema() bson.M {
	return object(
		[]string{"name", "name_ci"},
		bson.M{
			"name":    nonBlank(),
			"name_ci": nonBlank(),
		},
	)
}

func teamsSchema() bson.M {
	return object(
		[]string{"organization_id", "name", "name_ci", "color"},
		bson.M{
			"organization_id": objectID(),
			"name":            nonBlank(),
			"name_ci":         nonBlank(),
			"color":           bson.M{"bsonType": "string", "pattern": hexColor},
			"assign_seq":      bson.M{"bsonType": bson.A{"long", "int"}},
		},
	)
}
