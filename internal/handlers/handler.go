package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/config"
	"github.com/docslot/docslot-api/internal/payment"
	"github.com/docslot/docslot-api/internal/storage"
)

const (
	usersCollection        = "users"
	doctorsCollection      = "doctors"
	appointmentsCollection = "appointments"
)

// Handler carries every dependency the controllers need. All configuration
// is injected here; controllers never read the environment.
type Handler struct {
	DB       *mongo.Database
	Cfg      *config.Config
	Log      *zap.SugaredLogger
	Tokens   *auth.Tokens
	Images   storage.ImageStore
	Payments payment.Gateway
}

func NewHandler(db *mongo.Database, cfg *config.Config, log *zap.SugaredLogger, tokens *auth.Tokens, images storage.ImageStore, payments payment.Gateway) *Handler {
	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Log:      log,
		Tokens:   tokens,
		Images:   images,
		Payments: payments,
	}
}

func (h *Handler) users() *mongo.Collection    { return h.DB.Collection(usersCollection) }
func (h *Handler) doctors() *mongo.Collection  { return h.DB.Collection(doctorsCollection) }
func (h *Handler) appointments() *mongo.Collection {
	return h.DB.Collection(appointmentsCollection)
}

// EnsureIndexes creates the unique email indexes that back the duplicate
// registration checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []string{usersCollection, doctorsCollection} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return err
		}
	}
	return nil
}
