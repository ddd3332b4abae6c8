package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ignite-agency/website/api/internal/database"
	"github.com/ignite-agency/website/api/internal/entity"
)

// LeadsRepository persists accepted lead submissions.
type LeadsRepository interface {
	Insert(ctx context.Context, lead entity.Lead) error
}

// NewLeadID generates the identifier assigned to a lead before it is stored.
func NewLeadID() string {
	return bson.NewObjectID().Hex()
}

// mongoClientProvider is satisfied by database.MongoProvider.
type mongoClientProvider interface {
	Client(ctx context.Context) (*mongo.Client, error)
}

var _ mongoClientProvider = (*database.MongoProvider)(nil)

// MongoLeadsRepository stores leads in the contactsubmissions collection.
type MongoLeadsRepository struct {
	provider mongoClientProvider
	database string
}

// NewMongoLeadsRepository wires a MongoDB backed repository.
func NewMongoLeadsRepository(provider *database.MongoProvider, databaseName string) *MongoLeadsRepository {
	return &MongoLeadsRepository{provider: provider, database: databaseName}
}

type leadDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Type      string        `bson:"type"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone"`
	Company   string        `bson:"company"`
	Service   string        `bson:"service"`
	Budget    string        `bson:"budget"`
	Message   string        `bson:"message"`
	Language  string        `bson:"language"`
	Status    string        `bson:"status"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func toLeadDocument(lead entity.Lead) (leadDocument, error) {
	id, err := bson.ObjectIDFromHex(lead.ID)
	if err != nil {
		return leadDocument{}, fmt.Errorf("invalid lead id %q: %w", lead.ID, err)
	}
	return leadDocument{
		ID:        id,
		Type:      string(lead.Kind),
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone(),
		Company:   lead.Company(),
		Service:   lead.Service,
		Budget:    lead.Budget(),
		Message:   lead.Message,
		Language:  string(lead.Language),
		Status:    string(lead.Status),
		CreatedAt: lead.Timestamp,
		UpdatedAt: lead.Timestamp,
	}, nil
}

// Insert writes the lead as a new document.
func (r *MongoLeadsRepository) Insert(ctx context.Context, lead entity.Lead) error {
	doc, err := toLeadDocument(lead)
	if err != nil {
		return err
	}

	client, err := r.provider.Client(ctx)
	if err != nil {
		return fmt.Errorf("mongodb unavailable: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, database.MongoTimeout)
	defer cancel()

	collection := client.Database(r.database).Collection(database.CollectionContactSubmissions)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// PGXLeadsRepository stores leads in the PostgreSQL leads table.
type PGXLeadsRepository struct {
	pool pgxExecer
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool pgxExecer) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

// Insert writes the lead as a new row.
func (r *PGXLeadsRepository) Insert(ctx context.Context, lead entity.Lead) error {
	cmd, err := r.pool.Exec(ctx, `
        INSERT INTO leads (id, type, name, email, phone, company, service, budget, message, language, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
    `,
		lead.ID,
		string(lead.Kind),
		lead.Name,
		lead.Email,
		lead.Phone(),
		lead.Company(),
		lead.Service,
		lead.Budget(),
		lead.Message,
		string(lead.Language),
		string(lead.Status),
		lead.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	if cmd.RowsAffected() != 1 {
		return fmt.Errorf("insert lead: expected 1 row, got %d", cmd.RowsAffected())
	}
	return nil
}

var (
	_ LeadsRepository = (*MongoLeadsRepository)(nil)
	_ LeadsRepository = (*PGXLeadsRepository)(nil)
)
