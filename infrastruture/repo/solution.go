package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	saveTimeout  = time.Second
	queryTimeout = 2 * time.Second
)

var _ i.SolutionRepo = &SolutionRepo{}

// SolutionRepo handles the persistence of search runs.
type SolutionRepo struct {
	collection *mongo.Collection
}

// NewSolutionRepo creates a new SolutionRepo with the given MongoDB client, database name, and collection name.
func NewSolutionRepo(client *mongo.Client, dbName, collectionName string) *SolutionRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SolutionRepo{
		collection: collection,
	}
}

// Save inserts or updates a solution in the repository.
func (r *SolutionRepo) Save(ctx context.Context, solution *dmn.Solution) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	filter := bson.M{"_id": solution.ID}
	update := bson.M{
		"$set": bson.M{
			"fingerprint": solution.Fingerprint,
			"layout":      solution.Layout,
			"bound":       solution.Bound,
			"policy":      solution.Policy,
			"outcome":     solution.Outcome,
			"path":        solution.Path,
			"cost":        solution.Cost,
			"expanded":    solution.Expanded,
			"closed":      solution.Closed,
			"createdAt":   solution.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a solution by its ID.
// Returns dmn.ErrSolutionNotFound if the solution does not exist.
func (r *SolutionRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var solution dmn.Solution
	if err := r.collection.FindOne(ctx, filter).Decode(&solution); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrSolutionNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &solution, nil
}
