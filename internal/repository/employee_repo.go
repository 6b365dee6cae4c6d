package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"engagepulse/internal/model"
)

// EmployeeRepo exposes the roster the token issuer consumes. Employee
// management beyond this lives in the wider platform, not in this engine.
type EmployeeRepo interface {
	Create(ctx context.Context, employee *model.Employee) (string, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]*model.Employee, error)
}

type employeeRepo struct {
	collection *mongo.Collection
}

// NewEmployeeRepo creates a new employee repository
func NewEmployeeRepo(db *mongo.Database) EmployeeRepo {
	return &employeeRepo{
		collection: db.Collection("employees"),
	}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) (string, error) {
	employee.ID = primitive.NewObjectID().Hex()
	employee.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, employee); err != nil {
		return "", err
	}
	return employee.ID, nil
}

func (r *employeeRepo) GetByCompanyID(ctx context.Context, companyID string) ([]*model.Employee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []*model.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}
