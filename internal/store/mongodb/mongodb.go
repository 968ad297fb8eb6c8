// Package mongodb implements store.Store on top of the MongoDB driver.
// Uniqueness of account username/email and employee email is enforced by
// unique indexes created at startup; the resolver layer pre-checks the
// same constraints to report conflicts before writing.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"staffhub.dev/internal/store"
)

const (
	accountsCollection  = "users"
	employeesCollection = "employees"

	connectTimeout = 10 * time.Second
)

// Store wraps a Mongo database handle. The underlying client pools
// connections and is safe for concurrent use.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Open connects to MongoDB, verifies the connection and ensures the
// unique indexes the domain relies on.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.db.Collection(accountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("mongodb: create account indexes: %w", err)
	}

	_, err = s.db.Collection(employeesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("mongodb: create employee indexes: %w", err)
	}
	return nil
}

func (s *Store) Accounts() store.AccountStore   { return &accountStore{coll: s.db.Collection(accountsCollection)} }
func (s *Store) Employees() store.EmployeeStore { return &employeeStore{coll: s.db.Collection(employeesCollection)} }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *store.Account {
	return &store.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type accountStore struct {
	coll *mongo.Collection
}

func (s *accountStore) Create(ctx context.Context, a *store.Account) error {
	doc := accountDoc{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("mongodb: insert account: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *accountStore) FindByUsername(ctx context.Context, username string) (*store.Account, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *accountStore) FindByEmail(ctx context.Context, email string) (*store.Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *accountStore) findOne(ctx context.Context, filter bson.M) (*store.Account, error) {
	var doc accountDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find account: %w", err)
	}
	return doc.toDomain(), nil
}

type employeeDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	Email         string             `bson:"email"`
	Gender        string             `bson:"gender"`
	Designation   string             `bson:"designation"`
	Salary        float64            `bson:"salary"`
	DateOfJoining time.Time          `bson:"date_of_joining"`
	Department    string             `bson:"department"`
	EmployeePhoto string             `bson:"employee_photo"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newEmployeeDoc(e *store.Employee) employeeDoc {
	return employeeDoc{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Gender:        e.Gender,
		Designation:   e.Designation,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
		EmployeePhoto: e.EmployeePhoto,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (d *employeeDoc) toDomain() *store.Employee {
	return &store.Employee{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Gender:        d.Gender,
		Designation:   d.Designation,
		Salary:        d.Salary,
		DateOfJoining: d.DateOfJoining,
		Department:    d.Department,
		EmployeePhoto: d.EmployeePhoto,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type employeeStore struct {
	coll *mongo.Collection
}

func (s *employeeStore) Create(ctx context.Context, e *store.Employee) error {
	res, err := s.coll.InsertOne(ctx, newEmployeeDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("mongodb: insert employee: %w", err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *employeeStore) FindByID(ctx context.Context, id string) (*store.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot reference any document.
		return nil, store.ErrNotFound
	}
	var doc employeeDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find employee: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *employeeStore) FindByEmail(ctx context.Context, email string) (*store.Employee, error) {
	var doc employeeDoc
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find employee by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *employeeStore) List(ctx context.Context, filter store.EmployeeFilter) ([]*store.Employee, error) {
	query := bson.M{}
	if filter.Designation != "" {
		query["designation"] = filter.Designation
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}

	cur, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongodb: list employees: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*store.Employee, 0)
	for cur.Next(ctx) {
		var doc employeeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb: decode employee: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodb: list employees: %w", err)
	}
	return out, nil
}

func (s *employeeStore) Update(ctx context.Context, e *store.Employee) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, newEmployeeDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("mongodb: update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *employeeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongodb: delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
