package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campus/student-registration/internal/core/domain"
)

const collectionStudents = "students"

type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(collectionStudents)}
}

type mongoStudent struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	RollNo   string             `bson:"roll_no"`
	Email    string             `bson:"email"`
	Course   courseList         `bson:"course"`
	Revision int64              `bson:"revision"`
}

func (m mongoStudent) toDomain() domain.Student {
	course := []string(m.Course)
	if course == nil {
		course = []string{}
	}
	return domain.Student{
		ID:     m.ID.Hex(),
		Name:   m.Name,
		RollNo: m.RollNo,
		Email:  m.Email,
		Course: course,
	}
}

// courseList decodes the course field, accepting documents written with a
// single string instead of an array. Non-string array members are skipped.
type courseList []string

func (c *courseList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*c = nil
	case bsontype.String:
		*c = courseList{rv.StringValue()}
	case bsontype.Array:
		values, err := rv.Array().Values()
		if err != nil {
			return fmt.Errorf("decode course: %w", err)
		}
		out := make(courseList, 0, len(values))
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok {
				out = append(out, s)
			}
		}
		*c = out
	default:
		return fmt.Errorf("decode course: unexpected bson type %s", t)
	}
	return nil
}

// List returns students in natural collection order.
func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.StoreError("find students", err)
	}
	defer cur.Close(ctx)

	out := []domain.Student{}
	for cur.Next(ctx) {
		var ms mongoStudent
		if err := cur.Decode(&ms); err != nil {
			return nil, domain.StoreError("decode student", err)
		}
		out = append(out, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, domain.StoreError("iterate students", err)
	}
	return out, nil
}

// Upsert performs the whole read-modify-write as one findAndModify with an
// aggregation pipeline, so concurrent upserts on a roll number never see a
// torn course list. The unique roll_no index turns a racing second insert
// into an error instead of a duplicate document.
func (r *StudentRepository) Upsert(ctx context.Context, in domain.StudentUpsert) (*domain.UpsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ms mongoStudent
	err := r.col.FindOneAndUpdate(ctx, bson.M{"roll_no": in.RollNo}, upsertPipeline(in), opts).Decode(&ms)
	if err != nil {
		return nil, domain.StoreError("upsert student", err)
	}

	return &domain.UpsertResult{
		Student: ms.toDomain(),
		Created: ms.Revision == 1,
	}, nil
}

// upsertPipeline builds the update: name and email are overwritten, course is
// the case-insensitive union of the stored list and the incoming one, and
// revision is 1 for a freshly inserted document. Every caller-supplied value
// goes through $literal so strings starting with '$' are not read as paths.
//
// Mongo's $toLower folds ASCII only and $trim strips a slightly different
// whitespace set than strings.TrimSpace; incoming courses are already
// normalized in Go.
func upsertPipeline(in domain.StudentUpsert) mongo.Pipeline {
	incoming := in.Courses
	if incoming == nil {
		incoming = []string{}
	}

	stored := bson.M{"$cond": bson.A{
		bson.M{"$isArray": "$course"},
		"$course",
		bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{bson.M{"$type": "$course"}, "string"}},
			bson.A{"$course"},
			bson.A{},
		}},
	}}

	// Stored entries get the same cleanup as incoming ones: strings only,
	// trimmed, blanks dropped.
	storedStrings := bson.M{"$filter": bson.M{
		"input": stored,
		"as":    "c",
		"cond":  bson.M{"$eq": bson.A{bson.M{"$type": "$$c"}, "string"}},
	}}
	trimmed := bson.M{"$map": bson.M{
		"input": storedStrings,
		"as":    "c",
		"in":    bson.M{"$trim": bson.M{"input": "$$c"}},
	}}
	existing := bson.M{"$filter": bson.M{
		"input": trimmed,
		"as":    "c",
		"cond":  bson.M{"$ne": bson.A{"$$c", ""}},
	}}

	// Keep $$this unless its lower-cased form is already in the accumulator.
	appendIfNew := bson.M{"$cond": bson.A{
		bson.M{"$in": bson.A{
			bson.M{"$toLower": "$$this"},
			bson.M{"$map": bson.M{"input": "$$value", "as": "c", "in": bson.M{"$toLower": "$$c"}}},
		}},
		"$$value",
		bson.M{"$concatArrays": bson.A{"$$value", bson.A{"$$this"}}},
	}}

	merged := bson.M{"$reduce": bson.M{
		"input":        bson.M{"$concatArrays": bson.A{existing, bson.M{"$literal": incoming}}},
		"initialValue": bson.A{},
		"in":           appendIfNew,
	}}

	// A document without a name is the empty shell the upsert just created.
	revision := bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{bson.M{"$type": "$name"}, "missing"}},
		1,
		bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$revision", 1}}, 1}},
	}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "name", Value: bson.M{"$literal": in.Name}},
			{Key: "roll_no", Value: bson.M{"$literal": in.RollNo}},
			{Key: "email", Value: bson.M{"$literal": in.Email}},
			{Key: "course", Value: merged},
			{Key: "revision", Value: revision},
		}}},
	}
}

// EnsureIndexes creates the unique roll number index.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "roll_no", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
