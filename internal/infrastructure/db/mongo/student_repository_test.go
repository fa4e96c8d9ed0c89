package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campus/student-registration/internal/core/domain"
)

func decodeStudent(t *testing.T, doc bson.M) mongoStudent {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var ms mongoStudent
	require.NoError(t, bson.Unmarshal(raw, &ms))
	return ms
}

func TestCourseList_DecodesArray(t *testing.T) {
	ms := decodeStudent(t, bson.M{"name": "Ana", "course": bson.A{"Math", 3, "Science"}})
	assert.Equal(t, courseList{"Math", "Science"}, ms.Course)
}

func TestCourseList_DecodesLegacyScalar(t *testing.T) {
	ms := decodeStudent(t, bson.M{"name": "Ana", "course": "Math"})
	assert.Equal(t, courseList{"Math"}, ms.Course)
}

func TestCourseList_MissingOrNullIsEmpty(t *testing.T) {
	id := primitive.NewObjectID()
	ms := decodeStudent(t, bson.M{"_id": id, "name": "Ana", "roll_no": "001"})
	st := ms.toDomain()
	assert.Equal(t, id.Hex(), st.ID)
	assert.Equal(t, []string{}, st.Course)

	ms = decodeStudent(t, bson.M{"name": "Ana", "course": nil})
	assert.Equal(t, []string{}, ms.toDomain().Course)
}

func TestCourseList_RejectsUnexpectedType(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"course": 12})
	require.NoError(t, err)

	var ms mongoStudent
	assert.Error(t, bson.Unmarshal(raw, &ms))
}

func TestUpsertPipeline_WrapsCallerValuesInLiteral(t *testing.T) {
	p := upsertPipeline(domain.StudentUpsert{
		Name:    "$name",
		RollNo:  "001",
		Email:   "a@uni.edu",
		Courses: []string{"$course"},
	})
	require.Len(t, p, 1)

	set, ok := p[0].Map()["$set"].(bson.D)
	require.True(t, ok, "expected a single $set stage")

	fields := set.Map()
	assert.Equal(t, bson.M{"$literal": "$name"}, fields["name"])
	assert.Equal(t, bson.M{"$literal": "001"}, fields["roll_no"])
	assert.Equal(t, bson.M{"$literal": "a@uni.edu"}, fields["email"])

	reduce := fields["course"].(bson.M)["$reduce"].(bson.M)
	concat := reduce["input"].(bson.M)["$concatArrays"].(bson.A)
	assert.Equal(t, bson.M{"$literal": []string{"$course"}}, concat[1])
}

func TestUpsertPipeline_NilCoursesBecomeEmptyArray(t *testing.T) {
	p := upsertPipeline(domain.StudentUpsert{Name: "Ana", RollNo: "001", Email: "a@uni.edu"})
	set := p[0].Map()["$set"].(bson.D).Map()
	reduce := set["course"].(bson.M)["$reduce"].(bson.M)
	concat := reduce["input"].(bson.M)["$concatArrays"].(bson.A)
	assert.Equal(t, bson.M{"$literal": []string{}}, concat[1])
}

func TestUpsertPipeline_CleansStoredCourses(t *testing.T) {
	p := upsertPipeline(domain.StudentUpsert{Name: "Ana", RollNo: "001", Email: "a@uni.edu", Courses: []string{"Math"}})
	set := p[0].Map()["$set"].(bson.D).Map()
	reduce := set["course"].(bson.M)["$reduce"].(bson.M)
	concat := reduce["input"].(bson.M)["$concatArrays"].(bson.A)

	dropBlanks := concat[0].(bson.M)["$filter"].(bson.M)
	assert.Equal(t, bson.M{"$ne": bson.A{"$$c", ""}}, dropBlanks["cond"])

	trim := dropBlanks["input"].(bson.M)["$map"].(bson.M)
	assert.Equal(t, bson.M{"$trim": bson.M{"input": "$$c"}}, trim["in"])

	stringsOnly := trim["input"].(bson.M)["$filter"].(bson.M)
	assert.Equal(t, bson.M{"$eq": bson.A{bson.M{"$type": "$$c"}, "string"}}, stringsOnly["cond"])
}
