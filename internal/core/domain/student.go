package domain

// Student is a registered student. RollNo is the natural key used to merge
// repeated registrations; ID is assigned by the store and never changes.
type Student struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	RollNo string   `json:"roll_no"`
	Email  string   `json:"email"`
	Course []string `json:"course"`
}

// StudentUpsert carries an already validated and normalized registration.
type StudentUpsert struct {
	Name    string
	RollNo  string
	Email   string
	Courses []string
}

// UpsertResult is the stored student after an upsert-merge. Created is true
// when no student with the roll number existed before.
type UpsertResult struct {
	Student Student
	Created bool
}
