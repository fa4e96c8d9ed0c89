package handler

import (
	"strings"

	"github.com/campus/student-registration/internal/core/ports"
)

// studentRequest is the POST /students body. Course accepts a string or an
// array of strings.
type studentRequest struct {
	Name   string `json:"name"    validate:"required" example:"Asha Verma"`
	RollNo string `json:"roll_no" validate:"required" example:"42"`
	Email  string `json:"email"   validate:"required" example:"asha@example.edu"`
	Course any    `json:"course"  swaggertype:"array,string" example:"Math,Physics"`
}

func (r *studentRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.RollNo = strings.TrimSpace(r.RollNo)
	r.Email = strings.TrimSpace(r.Email)
}

func (r studentRequest) toInput() ports.RegisterStudentInput {
	return ports.RegisterStudentInput{
		Name:   r.Name,
		RollNo: r.RollNo,
		Email:  r.Email,
		Course: r.Course,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
