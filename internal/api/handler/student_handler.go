package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

const msgStudentFieldsRequired = "All fields (name, roll_no, email, course) are required"

type StudentHandler struct {
	studentService ports.StudentService
}

func NewStudentHandler(studentService ports.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List returns every registered student.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200  {array}   domain.Student
// @Failure      302  {string}  string  "no session, redirect to /login"
// @Failure      503  {object}  errorResponse
// @Router       /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.studentService.ListStudents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

// Register creates a student or merges courses into the existing one with
// the same roll number.
//
// @Summary      Register a student
// @Description  Upserts by roll_no. An existing student keeps its id, takes the new name and email, and gains any courses it did not already have (case-insensitive).
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body      studentRequest  true  "Student registration"
// @Success      200   {object}  domain.Student  "merged into an existing student"
// @Success      201   {object}  domain.Student  "new student"
// @Failure      400   {object}  errorResponse
// @Failure      302   {string}  string          "no session, redirect to /login"
// @Failure      503   {object}  errorResponse
// @Router       /students [post]
func (h *StudentHandler) Register(c echo.Context) error {
	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	req.trim()

	var result *domain.UpsertResult
	err := c.Validate(&req)
	if err == nil {
		result, err = h.studentService.RegisterStudent(c.Request().Context(), req.toInput())
	}
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgStudentFieldsRequired})
		}
		return err
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, result.Student)
}
