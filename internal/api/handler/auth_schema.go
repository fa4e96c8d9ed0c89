package handler

import "strings"

// signupForm is the POST /signup form body.
type signupForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Confirm  string `form:"confirm"`
}

// loginForm is the POST /login form body.
type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *signupForm) trim() {
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
	f.Confirm = strings.TrimSpace(f.Confirm)
}

func (f *loginForm) trim() {
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
}
