package models

import (
	"github.com/thedevsaddam/govalidator"
)

type LoginOpts struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var LoginRules = govalidator.MapData{
	"email":    []string{"required", "email"},
	"password": []string{"required"},
}

// AccountSession relays the bearer token issued by the accounts API.
type AccountSession struct {
	Token     string `json:"token"`
	Email     string `json:"email,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
}

type InfoUser struct {
	ID    int
	Email string
	Roles []int
	Read  bool

	IsAdmin  bool
	IsClient bool
	IsAPI    bool
}
