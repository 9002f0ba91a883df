// Package transport defines the request/response DTOs for auth endpoints.
package transport

import "time"

type RegisterClientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
}

type RegisterProfessionalRequest struct {
	Email             string            `json:"email" validate:"required,email"`
	Password          string            `json:"password" validate:"required,min=8,max=72"`
	DisplayName       string            `json:"displayName" validate:"required,min=2,max=100"`
	Phone             string            `json:"phone" validate:"omitempty,max=32"`
	Profession        string            `json:"profession" validate:"required,min=2,max=100"`
	YearsOfExperience int               `json:"yearsOfExperience" validate:"gte=0,lte=80"`
	Qualifications    string            `json:"qualifications" validate:"max=5000"`
	AboutYou          string            `json:"aboutYou" validate:"max=5000"`
	SocialLinks       map[string]string `json:"socialLinks" validate:"omitempty,dive,keys,max=50,endkeys,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Phone       *string   `json:"phone,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
