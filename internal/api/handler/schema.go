package handler

import (
	"time"

	"github.com/algo/shoe-inventory/internal/core/ports"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,max=72"`
	Email    string `json:"email" validate:"required,email"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    ports.UserView `json:"user"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token       string    `json:"token"`
	Expiry      time.Time `json:"expiry"`
	ExpiresInMs int64     `json:"expires_in_ms"`
	Username    string    `json:"username"`
	Roles       []string  `json:"roles"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type shoesResponse struct {
	Message string           `json:"message"`
	Shoes   []ports.ShoeView `json:"shoes"`
}

type ordersResponse struct {
	Message string            `json:"message"`
	Orders  []ports.OrderView `json:"orders"`
}

type transactionsResponse struct {
	Message      string                  `json:"message"`
	Transactions []ports.TransactionView `json:"transactions"`
}

type usersResponse struct {
	Users []ports.UserView `json:"users"`
}

type accountStateRequest struct {
	Enabled *bool `json:"enabled"`
	Locked  *bool `json:"locked"`
}
