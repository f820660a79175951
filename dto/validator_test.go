package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes", "Segura#2024", true},
		{"too short", "Ab1#", false},
		{"no uppercase", "segura#2024", false},
		{"no lowercase", "SEGURA#2024", false},
		{"no number", "Segura#hoy!", false},
		{"no special", "Segura2024x", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RegisterRequest{
				Name:     "Juan Pérez",
				Email:    "juan@email.com",
				Password: tc.password,
			}.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateOrderRequestValidation(t *testing.T) {
	err := CreateOrderRequest{MetodoPago: "EFECTIVO"}.Validate()
	assert.Error(t, err, "an order needs at least one item")

	err = CreateOrderRequest{
		Items:      []OrderItemRequest{{ProductID: "p1", Cantidad: 0}},
		MetodoPago: "EFECTIVO",
	}.Validate()
	assert.Error(t, err, "quantities must be positive")

	err = CreateOrderRequest{
		Items:      []OrderItemRequest{{ProductID: "p1", Cantidad: 2}},
		MetodoPago: "BITCOIN",
	}.Validate()
	assert.Error(t, err, "unknown payment methods are rejected")

	err = CreateOrderRequest{
		Items:      []OrderItemRequest{{ProductID: "p1", Cantidad: 2}},
		MetodoPago: "TARJETA",
	}.Validate()
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	err := LoginRequest{Email: "not-an-email"}.Validate()
	require.Error(t, err)

	resp := CreateValidationErrorResponse(err)
	assert.Equal(t, 400, resp.Code)
	require.Len(t, resp.Errors, 2)

	fields := []string{resp.Errors[0].Field, resp.Errors[1].Field}
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}
