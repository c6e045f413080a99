package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xcursi322/prakt/pkg/validate"
)

type registerInput struct {
	Username             string `json:"username"              validate:"required,alpha_dash,min=3,max=150"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username:             "john_doe",
		Email:                "john@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	assert.Contains(t, validate.Struct(in{Email: "not-an-email"}), "email")
	assert.Empty(t, validate.Struct(in{Email: "valid@example.com"}))
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"gte=1,lte=99"`
	}
	assert.Contains(t, validate.Struct(in{Quantity: 0}), "quantity")
	assert.Contains(t, validate.Struct(in{Quantity: 100}), "quantity")
	assert.Empty(t, validate.Struct(in{Quantity: 5}))
}

func TestInRule(t *testing.T) {
	type in struct {
		Payment string `json:"payment_method" validate:"required,in=online,cod"`
	}
	assert.Contains(t, validate.Struct(in{Payment: "crypto"}), "payment_method")
	assert.Empty(t, validate.Struct(in{Payment: "cod"}))
}

func TestMinDoesNotSwallowNextRule(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"min=2,max=4"`
	}
	assert.Contains(t, validate.Struct(in{Name: "abcdef"}), "name")
	assert.Empty(t, validate.Struct(in{Name: "abc"}))
}

func TestConfirmedRule(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username: "john", Email: "j@example.com",
		Password: "secret123", PasswordConfirmation: "wrong",
	})
	assert.Equal(t, "The password confirmation does not match.", errs["password_confirmation"])
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Title string `json:"title" validate:"nullable,min=3"`
	}
	assert.Empty(t, validate.Struct(in{Title: ""}))
	assert.Contains(t, validate.Struct(in{Title: "ab"}), "title")
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,between=1,5"`
	}
	assert.Contains(t, validate.Struct(in{Rating: 6}), "rating")
	assert.Empty(t, validate.Struct(in{Rating: 4}))
}

func TestRequiredIfRule(t *testing.T) {
	type in struct {
		DeliveryMethod string `json:"delivery_method"`
		PostalBranch   string `json:"postal_branch" validate:"required_if=delivery_method:np_branch,max=100"`
	}
	assert.Contains(t, validate.Struct(in{DeliveryMethod: "np_branch"}), "postal_branch")
	assert.Empty(t, validate.Struct(in{DeliveryMethod: "courier_kyiv"}))
	assert.Empty(t, validate.Struct(in{DeliveryMethod: "np_branch", PostalBranch: "12"}))
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required,alpha_dash"`
	}
	assert.Empty(t, validate.Struct(in{Username: "hello-world_123"}))
	assert.Contains(t, validate.Struct(in{Username: "hello world!"}), "username")
}
