package repositories

import (
	"fmt"

	"catalog/internal/apperror"
)

func productNotFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("Product with ID %s not found", id))
}

func productNameTaken(name string) error {
	return apperror.Conflict(fmt.Sprintf("A product named '%s' already exists", name))
}

func userNotFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("User with ID %s not found", id))
}

func userEmailNotFound(email string) error {
	return apperror.NotFound(fmt.Sprintf("User with email %s not found", email))
}

func userEmailTaken(email string) error {
	return apperror.Conflict(fmt.Sprintf("Email '%s' already registered", email))
}

func storeFailure(err error, op string) error {
	return apperror.Wrap(apperror.KindStore, err, op)
}
