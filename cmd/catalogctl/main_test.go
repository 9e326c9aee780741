package main

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"catalog/internal/apperror"
	"catalog/internal/console"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, &console.APIError{
		Status:  http.StatusBadRequest,
		Kind:    "validation",
		Message: "Validation failed",
		Fields:  map[string]string{"Price": "Field 'Price' failed on the 'gte' tag", "Images": "Field 'Images' failed on the 'required' tag"},
	})
	assert.Equal(t, "error: Validation failed\n"+
		"  Images: Field 'Images' failed on the 'required' tag\n"+
		"  Price: Field 'Price' failed on the 'gte' tag\n", buf.String())

	buf.Reset()
	report(&buf, errors.New("catalog API unreachable"))
	assert.Equal(t, "error: catalog API unreachable\n", buf.String())
}

func TestAddProduct_DraftErrorsStayLocal(t *testing.T) {
	// an unroutable client proves the request is never sent
	client := console.NewClient("http://127.0.0.1:1")
	var out bytes.Buffer

	err := addProduct(client, []string{"-name", "Shirt", "-price", "abc"}, &out)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Empty(t, out.String())
}

func TestCommandArguments(t *testing.T) {
	client := console.NewClient("http://127.0.0.1:1")
	var out bytes.Buffer

	assert.ErrorContains(t, getProduct(client, nil, &out), "exactly one product id")
	assert.ErrorContains(t, deleteProduct(client, []string{"a", "b"}, &out), "exactly one product id")
	assert.ErrorContains(t, editProduct(client, []string{"-stock", "3"}, &out), "-id is required")
	assert.ErrorContains(t, updateRole(client, []string{"-id", "u1"}, &out), "-role are required")
}

func TestUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)
	for name := range commands {
		assert.Contains(t, buf.String(), name)
	}
}
