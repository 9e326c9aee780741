// Package console holds the admin console's form handling and its client
// for the catalog API.
package console

import (
	"strconv"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/models"
)

// ProductDraft is the product form as typed by an operator.
type ProductDraft struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Color       string // comma separated
	Images      string // comma separated URLs
	Size        string
}

// Parse checks that required fields are present and converts the draft to
// an add-product body.
func (d ProductDraft) Parse() (models.ProductInput, error) {
	fields := map[string]string{}
	required(fields, "name", d.Name)
	required(fields, "description", d.Description)

	in := models.ProductInput{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Color:       splitList(d.Color),
		Images:      splitList(d.Images),
		Size:        strings.TrimSpace(d.Size),
	}
	if len(in.Images) == 0 {
		fields["images"] = "is required"
	}
	if required(fields, "price", d.Price) {
		in.Price = parseInt(fields, "price", d.Price)
	}
	if required(fields, "stock", d.Stock) {
		in.Stock = parseInt(fields, "stock", d.Stock)
	}
	if in.Color == nil {
		in.Color = []string{}
	}

	if len(fields) > 0 {
		return models.ProductInput{}, apperror.Validation("Please fill in every required field", fields)
	}
	return in, nil
}

// ParseUpdate converts the non-empty fields of the draft to an edit body.
func (d ProductDraft) ParseUpdate() (models.ProductUpdate, error) {
	fields := map[string]string{}
	var upd models.ProductUpdate

	if s := strings.TrimSpace(d.Name); s != "" {
		upd.Name = &s
	}
	if s := strings.TrimSpace(d.Description); s != "" {
		upd.Description = &s
	}
	if s := strings.TrimSpace(d.Size); s != "" {
		upd.Size = &s
	}
	if strings.TrimSpace(d.Price) != "" {
		upd.Price = parseInt(fields, "price", d.Price)
	}
	if strings.TrimSpace(d.Stock) != "" {
		upd.Stock = parseInt(fields, "stock", d.Stock)
	}
	upd.Color = splitList(d.Color)
	upd.Images = splitList(d.Images)

	if len(fields) > 0 {
		return models.ProductUpdate{}, apperror.Validation("Some fields are invalid", fields)
	}
	if upd.Empty() {
		return upd, apperror.Validation("Nothing to update", nil)
	}
	return upd, nil
}

// Reset clears the form after a successful submission.
func (d *ProductDraft) Reset() { *d = ProductDraft{} }

// UserDraft is the user form as typed by an operator.
type UserDraft struct {
	Name     string
	Email    string
	Password string
	Cart     string // comma separated product IDs
	Role     string
}

// Parse checks that required fields are present and converts the draft to
// an add-user body.
func (d UserDraft) Parse() (models.UserInput, error) {
	fields := map[string]string{}
	required(fields, "name", d.Name)
	required(fields, "email", d.Email)
	required(fields, "password", d.Password)
	if len(fields) > 0 {
		return models.UserInput{}, apperror.Validation("Please fill in every required field", fields)
	}

	cart := splitList(d.Cart)
	if cart == nil {
		cart = []string{}
	}
	return models.UserInput{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.TrimSpace(d.Email),
		Password: d.Password,
		Cart:     cart,
		Role:     models.Role(strings.ToLower(strings.TrimSpace(d.Role))),
	}, nil
}

// Reset clears the form after a successful submission.
func (d *UserDraft) Reset() { *d = UserDraft{} }

func required(fields map[string]string, name, value string) bool {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
		return false
	}
	return true
}

func parseInt(fields map[string]string, name, value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		fields[name] = "must be a whole number"
		return nil
	}
	return &n
}

// splitList splits a comma separated value, trimming entries and dropping
// empty ones. It returns nil when nothing remains.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
