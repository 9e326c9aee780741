package models

import "time"

// Product represents a catalog entry. The same struct is stored in MongoDB
// (bson tags) and in SQL databases through GORM.
type Product struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name" gorm:"uniqueIndex;type:varchar(255);not null"`
	Description string    `json:"description" bson:"description" gorm:"not null"`
	Price       int       `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Color       []string  `json:"color" bson:"color" gorm:"serializer:json"`
	Images      []string  `json:"images" bson:"images" gorm:"serializer:json"`
	Size        string    `json:"size,omitempty" bson:"size,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput is the body of an add-product request.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       *int     `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Color       []string `json:"color" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
	Size        string   `json:"size"`
}

// Product builds a new, not yet stored, product from the input.
func (in ProductInput) Product() *Product {
	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Images:      in.Images,
		Size:        in.Size,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if p.Color == nil {
		p.Color = []string{}
	}
	return p
}

// ProductUpdate carries a partial edit. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int     `json:"price"`
	Stock       *int     `json:"stock"`
	Color       []string `json:"color"`
	Images      []string `json:"images"`
	Size        *string  `json:"size"`
}

// Empty reports whether the update names no field at all.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil &&
		u.Color == nil && u.Images == nil && u.Size == nil
}

// Apply copies every present field of u onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Color != nil {
		p.Color = u.Color
	}
	if u.Images != nil {
		p.Images = u.Images
	}
	if u.Size != nil {
		p.Size = *u.Size
	}
}

// Input converts a stored product back to its validated input form.
func (p *Product) Input() ProductInput {
	price, stock := p.Price, p.Stock
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       &price,
		Stock:       &stock,
		Color:       p.Color,
		Images:      p.Images,
		Size:        p.Size,
	}
}
