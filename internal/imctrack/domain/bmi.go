package domain

import "time"

// Category is the weight classification derived from a BMI value. The labels
// match the wire contract, which predates this service.
type Category string

const (
	CategoryBajoPeso  Category = "BajoPeso"
	CategoryNormal    Category = "Normal"
	CategorySobrepeso Category = "Sobrepeso"
	CategoryObeso     Category = "Obeso"
)

// BmiRecord is one BMI calculation in a user's history. Records are immutable
// once created and are deleted only by cascading with their owner.
type BmiRecord struct {
	ID         string
	UserID     string
	Height     float64 // metres
	Weight     float64 // kilograms
	Bmi        float64 // weight / height², rounded to 2 decimals
	Category   Category
	ComputedAt time.Time
}
