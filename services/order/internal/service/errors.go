package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrProductNotFound   = errors.New("product not found")  // 404
	ErrInsufficientStock = errors.New("insufficient stock") // 400
	ErrNotFound          = errors.New("not found")          // 404
)

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for product: " + e.ProductName
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
