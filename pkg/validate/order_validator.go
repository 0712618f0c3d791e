package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет порту OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
// Запись с такой ошибкой отбрасывается из merge и не двигает lastSeenId.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — доменная валидация записи заказа.
type OrderValidator struct{}

// NewOrderValidator — конструктор. Возвращает ErrInvalidOrder
// (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет обязательные поля заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.ID <= 0 {
		return fmt.Errorf("%w: id обязателен и положителен", ErrInvalidOrder)
	}
	if order.FoodName == "" {
		return fmt.Errorf("%w: foodName обязателен", ErrInvalidOrder)
	}
	if order.Quantity <= 0 {
		return fmt.Errorf("%w: quantity должен быть положительным", ErrInvalidOrder)
	}
	if order.Status == "" {
		return fmt.Errorf("%w: status обязателен", ErrInvalidOrder)
	}
	return nil
}
