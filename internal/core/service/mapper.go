package service

import (
	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

const dateLayout = "2006-01-02"

func toShoeView(s *domain.Shoe) ports.ShoeView {
	return ports.ShoeView{
		ID:              s.ID,
		Type:            string(s.Type),
		Size:            s.Size,
		Price:           s.Price,
		ProductionPrice: s.ProductionPrice,
	}
}

func toOrderView(o *domain.Order) ports.OrderView {
	v := ports.OrderView{
		ID:          o.ID,
		ShoeID:      o.ShoeID,
		Status:      string(o.Status),
		Description: o.Description,
		Date:        o.Date.Format(dateLayout),
		Quantity:    o.Quantity,
	}
	if o.Shoe != nil {
		v.ShoeType = string(o.Shoe.Type)
		v.ShoeSize = o.Shoe.Size
		v.ShoePrice = o.Shoe.Price
		v.ShoeProductionPrice = o.Shoe.ProductionPrice
	}
	return v
}

func toTransactionView(t *domain.Transaction) ports.TransactionView {
	v := ports.TransactionView{
		ID:              t.ID,
		OrderID:         t.OrderID,
		Amount:          t.Amount.String(),
		TransactionDate: t.TransactionDate,
		PaymentMethod:   string(t.PaymentMethod),
		Status:          string(t.Status),
	}
	if t.Order != nil {
		v.ShoeID = t.Order.ShoeID
	}
	return v
}

func toUserView(u *domain.User) ports.UserView {
	return ports.UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Enabled:  u.Enabled,
		Locked:   u.Locked,
	}
}
