package service

import (
	"context"
	"fmt"

	"github.com/algo/shoe-inventory/internal/core/ports"
)

type ShoeService struct {
	repo ports.ShoeRepository
}

func NewShoeService(repo ports.ShoeRepository) *ShoeService {
	return &ShoeService{repo: repo}
}

func (s *ShoeService) ListShoes(ctx context.Context) ([]ports.ShoeView, error) {
	shoes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	out := make([]ports.ShoeView, 0, len(shoes))
	for _, sh := range shoes {
		out = append(out, toShoeView(sh))
	}
	return out, nil
}

type OrderService struct {
	repo ports.OrderRepository
}

func NewOrderService(repo ports.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]ports.OrderView, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out, nil
}

type TransactionService struct {
	repo ports.TransactionRepository
}

func NewTransactionService(repo ports.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]ports.TransactionView, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]ports.TransactionView, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionView(t))
	}
	return out, nil
}
