package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/algo/shoe-inventory/internal/core/ports"
)

// CatalogHandler serves the read-only shoe, order and transaction listings.
type CatalogHandler struct {
	shoes        ports.ShoeService
	orders       ports.OrderService
	transactions ports.TransactionService
}

func NewCatalogHandler(shoes ports.ShoeService, orders ports.OrderService, transactions ports.TransactionService) *CatalogHandler {
	return &CatalogHandler{shoes: shoes, orders: orders, transactions: transactions}
}

// ShoesStatus godoc
// @Summary      Shoes endpoint status
// @Tags         shoes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /shoes [get]
func (h *CatalogHandler) ShoesStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "shoes endpoint is available"})
}

// ListShoes godoc
// @Summary      List all shoes
// @Tags         shoes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  shoesResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /shoes/all [get]
func (h *CatalogHandler) ListShoes(c echo.Context) error {
	shoes, err := h.shoes.ListShoes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shoesResponse{Message: "shoes were downloaded successfully", Shoes: shoes})
}

// OrdersStatus godoc
// @Summary      Orders endpoint status
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /orders [get]
func (h *CatalogHandler) OrdersStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "orders endpoint is available"})
}

// ListOrders godoc
// @Summary      List all orders with their shoe
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /orders/all [get]
func (h *CatalogHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Message: "orders were downloaded successfully", Orders: orders})
}

// TransactionsStatus godoc
// @Summary      Transactions endpoint status
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /transactions [get]
func (h *CatalogHandler) TransactionsStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "transactions endpoint is available"})
}

// ListTransactions godoc
// @Summary      List all transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transactionsResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /transactions/all [get]
func (h *CatalogHandler) ListTransactions(c echo.Context) error {
	txs, err := h.transactions.ListTransactions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Message: "transactions were downloaded successfully", Transactions: txs})
}
