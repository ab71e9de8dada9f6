package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/internal/catalog"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
	"github.com/gtlearning/storefront-backend/pkg/pagination"
	"github.com/gtlearning/storefront-backend/pkg/types"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(
		NewRepository(conn),
		gormTxRunner{db: conn},
		catalog.NewRepository(conn),
		nil,
		enums.CurrencyZAR,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestCreateOrderValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateTestProduct(t, conn, "120.00")

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      testCustomer(),
		PaymentMethod: "payfast",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s for empty items, got %v", pkgerrors.CodeValidation, err)
	}

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      types.Customer{FirstName: "Thandi"},
		Items:         []LineItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "payfast",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s for incomplete customer, got %v", pkgerrors.CodeValidation, err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	missing, ok := details["missing_fields"].([]string)
	if !ok || len(missing) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", details["missing_fields"])
	}
	if missing[0] != "customer.last_name" {
		t.Fatalf("expected declaration-order fields, got %v", missing)
	}

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      testCustomer(),
		Items:         []LineItemInput{{ProductID: product.ID, Quantity: 0}},
		PaymentMethod: "payfast",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidQuantity {
		t.Fatalf("expected %s for zero quantity, got %v", pkgerrors.CodeInvalidQuantity, err)
	}

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      testCustomer(),
		Items:         []LineItemInput{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: "payfast",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected %s for unknown product, got %v", pkgerrors.CodeNotFound, err)
	}
}

func TestCreateOrderPricingAndSnapshot(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	reader := mustCreateTestProduct(t, conn, "120.00")
	kit := mustCreateTestProduct(t, conn, "299.99")

	view, err := svc.CreateOrder(ctx, CreateOrderInput{
		Customer: testCustomer(),
		Items: []LineItemInput{
			{ProductID: reader.ID, Quantity: 2},
			{ProductID: kit.ID, Quantity: 1},
		},
		PaymentMethod: "payfast",
		Shipping:      "50.00",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if view.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", view.Status)
	}
	if view.Currency != enums.CurrencyZAR {
		t.Fatalf("expected default currency ZAR, got %s", view.Currency)
	}
	if !view.Subtotal.Equal(decimal.RequireFromString("539.99")) {
		t.Fatalf("expected subtotal 539.99, got %s", view.Subtotal)
	}
	if !view.Total.Equal(decimal.RequireFromString("589.99")) {
		t.Fatalf("expected total 589.99, got %s", view.Total)
	}
	if !strings.HasPrefix(view.PaymentURL, "/payment/payfast/") {
		t.Fatalf("expected payfast payment url, got %q", view.PaymentURL)
	}
	if view.Message == "" {
		t.Fatal("expected a confirmation message on order placement")
	}

	// Line items are snapshots: a later catalog edit must not reach them.
	if err := conn.Model(reader).Update("price", decimal.NewFromFloat(999)).Error; err != nil {
		t.Fatalf("reprice product: %v", err)
	}
	fetched, err := svc.GetOrder(ctx, view.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if fetched.Message != "" {
		t.Fatalf("expected no message on order reads, got %q", fetched.Message)
	}
	for _, item := range fetched.Items {
		if item.ProductID == reader.ID && !item.UnitPrice.Equal(decimal.RequireFromString("120.00")) {
			t.Fatalf("expected snapshot unit price 120.00, got %s", item.UnitPrice)
		}
	}
}

func TestCreateOrderUnknownPaymentMethodRoutesGeneric(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateTestProduct(t, conn, "80.00")

	view, err := svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      testCustomer(),
		Items:         []LineItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "crypto",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if view.PaymentMethod != "crypto" {
		t.Fatalf("expected raw payment method kept, got %q", view.PaymentMethod)
	}
	if !strings.HasPrefix(view.PaymentURL, "/payment/generic/") {
		t.Fatalf("expected generic payment url, got %q", view.PaymentURL)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateTestProduct(t, conn, "45.50")

	view, err := svc.CreateOrder(ctx, CreateOrderInput{
		Customer:      testCustomer(),
		Items:         []LineItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "paygate",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "paid"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", updated.Status)
	}

	// paid is terminal.
	_, err = svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "cancelled"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s from terminal state, got %v", pkgerrors.CodeStateConflict, err)
	}

	_, err = svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "shipped"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s for unknown status, got %v", pkgerrors.CodeValidation, err)
	}

	_, err = svc.UpdateStatus(ctx, uuid.New(), UpdateStatusInput{Status: "paid"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected %s for unknown order, got %v", pkgerrors.CodeNotFound, err)
	}
}

func TestListOrdersPagination(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateTestProduct(t, conn, "10.00")

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOrder(ctx, CreateOrderInput{
			Customer:      testCustomer(),
			Items:         []LineItemInput{{ProductID: product.ID, Quantity: i + 1}},
			PaymentMethod: "paypal",
		}); err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	page, err := svc.ListOrders(ctx, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(page.Orders))
	}
	if page.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}

	rest, err := svc.ListOrders(ctx, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest.Orders) != 1 {
		t.Fatalf("expected 1 order on second page, got %d", len(rest.Orders))
	}
	if rest.NextCursor != "" {
		t.Fatalf("expected no further cursor, got %q", rest.NextCursor)
	}

	if _, err := svc.ListOrders(ctx, pagination.Params{Cursor: "not-base64!"}); err == nil {
		t.Fatal("expected invalid cursor error")
	}
}
