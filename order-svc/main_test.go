package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeteria-orders/order-svc/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to wire the full service against sqlmock and miniredis.
func setupApp(t *testing.T, mutate func(*config.Config)) (*app, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.Default()
	cfg.Admin.Secret = "admin"
	cfg.Cron.Secret = "cron"
	if mutate != nil {
		mutate(&cfg)
	}

	a, err := wire(cfg, mockDB, rdb, nil)
	require.NoError(t, err)
	return a, mock, mr
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func catalogRow(id, price, category string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "price", "category", "variations"}).
		AddRow(id, price, category, "{small,large}")
}

func cart(items ...map[string]any) map[string]any {
	return map[string]any{
		"customerName":  "Dana",
		"customerEmail": "dana@example.com",
		"customerPhone": "050-1234567",
		"items":         items,
	}
}

func TestHealthCheck(t *testing.T) {
	a, _, _ := setupApp(t, nil)

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "order-svc", body["service"])
}

func TestWireRejectsBadPolicy(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	cfg := config.Default()
	cfg.Policy.MinOrderAmount = "lots"

	_, err = wire(cfg, mockDB, redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), nil)
	assert.Error(t, err)
}

func TestPlaceOrderUsesCatalogPrices(t *testing.T) {
	a, mock, mr := setupApp(t, nil)

	mock.ExpectQuery("SELECT id, price, category, variations FROM menu_items").
		WithArgs("1").WillReturnRows(catalogRow("1", "18.50", "sandwiches"))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), "1", "Omelette sandwich", 2, sqlmock.AnyArg(), sqlmock.AnyArg(), "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr := post(t, a.handler, "/api/orders", cart(map[string]any{
		"id": "1", "name": "Omelette sandwich", "quantity": 2, "price": 0.01,
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 37.0, body["total"])
	assert.NotEmpty(t, body["orderId"])
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, mr.Exists("catalog:item:1"), "found entries are cached")
}

func TestPlaceOrderBelowConfiguredMinimum(t *testing.T) {
	tests := []struct {
		name     string
		minimum  string
		wantCode int
	}{
		{name: "default minimum", minimum: "25", wantCode: http.StatusBadRequest},
		{name: "lowered minimum", minimum: "24", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			a, mock, _ := setupApp(t, func(cfg *config.Config) {
				cfg.Policy.MinOrderAmount = testCase.minimum
			})

			// 4 x 6.10 = 24.40
			mock.ExpectQuery("SELECT id, price, category, variations FROM menu_items").
				WithArgs("12").WillReturnRows(catalogRow("12", "6.10", "snacks"))
			if testCase.wantCode == http.StatusOK {
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO orders").
					WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
				mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			rr := post(t, a.handler, "/api/orders", cart(map[string]any{
				"id": "12", "name": "Snack", "quantity": 4, "price": 100,
			}))

			assert.Equal(t, testCase.wantCode, rr.Code, rr.Body.String())
			if testCase.wantCode == http.StatusBadRequest {
				assert.Contains(t, rr.Body.String(), "Minimum order amount is 25")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlaceOrderUnknownItemFallsBackToClientPrice(t *testing.T) {
	a, mock, mr := setupApp(t, nil)

	mock.ExpectQuery("SELECT id, price, category, variations FROM menu_items").
		WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr := post(t, a.handler, "/api/orders", cart(map[string]any{
		"id": "ghost", "name": "Special", "quantity": 1, "price": 30,
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"total":30.00`)
	assert.False(t, mr.Exists("catalog:item:ghost"), "misses are not cached")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderFailedInsertLeavesNothing(t *testing.T) {
	a, mock, _ := setupApp(t, nil)

	mock.ExpectQuery("SELECT id, price, category, variations FROM menu_items").
		WillReturnRows(catalogRow("1", "18.50", "sandwiches"))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	rr := post(t, a.handler, "/api/orders", cart(map[string]any{
		"id": "1", "name": "Omelette sandwich", "quantity": 2, "price": 18.5,
	}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
