package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/controllers"
	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

func setupSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("role", "admin")
		c.Next()
	})
	sessionCtrl := controllers.NewSessionController(db)
	router.POST("/table-sessions", sessionCtrl.OpenSession)
	router.POST("/table-sessions/:session_id/close", sessionCtrl.CloseSession)
	router.DELETE("/table-sessions/:session_id", sessionCtrl.DeleteSession)
	return router
}

func openSessionRequest(t *testing.T, router *gin.Engine, tableID uint, customer string) *httptest.ResponseRecorder {
	payload := map[string]interface{}{"table_id": tableID}
	if customer != "" {
		payload["customer_name"] = customer
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/table-sessions", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOpenSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("open_session")
	router := setupSessionRouter(db)

	table := models.DiningTable{Number: 3}
	db.Create(&table)

	w := openSessionRequest(t, router, table.ID, "Sari")
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Session opened", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(table.ID), data["table_id"])
	assert.Equal(t, "Sari", data["customer_name"])
	assert.Nil(t, data["ended_at"])
	assert.Nil(t, data["final_bill"])
}

func TestOpenSessionTableNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("open_session_missing_table")
	router := setupSessionRouter(db)

	w := openSessionRequest(t, router, 999, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenSessionConflictOnOccupiedTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("open_session_conflict")
	router := setupSessionRouter(db)

	table := models.DiningTable{Number: 4}
	db.Create(&table)

	w := openSessionRequest(t, router, table.ID, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Meja yang sama, sesi masih aktif => Conflict
	w = openSessionRequest(t, router, table.ID, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var sessionCount int64
	db.Model(&models.TableSession{}).
		Where("table_id = ? AND ended_at IS NULL", table.ID).
		Count(&sessionCount)
	assert.Equal(t, int64(1), sessionCount)
}

func TestCloseSessionFreezesBill(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("close_session_bill")
	router := setupSessionRouter(db)

	table := models.DiningTable{Number: 6}
	db.Create(&table)

	session := models.TableSession{TableID: table.ID, StartedAt: time.Now()}
	db.Create(&session)

	// Order served dengan total beku 20.0
	servedAt := time.Now()
	frozen := 20.0
	served := models.Order{
		SessionID:  session.ID,
		Status:     models.OrderStatusServed,
		CreatedAt:  time.Now(),
		ServedAt:   &servedAt,
		FinalTotal: &frozen,
	}
	db.Create(&served)

	// Order pending dengan dua item senilai 12.0
	pending := models.Order{SessionID: session.ID, Status: models.OrderStatusPending, CreatedAt: time.Now()}
	db.Create(&pending)
	db.Create(&models.OrderItem{OrderID: pending.ID, MenuItemID: 1, Quantity: 2, PriceAtTime: 4.5})
	db.Create(&models.OrderItem{OrderID: pending.ID, MenuItemID: 2, Quantity: 1, PriceAtTime: 3.0})

	url := fmt.Sprintf("/table-sessions/%d/close", session.ID)
	req, _ := http.NewRequest("POST", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 32.0, data["final_bill"])
	assert.NotNil(t, data["ended_at"])

	// Bill beku: menghapus item setelah close tidak mengubah final_bill
	db.Where("order_id = ?", pending.ID).Delete(&models.OrderItem{})

	var reloaded models.TableSession
	db.First(&reloaded, session.ID)
	assert.NotNil(t, reloaded.FinalBill)
	assert.Equal(t, 32.0, *reloaded.FinalBill)

	// Double close => Conflict
	req, _ = http.NewRequest("POST", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCloseSessionNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("close_session_missing")
	router := setupSessionRouter(db)

	req, _ := http.NewRequest("POST", "/table-sessions/12345/close", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSessionCascades(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("delete_session_cascade")
	router := setupSessionRouter(db)

	table := models.DiningTable{Number: 8}
	db.Create(&table)
	session := models.TableSession{TableID: table.ID, StartedAt: time.Now()}
	db.Create(&session)
	order := models.Order{SessionID: session.ID, Status: models.OrderStatusPending, CreatedAt: time.Now()}
	db.Create(&order)
	db.Create(&models.OrderItem{OrderID: order.ID, MenuItemID: 1, Quantity: 1, PriceAtTime: 5.0})

	url := fmt.Sprintf("/table-sessions/%d", session.ID)
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var sessions, orders, items int64
	db.Model(&models.TableSession{}).Where("id = ?", session.ID).Count(&sessions)
	db.Model(&models.Order{}).Where("session_id = ?", session.ID).Count(&orders)
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.Equal(t, int64(0), sessions)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), items)
}
