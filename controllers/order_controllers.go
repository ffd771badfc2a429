package controllers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/kds"
	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

type OrderController struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> buat order baru (status pending, tanpa item) pada sebuah sesi
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		SessionID uint `json:"session_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession
	if err := oc.DB.First(&session, req.SessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order := models.Order{
		SessionID: session.ID,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
		Items:     []models.OrderItem{},
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order %d created on session %d", order.ID, session.ID)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order beserta items
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order":        order,
		"total_amount": order.TotalAmount(),
	})
}

// ListOrders -> antrian service berhalaman. Pending dulu (FIFO dapur,
// created_at asc), lalu served (served_at desc, yang terbaru di atas).
func (oc *OrderController) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	if err := oc.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END").
		Order("CASE WHEN status = 'pending' THEN created_at END asc").
		Order("CASE WHEN status = 'served' THEN served_at END desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	utils.RespondJSON(c, http.StatusOK, "List of orders", gin.H{
		"orders":      orders,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	})
}

// ToggleServed -> pending => served membekukan final_total dan mencatat served_at;
// served => pending mengosongkan keduanya lagi (salah klik bisa dibatalkan)
func (oc *OrderController) ToggleServed(c *gin.Context) {
	orderID := c.Param("order_id")

	oc.mu.Lock()
	defer oc.mu.Unlock()

	tx := oc.DB.Begin()

	var order models.Order
	if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status == models.OrderStatusPending {
		frozen := order.TotalAmount()
		now := time.Now()
		order.Status = models.OrderStatusServed
		order.ServedAt = &now
		order.FinalTotal = &frozen
	} else {
		order.Status = models.OrderStatusPending
		order.ServedAt = nil
		order.FinalTotal = nil
	}

	// Updates via map supaya nil ServedAt/FinalTotal ikut ditulis sebagai NULL
	if err := tx.Model(&order).
		Updates(map[string]interface{}{
			"status":      order.Status,
			"served_at":   order.ServedAt,
			"final_total": order.FinalTotal,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order %d toggled to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status toggled", order)
}

// DeleteOrder -> hard delete beserta seluruh items-nya
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	oc.mu.Lock()
	defer oc.mu.Unlock()

	tx := oc.DB.Begin()

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastOrderDelete(order.ID)

	utils.InfoLogger.Printf("Order %d deleted", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}
