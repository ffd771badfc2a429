package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/kds"
	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

// AddOrderItem -> tambah item ke order. Jika sudah ada item dengan
// (menu_item_id, note) yang sama persis, quantity-nya ditambah,
// bukan membuat baris baru.
func (oc *OrderController) AddOrderItem(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,gt=0"`
		Note       string `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	oc.mu.Lock()
	defer oc.mu.Unlock()

	tx := oc.DB.Begin()

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var menu models.Menu
	if err := tx.First(&menu, req.MenuItemID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !menu.IsAvailable {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("menu item %q is not available", menu.Name))
		return
	}

	// Merge-on-insert: note harus cocok persis (kosong hanya cocok dengan kosong)
	var item models.OrderItem
	err := tx.Where("order_id = ? AND menu_item_id = ? AND note = ?",
		order.ID, menu.ID, req.Note).First(&item).Error

	switch {
	case err == nil:
		item.Quantity += req.Quantity
		item.UpdatedAt = time.Now()
		if err := tx.Save(&item).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menu.ID,
			Quantity:   req.Quantity,
			Note:       req.Note,
			// Harga dibekukan di sini; perubahan harga katalog
			// tidak menyentuh bill yang sudah berjalan
			PriceAtTime: menu.Price,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Item %d (menu %d x%d) on order %d", item.ID, menu.ID, item.Quantity, order.ID)
	utils.RespondJSON(c, http.StatusCreated, "Order item added", item)
}

// DeleteOrderItem -> hard delete satu item. Total yang sudah beku
// tidak dihitung ulang di sini.
func (oc *OrderController) DeleteOrderItem(c *gin.Context) {
	itemID := c.Param("item_id")

	oc.mu.Lock()
	defer oc.mu.Unlock()

	var item models.OrderItem
	if err := oc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order item %d deleted", item.ID)
	utils.RespondJSON(c, http.StatusOK, "Order item deleted", gin.H{"item_id": item.ID})
}
