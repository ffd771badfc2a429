package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/kds"
	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

type SessionController struct {
	DB *gorm.DB
	// mu menserialisasi check-then-write supaya dua request bersamaan
	// tidak bisa membuka dua sesi di meja yang sama.
	mu sync.Mutex
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

// OpenSession -> seat sebuah meja: buat sesi baru selama meja belum terisi
func (sc *SessionController) OpenSession(c *gin.Context) {
	var req struct {
		TableID      uint    `json:"table_id" binding:"required"`
		CustomerName *string `json:"customer_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx := sc.DB.Begin()

	var table models.DiningTable
	if err := tx.First(&table, req.TableID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Satu meja maksimal satu sesi aktif
	var activeCount int64
	if err := tx.Model(&models.TableSession{}).
		Where("table_id = ? AND ended_at IS NULL", table.ID).
		Count(&activeCount).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if activeCount > 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusConflict, ErrTableOccupied)
		return
	}

	session := models.TableSession{
		TableID:      table.ID,
		CustomerName: req.CustomerName,
		StartedAt:    time.Now(),
	}

	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastSessionOpen(session)

	utils.InfoLogger.Printf("Session %d opened at table %d", session.ID, table.Number)
	utils.RespondJSON(c, http.StatusCreated, "Session opened", session)
}

// CloseSession -> tutup sesi dan bekukan final bill.
// Bill = jumlah total_amount semua order pada sesi, served maupun pending.
func (sc *SessionController) CloseSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx := sc.DB.Begin()

	var session models.TableSession
	if err := tx.Preload("Orders.Items").First(&session, sessionID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if session.EndedAt != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusConflict, ErrSessionClosed)
		return
	}

	finalBill := session.TotalAmount()
	now := time.Now()
	session.FinalBill = &finalBill
	session.EndedAt = &now

	if err := tx.Save(&session).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastSessionClose(session)

	utils.InfoLogger.Printf("Session %d closed, final bill %.2f", session.ID, finalBill)
	utils.RespondJSON(c, http.StatusOK, "Session closed", session)
}

// GetActiveSession -> sesi dengan ended_at NULL untuk satu meja (jika ada)
func (sc *SessionController) GetActiveSession(c *gin.Context) {
	tableID := c.Param("table_id")

	var session models.TableSession
	if err := sc.DB.Preload("Orders.Items").
		Where("table_id = ? AND ended_at IS NULL", tableID).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active session", session)
}

// DeleteSession -> hard delete sesi beserta orders dan items-nya
func (sc *SessionController) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx := sc.DB.Begin()

	var session models.TableSession
	if err := tx.First(&session, sessionID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Cascade manual: items -> orders -> session dalam satu transaksi
	orderIDs := tx.Model(&models.Order{}).Select("id").Where("session_id = ?", session.ID)
	if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Where("session_id = ?", session.ID).Delete(&models.Order{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&session).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Session %d deleted", session.ID)
	utils.RespondJSON(c, http.StatusOK, "Session deleted", gin.H{"session_id": session.ID})
}
