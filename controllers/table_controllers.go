package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/kds"
	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru (khusus admin)
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number int `json:"number" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.DiningTable{Number: req.Number}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %d", table.Number)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> floor-plan view: setiap meja dengan sesi aktifnya (jika ada),
// urut nomor meja ascending
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.DiningTable
	if err := tc.DB.
		Preload("Sessions", "ended_at IS NULL").
		Order("number asc").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	result := make([]models.TableOccupancy, 0, len(tables))
	for _, t := range tables {
		view := models.TableOccupancy{
			ID:     t.ID,
			Number: t.Number,
		}
		if len(t.Sessions) > 0 {
			// Invariannya maksimal satu sesi aktif; kalau lebih, ambil yang pertama
			active := t.Sessions[0]
			view.IsOccupied = true
			view.ActiveSessionID = &active.ID
			view.CustomerName = active.CustomerName
			arrival := active.StartedAt
			view.CustomerArrival = &arrival
		}
		result = append(result, view)
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", result)
}
