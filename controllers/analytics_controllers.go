package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/utils"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// GetWeeklyRevenue -> revenue per hari untuk rentang tanggal (inklusif).
// Hanya sesi yang sudah ditutup yang dihitung; hari tanpa sesi tertutup
// tidak dimunculkan.
func (ac *AnalyticsController) GetWeeklyRevenue(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date format, use YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date format, use YYYY-MM-DD"))
		return
	}
	// Ikutkan seluruh hari terakhir
	end = end.AddDate(0, 0, 1)

	var daily []DailyRevenue
	if err := ac.DB.Raw(`
		SELECT DATE(ended_at) AS date, SUM(final_bill) AS revenue
		FROM table_sessions
		WHERE ended_at IS NOT NULL AND ended_at >= ? AND ended_at < ?
		GROUP BY DATE(ended_at)
		ORDER BY DATE(ended_at)
	`, start, end).Scan(&daily).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	total := decimal.Zero
	for _, d := range daily {
		total = total.Add(decimal.NewFromFloat(d.Revenue))
	}
	totalRevenue, _ := total.Round(2).Float64()

	utils.RespondJSON(c, http.StatusOK, "Weekly revenue", gin.H{
		"start_date":    startDate,
		"end_date":      endDate,
		"daily_revenue": daily,
		"total_revenue": totalRevenue,
		"days_count":    len(daily),
	})
}
