package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tithe-dev/tithe/internal/config"
	"github.com/tithe-dev/tithe/internal/tithe"
)

const queryDateFormat = "2006-01-02"

type handler struct {
	cfg *config.Config
}

// filtersEcho reflects the effective filter settings back to the caller.
type filtersEcho struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DescContains    string  `json:"desc_contains"`
	Rate            float64 `json:"rate"`
	CaseInsensitive bool    `json:"case_insensitive"`
}

type tithingResponse struct {
	Filters       filtersEcho   `json:"filters"`
	Count         int           `json:"count"`
	TotalDeposits string        `json:"total_deposits"`
	Tithe         string        `json:"tithe"`
	Rows          []tithe.Match `json:"rows"`
	Errors        []string      `json:"errors"`
}

// tithing handles POST /tithing: validate the query params, read the
// upload, run the pipeline, and render the result as JSON or CSV.
func (h *handler) tithing(c *gin.Context) {
	start, err := time.Parse(queryDateFormat, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be in YYYY-MM-DD format"})
		return
	}
	end, err := time.Parse(queryDateFormat, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be in YYYY-MM-DD format"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be on/after start"})
		return
	}

	needle := c.DefaultQuery("desc_contains", h.cfg.Filter.DescContains)

	rate := h.cfg.Filter.Rate
	if s := c.Query("rate"); s != "" {
		rate, err = strconv.ParseFloat(s, 64)
		if err != nil || rate < 0 || rate > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate must be a number between 0 and 1"})
			return
		}
	}

	caseInsensitive := h.cfg.Filter.CaseInsensitive
	if s := c.Query("case_insensitive"); s != "" {
		caseInsensitive, err = strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "case_insensitive must be true or false"})
			return
		}
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be 'json' or 'csv'"})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading upload: " + err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty upload"})
		return
	}

	f := tithe.Filter{
		Start:         start,
		End:           end,
		Needle:        needle,
		Rate:          decimal.NewFromFloat(rate),
		CaseSensitive: !caseInsensitive,
	}

	res, err := tithe.Run(data, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if format == "csv" {
		var buf bytes.Buffer
		if err := tithe.WriteReport(&buf, res); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering report: " + err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=tithing_report.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, tithingResponse{
		Filters: filtersEcho{
			Start:           start.Format(queryDateFormat),
			End:             end.Format(queryDateFormat),
			DescContains:    needle,
			Rate:            rate,
			CaseInsensitive: caseInsensitive,
		},
		Count:         res.Count,
		TotalDeposits: res.Total.StringFixed(2),
		Tithe:         res.Tithe.StringFixed(2),
		Rows:          res.Rows,
		Errors:        res.Errors,
	})
}
