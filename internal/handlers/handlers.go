package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"folio/internal/ingest"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/service"
	"folio/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.PortfolioService
	log *logrus.Logger
}

func NewHandler(s *service.PortfolioService, log *logrus.Logger) *Handler {
	return &Handler{svc: s, log: log}
}

// UploadCSV accepts a trade file either as multipart field "file" or as the raw body.
func (h *Handler) UploadCSV(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			h.log.Warnf("missing upload file: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			h.log.Warnf("open upload file: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
			return
		}
		defer f.Close()
		body = f
	}

	rows, err := ingest.ReadRows(body)
	if err != nil {
		h.log.Warnf("invalid csv: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.upload(c, rows)
}

// PostRows accepts already-tokenized rows as a JSON array of objects.
func (h *Handler) PostRows(c *gin.Context) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		h.log.Warnf("invalid post body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows := make([]portfolio.RawRow, len(raw))
	for i, r := range raw {
		rows[i] = portfolio.RawRow(r)
	}
	h.upload(c, rows)
}

func (h *Handler) upload(c *gin.Context, rows []portfolio.RawRow) {
	res, err := h.svc.Upload(c.Request.Context(), c.Param("userId"), rows)
	if err != nil {
		var verr *portfolio.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "diagnostics": verr.Diagnostics})
			return
		}
		h.log.Errorf("upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// current loads the user's result, answering 404 itself when there is none.
func (h *Handler) current(c *gin.Context) (*models.ParsedResult, bool) {
	res, err := h.svc.Current(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.log.Errorf("load portfolio failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, false
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no portfolio uploaded"})
		return nil, false
	}
	return res, true
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	res, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ResetPortfolio(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context(), c.Param("userId")); err != nil {
		h.log.Errorf("reset portfolio failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

type holdingRow struct {
	models.Holding
	Display map[string]string `json:"display"`
}

func displayHolding(hd models.Holding) holdingRow {
	return holdingRow{Holding: hd, Display: map[string]string{
		"sharesHeld":                view.FormatShares(hd.SharesHeld),
		"avgCostBasis":              view.FormatCurrency(hd.AvgCostBasis),
		"currentPrice":              view.FormatCurrency(hd.CurrentPrice),
		"marketValue":               view.FormatCurrency(hd.MarketValue),
		"unrealizedGainLoss":        view.FormatCurrency(hd.UnrealizedGainLoss),
		"unrealizedGainLossPercent": view.FormatPercent(float64(hd.UnrealizedGainLossPercent)),
	}}
}

func (h *Handler) GetHoldings(c *gin.Context) {
	field, err := view.ParseSortField(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := view.ParseSortDirection(c.Query("dir"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page := 1
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
	}

	res, ok := h.current(c)
	if !ok {
		return
	}
	tp := view.QueryHoldings(res.Holdings, view.TableQuery{Search: c.Query("search"), Field: field, Direction: dir, Page: page})
	items := make([]holdingRow, 0, len(tp.Items))
	for _, hd := range tp.Items {
		items = append(items, displayHolding(hd))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "page": tp.Page, "totalPages": tp.TotalPages, "total": tp.Total})
}

func (h *Handler) GetSummary(c *gin.Context) {
	res, ok := h.current(c)
	if !ok {
		return
	}
	s := res.Summary
	display := gin.H{
		"totalValue":           view.FormatCurrency(s.TotalValue),
		"totalGainLoss":        view.FormatCurrency(s.TotalGainLoss),
		"totalGainLossPercent": view.FormatPercent(float64(s.TotalGainLossPercent)),
	}
	if s.TopPerformer != nil {
		display["topPerformer"] = s.TopPerformer.Symbol + " " + view.FormatPercent(float64(s.TopPerformer.UnrealizedGainLossPercent))
	}
	if s.WorstPerformer != nil {
		display["worstPerformer"] = s.WorstPerformer.Symbol + " " + view.FormatPercent(float64(s.WorstPerformer.UnrealizedGainLossPercent))
	}
	c.JSON(http.StatusOK, gin.H{"summary": s, "display": display})
}

func (h *Handler) GetHistoryChart(c *gin.Context) {
	res, ok := h.current(c)
	if !ok {
		return
	}
	h.png(c, func() ([]byte, error) { return view.RenderHistoryChart(res.PortfolioHistory) })
}

func (h *Handler) GetAllocationChart(c *gin.Context) {
	res, ok := h.current(c)
	if !ok {
		return
	}
	h.png(c, func() ([]byte, error) { return view.RenderAllocationChart(res.Holdings) })
}

func (h *Handler) png(c *gin.Context, render func() ([]byte, error)) {
	b, err := render()
	if err != nil {
		h.log.Warnf("chart unavailable: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
