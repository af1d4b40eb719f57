package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	appreport "github.com/erp/salesperf/internal/application/report"
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/infrastructure/export"
	"github.com/erp/salesperf/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportService is the part of the report application service the handler uses
type ReportService interface {
	Generate(ctx context.Context, data *report.SalesData, req appreport.GenerateRequest) (*appreport.SellerPerformanceResult, error)
	ListStrategies() []appreport.StrategyResponse
}

// ReportHandler serves seller performance reports
type ReportHandler struct {
	BaseHandler
	service ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{service: service, logger: logger}
}

// RegisterRoutes registers report routes under /reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.POST("/seller-performance", h.GenerateSellerPerformance)
	reports.POST("/seller-performance/export", h.ExportSellerPerformance)
	reports.GET("/strategies", h.ListStrategies)
}

// GenerateSellerPerformance godoc
// @ID           generateSellerPerformanceReport
// @Summary      Generate seller performance report
// @Description  Ranks sellers by profit and assigns bonuses for the posted sales dataset
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        revenue_strategy   query string false "Revenue strategy name"
// @Param        bonus_strategy     query string false "Bonus strategy name"
// @Param        top_products_limit query int    false "Top products per seller"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      413 {object} dto.Response
// @Router       /reports/seller-performance [post]
func (h *ReportHandler) GenerateSellerPerformance(c *gin.Context) {
	result, ok := h.generate(c)
	if !ok {
		return
	}
	h.Success(c, result.ToResponse())
}

// ExportSellerPerformance godoc
// @ID           exportSellerPerformanceReport
// @Summary      Export seller performance report
// @Description  Generates the report and returns it as a json, xlsx, pdf or table file
// @Tags         reports
// @Accept       json
// @Produce      octet-stream
// @Param        format query string false "Export format" default(json)
// @Success      200 {file} file
// @Failure      400 {object} dto.Response
// @Router       /reports/seller-performance/export [post]
func (h *ReportHandler) ExportSellerPerformance(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeUnsupportedFormat, err.Error())
		return
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeUnsupportedFormat, err.Error())
		return
	}

	result, ok := h.generate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, NewExportDocument(result)); err != nil {
		h.logger.Error("Failed to export seller performance report",
			zap.String("format", string(format)),
			zap.Error(err),
		)
		h.InternalError(c, "Failed to render report")
		return
	}

	filename := fmt.Sprintf("seller-performance-%s%s", result.Summary.RunID, exporter.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, exporter.ContentType(), buf.Bytes())
}

// ListStrategies godoc
// @ID           listReportStrategies
// @Summary      List report strategies
// @Description  Lists the revenue and bonus strategies a report can use
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /reports/strategies [get]
func (h *ReportHandler) ListStrategies(c *gin.Context) {
	h.Success(c, h.service.ListStrategies())
}

// generate binds the request and runs the report; on failure the error response is already written
func (h *ReportHandler) generate(c *gin.Context) (*appreport.SellerPerformanceResult, bool) {
	var req appreport.GenerateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return nil, false
	}

	var data report.SalesData
	if err := c.ShouldBindJSON(&data); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.HandleError(c, err)
			return nil, false
		}
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Invalid JSON body: "+err.Error())
		return nil, false
	}

	result, err := h.service.Generate(c.Request.Context(), &data, req)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return result, true
}

// NewExportDocument converts a report result into a renderable document
func NewExportDocument(result *appreport.SellerPerformanceResult) export.Document {
	return export.Document{
		Title:           export.DefaultTitle,
		RunID:           result.Summary.RunID,
		GeneratedAt:     result.Summary.GeneratedAt,
		RevenueStrategy: result.Summary.RevenueStrategy,
		BonusStrategy:   result.Summary.BonusStrategy,
		Rows:            result.Rows,
	}
}
