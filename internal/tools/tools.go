package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/internal/importer"
	"github.com/cloud-ru/mcp-espp-go/internal/metrics"
	"github.com/cloud-ru/mcp-espp-go/internal/report"
	"github.com/cloud-ru/mcp-espp-go/internal/validators"
)

const (
	ToolCalculate      = "espp_calculate"
	ToolCalculateBatch = "espp_calculate_batch"
	ToolImportForm3922 = "form3922_import"
	ToolReport         = "espp_report"
)

// ErrUnknownTool is returned by Call for a name that is not registered
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler is the handler of one MCP tool
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Tool is a registered tool
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

// ImportResult is the outcome of a Form 3922 import
type ImportResult struct {
	Matched bool                 `json:"matched"`
	Inputs  *calculations.Inputs `json:"inputs,omitempty"`
}

// Toolset holds the tools served by the process
type Toolset struct {
	tools map[string]Tool
}

// NewToolset registers every ESPP tool
func NewToolset(cfg *config.Config, tracer trace.Tracer, generator *report.Generator) *Toolset {
	ts := &Toolset{tools: make(map[string]Tool)}
	ts.register(ToolCalculate, "Calculate ESPP ordinary income, capital gain, adjusted cost basis and tax for one sale",
		CalculateHandler(cfg, tracer))
	ts.register(ToolCalculateBatch, "Calculate several independent ESPP sale scenarios",
		CalculateBatchHandler(cfg, tracer))
	ts.register(ToolImportForm3922, "Parse a pasted Form 3922 line into calculator inputs",
		ImportForm3922Handler(cfg, tracer))
	ts.register(ToolReport, "Calculate one ESPP sale and render the text report",
		ReportHandler(cfg, tracer, generator))
	return ts
}

func (ts *Toolset) register(name, description string, handler ToolHandler) {
	ts.tools[name] = Tool{Name: name, Description: description, Handler: handler}
}

// List returns the registered tools sorted by name
func (ts *Toolset) List() []Tool {
	out := make([]Tool, 0, len(ts.tools))
	for _, tool := range ts.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call dispatches to the named tool
func (ts *Toolset) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	tool, ok := ts.tools[name]
	if !ok {
		metrics.APICalls.WithLabelValues("mcp", "unknown", "error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return tool.Handler(ctx, params)
}

// fail records a failed call on the span and in metrics
func fail(span trace.Span, toolName, errorType string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, errorType)
	span.SetAttributes(attribute.String("error", errorType))
	status := "error"
	if errorType == "validation" {
		status = "validation_error"
	}
	metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
}

func succeed(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}

func inputAttributes(in calculations.Inputs) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("purchase_date", in.Purchase.PurchaseDate.String()),
		attribute.String("offering_date", in.Purchase.OfferingDate.String()),
		attribute.String("sale_date", in.Sale.SaleDate.String()),
		attribute.Float64("fair_market_value_at_offering", in.Purchase.FairMarketValueAtOffering),
		attribute.Float64("fair_market_value_at_purchase", in.Purchase.FairMarketValueAtPurchase),
		attribute.Float64("discount_percentage", in.Purchase.DiscountPercentage),
		attribute.Float64("sale_price", in.Sale.SalePrice),
		attribute.Float64("shares_sold", in.Sale.SharesSold),
	}
}

func resultAttributes(r calculations.CalculationResult) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("is_qualifying_disposition", r.IsQualifyingDisposition),
		attribute.String("capital_gain_type", string(r.CapitalGainType)),
		attribute.Float64("adjusted_cost_basis", r.AdjustedCostBasis),
		attribute.Float64("total_tax_liability", r.TotalTaxLiability),
	}
}

// prepare decodes and validates the inputs of a single calculation
func prepare(cfg *config.Config, params map[string]interface{}) (calculations.Inputs, string, error) {
	in, err := DecodeInputs(cfg.Defaults, params)
	if err != nil {
		return calculations.Inputs{}, "decode", err
	}
	if err := validators.ValidateInputs(cfg, in); err != nil {
		return calculations.Inputs{}, "validation", fmt.Errorf("invalid parameters: %w", err)
	}
	return in, "", nil
}

// CalculateHandler handles espp_calculate
func CalculateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCalculate

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, errorType, err := prepare(cfg, params)
		if err != nil {
			fail(span, toolName, errorType, err)
			return nil, err
		}
		span.SetAttributes(inputAttributes(in)...)

		result := calculations.CalculateInputs(in)
		span.SetAttributes(resultAttributes(result)...)
		metrics.ObserveDisposition(result.IsQualifyingDisposition, string(result.CapitalGainType))

		succeed(span, toolName)
		return result, nil
	}
}

// CalculateBatchHandler handles espp_calculate_batch. Scenarios are independent;
// results keep the order of the request and are not aggregated.
func CalculateBatchHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCalculateBatch

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		raw, ok := params["scenarios"].([]interface{})
		if !ok {
			err := invalidParameter("scenarios")
			fail(span, toolName, "decode", err)
			return nil, err
		}
		if len(raw) == 0 || len(raw) > cfg.MaxBatchSize {
			err := &validators.Error{Fields: map[string]string{
				"scenarios": fmt.Sprintf("between 1 and %d scenarios are required", cfg.MaxBatchSize),
			}}
			fail(span, toolName, "validation", err)
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
		span.SetAttributes(attribute.Int("scenarios", len(raw)))

		scenarios := make([]calculations.Inputs, len(raw))
		for i, item := range raw {
			scenarioParams, ok := item.(map[string]interface{})
			if !ok {
				err := fmt.Errorf("scenario %d: %w", i, invalidParameter("scenarios"))
				fail(span, toolName, "decode", err)
				return nil, err
			}
			in, errorType, err := prepare(cfg, scenarioParams)
			if err != nil {
				err = fmt.Errorf("scenario %d: %w", i, err)
				fail(span, toolName, errorType, err)
				return nil, err
			}
			scenarios[i] = in
		}

		results := make([]calculations.CalculationResult, len(scenarios))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(1, cfg.MaxBatchConcurrency))
		for i := range scenarios {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = calculations.CalculateInputs(scenarios[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			fail(span, toolName, "calculation", err)
			return nil, fmt.Errorf("batch calculation failed: %w", err)
		}

		for _, r := range results {
			metrics.ObserveDisposition(r.IsQualifyingDisposition, string(r.CapitalGainType))
		}

		succeed(span, toolName)
		return results, nil
	}
}

// ImportForm3922Handler handles form3922_import. A non-matching paste is not an
// error: the result reports matched=false and carries no inputs.
func ImportForm3922Handler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolImportForm3922

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		text, ok := params["text"].(string)
		if !ok {
			err := invalidParameter("text")
			fail(span, toolName, "decode", err)
			return nil, err
		}

		in, matched := importer.ParseForm3922(text, cfg.Defaults)
		span.SetAttributes(attribute.Bool("matched", matched))

		succeed(span, toolName)
		if !matched {
			return ImportResult{Matched: false}, nil
		}
		return ImportResult{Matched: true, Inputs: &in}, nil
	}
}

// ReportHandler handles espp_report
func ReportHandler(cfg *config.Config, tracer trace.Tracer, generator *report.Generator) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolReport

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, errorType, err := prepare(cfg, params)
		if err != nil {
			fail(span, toolName, errorType, err)
			return nil, err
		}
		span.SetAttributes(inputAttributes(in)...)

		result := calculations.CalculateInputs(in)
		rep, err := generator.Generate(in, result)
		if err != nil {
			fail(span, toolName, "render", err)
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		span.SetAttributes(attribute.String("report_id", rep.ID))
		metrics.ObserveDisposition(result.IsQualifyingDisposition, string(result.CapitalGainType))

		succeed(span, toolName)
		return rep, nil
	}
}
