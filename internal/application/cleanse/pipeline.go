package cleanse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// Config holds the pipeline tuning knobs.
type Config struct {
	MinDate         int64 // lower YYYYMMDD sanity bound
	MaxDate         int64 // upper YYYYMMDD sanity bound
	MaxReportIssues int   // retained issues per stage in the quality report
}

// Result summarizes one pipeline run.
type Result struct {
	Customers    int
	Products     int
	Sales        int
	DimCustomers int
	DimProducts  int
	FactSales    int
	Report       *quality.Report
}

// Pipeline runs the full bronze-to-silver transformation: customer
// deduplication and normalization, product history enrichment, sales repair,
// cross-source reconciliation, surrogate key assignment, and the gold
// dimension/fact projections. All stages recover at row granularity; the run
// only fails on source or sink errors.
type Pipeline struct {
	source bronze.Source
	sink   silver.Sink
	logger *zap.Logger

	dedup      CustomerDeduplicator
	dates      DateValidator
	repairer   SalesRepairer
	reconciler CustomerReconciler
	enricher   ProductEnricher
	assigner   KeyAssigner
	filter     ActiveFilter

	maxIssues int
}

// NewPipeline creates a pipeline over the given source and sink.
func NewPipeline(source bronze.Source, sink silver.Sink, logger *zap.Logger, cfg Config) *Pipeline {
	dates := NewDateValidator(cfg.MinDate, cfg.MaxDate)
	return &Pipeline{
		source:     source,
		sink:       sink,
		logger:     logger.Named("pipeline"),
		dates:      dates,
		repairer:   NewSalesRepairer(dates),
		reconciler: NewCustomerReconciler(),
		maxIssues:  cfg.MaxReportIssues,
	}
}

// Run executes the pipeline. The context is consulted between stages; a
// cancelled context aborts before the next stage starts.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	report := quality.NewReport(p.maxIssues)
	result := &Result{Report: report}
	log := p.logger.With(zap.String("run_id", report.RunID.String()))
	log.Info("pipeline run starting")

	// Customers: dedup, normalize, load.
	rawCustomers, err := p.source.CrmCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading CRM customers: %w", err)
	}
	audit := p.dedup.PreCheck(rawCustomers)
	log.Info("customer extract audited",
		zap.Int("rows", audit.TotalRows),
		zap.Int("null_keys", audit.NullKeyRows),
		zap.Int("duplicated_keys", audit.DuplicatedKeys),
		zap.Int("max_group_size", audit.MaxGroupSize),
	)

	customers, err := runStage(ctx, report, "customer_cleanse", len(rawCustomers),
		func(issues *quality.IssueCollection) ([]silver.Customer, error) {
			winners, dedupIssues := p.dedup.Deduplicate(rawCustomers)
			issues.AddAll(dedupIssues)
			return NormalizeCustomers(winners), nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceCustomers(ctx, customers); err != nil {
		return nil, fmt.Errorf("writing silver customers: %w", err)
	}
	result.Customers = len(customers)

	// Products: enrich history, load.
	rawProducts, err := p.source.CrmProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading CRM products: %w", err)
	}
	products, err := runStage(ctx, report, "product_enrich", len(rawProducts),
		func(issues *quality.IssueCollection) ([]silver.Product, error) {
			enriched, enrichIssues := p.enricher.Enrich(rawProducts)
			issues.AddAll(enrichIssues)
			return enriched, nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("writing silver products: %w", err)
	}
	result.Products = len(products)

	// Sales: validate dates, repair measures, load.
	rawSales, err := p.source.CrmSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading CRM sales: %w", err)
	}
	sales, err := runStage(ctx, report, "sales_repair", len(rawSales),
		func(issues *quality.IssueCollection) ([]silver.Sale, error) {
			repaired, repairIssues := p.repairer.Repair(rawSales)
			issues.AddAll(repairIssues)
			return repaired, nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceSales(ctx, sales); err != nil {
		return nil, fmt.Errorf("writing silver sales: %w", err)
	}
	result.Sales = len(sales)

	// Customer dimension: reconcile CRM with ERP, assign surrogate keys.
	erpCustomers, err := p.source.ErpCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ERP customers: %w", err)
	}
	erpLocations, err := p.source.ErpLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ERP locations: %w", err)
	}
	dimCustomers, err := runStage(ctx, report, "customer_reconcile", len(customers),
		func(issues *quality.IssueCollection) ([]silver.DimCustomer, error) {
			reconciled, reconcileIssues := p.reconciler.Reconcile(customers, erpCustomers, erpLocations)
			issues.AddAll(reconcileIssues)
			return p.assigner.AssignCustomers(reconciled), nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceDimCustomers(ctx, dimCustomers); err != nil {
		return nil, fmt.Errorf("writing customer dimension: %w", err)
	}
	result.DimCustomers = len(dimCustomers)

	// Product dimension: active versions only, category attributes joined.
	categories, err := p.source.ErpProductCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ERP product categories: %w", err)
	}
	dimProducts, err := runStage(ctx, report, "product_dimension", len(products),
		func(issues *quality.IssueCollection) ([]silver.DimProduct, error) {
			active := p.filter.ActiveProducts(products)
			dims, dimIssues := BuildDimProducts(active, categories)
			issues.AddAll(dimIssues)
			return p.assigner.AssignProducts(dims), nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceDimProducts(ctx, dimProducts); err != nil {
		return nil, fmt.Errorf("writing product dimension: %w", err)
	}
	result.DimProducts = len(dimProducts)

	// Sales facts: swap business keys for surrogate keys.
	facts, err := runStage(ctx, report, "fact_sales", len(sales),
		func(issues *quality.IssueCollection) ([]silver.FactSale, error) {
			built, factIssues := BuildFactSales(sales, dimProducts, dimCustomers)
			issues.AddAll(factIssues)
			return built, nil
		})
	if err != nil {
		return nil, err
	}
	if err := p.sink.ReplaceFactSales(ctx, facts); err != nil {
		return nil, fmt.Errorf("writing sales facts: %w", err)
	}
	result.FactSales = len(facts)

	report.Finish()
	report.Log(log)
	return result, nil
}

// runStage times a stage, records it in the report, and honors context
// cancellation between stages.
func runStage[T any](
	ctx context.Context,
	report *quality.Report,
	name string,
	inRows int,
	fn func(issues *quality.IssueCollection) ([]T, error),
) ([]T, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	started := time.Now()
	issues := report.StageCollection()
	out, err := fn(issues)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}

	report.AddStage(quality.StageReport{
		Stage:    name,
		InRows:   inRows,
		OutRows:  len(out),
		Issues:   issues,
		Duration: time.Since(started),
	})
	return out, nil
}
