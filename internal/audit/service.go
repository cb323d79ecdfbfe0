package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/depaudit/depaudit/internal/model"
	"github.com/depaudit/depaudit/internal/report"
)

const (
	vulnerabilityScanLabelConstant      = "vulnerability scan"
	supplementalScanLabelConstant       = "supplemental vulnerability scan"
	licenseEnumerationLabelConstant     = "license enumeration"
	dependencyInventoryLabelConstant    = "dependency inventory"
	stepDegradedTemplateConstant        = "%s degraded: %w"
	stepAbortedTemplateConstant         = "%s failed: %w"
	stepDegradedLogMessageConstant      = "Collector step degraded to empty results"
	reportsWrittenLogMessageConstant    = "Audit reports written"
	stepLogFieldNameConstant            = "step"
	outputDirectoryLogFieldNameConstant = "output_directory"
	vulnerabilityCountLogFieldName      = "vulnerabilities"
	dependencyCountLogFieldNameConstant = "dependencies"
)

// Service dependency validation errors.
var (
	ErrVulnerabilityScannerNotConfigured = errors.New("vulnerability scanner not configured")
	ErrSupplementalScannerNotConfigured  = errors.New("supplemental scanner not configured")
	ErrDependencyEnumeratorNotConfigured = errors.New("dependency enumerator not configured")
	ErrOutdatedListerNotConfigured       = errors.New("outdated lister not configured")
	ErrReportSinkNotConfigured           = errors.New("report sink not configured")
)

// VulnerabilityScanner collects primary vulnerability findings for a requirements file.
type VulnerabilityScanner interface {
	Scan(executionContext context.Context, requirementsFile string) ([]model.VulnerabilityFinding, error)
}

// SupplementalScanner collects vulnerability findings from a second source.
type SupplementalScanner interface {
	Scan(executionContext context.Context) ([]model.VulnerabilityFinding, error)
}

// DependencyEnumerator lists installed dependencies with license information.
type DependencyEnumerator interface {
	Enumerate(executionContext context.Context) ([]model.DependencyRecord, error)
}

// OutdatedLister lists installed packages with newer releases available.
type OutdatedLister interface {
	List(executionContext context.Context) ([]model.OutdatedRecord, error)
}

// ReportSink persists rendered report artifacts.
type ReportSink interface {
	Write(artifacts report.Artifacts) error
}

// RunOptions carries the per-invocation settings of the audit pipeline.
type RunOptions struct {
	RequirementsFile string
	FailMode         FailMode
	OutputDirectory  string
}

// ServiceDependencies enumerates the collaborators required by the Service.
type ServiceDependencies struct {
	Logger               *zap.Logger
	VulnerabilityScanner VulnerabilityScanner
	SupplementalScanner  SupplementalScanner
	DependencyEnumerator DependencyEnumerator
	OutdatedLister       OutdatedLister
	ReportSink           ReportSink
	Clock                model.Clock
	Output               io.Writer
}

// Service orchestrates the audit pipeline: collect, aggregate, render, write.
type Service struct {
	logger               *zap.Logger
	vulnerabilityScanner VulnerabilityScanner
	supplementalScanner  SupplementalScanner
	dependencyEnumerator DependencyEnumerator
	outdatedLister       OutdatedLister
	reportSink           ReportSink
	clock                model.Clock
	outputWriter         io.Writer
}

// NewService validates dependencies and constructs a Service. A nil logger,
// clock, or output writer falls back to a safe default.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.VulnerabilityScanner == nil {
		return nil, ErrVulnerabilityScannerNotConfigured
	}
	if dependencies.SupplementalScanner == nil {
		return nil, ErrSupplementalScannerNotConfigured
	}
	if dependencies.DependencyEnumerator == nil {
		return nil, ErrDependencyEnumeratorNotConfigured
	}
	if dependencies.OutdatedLister == nil {
		return nil, ErrOutdatedListerNotConfigured
	}
	if dependencies.ReportSink == nil {
		return nil, ErrReportSinkNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = model.SystemClock{}
	}

	outputWriter := dependencies.Output
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	return &Service{
		logger:               logger,
		vulnerabilityScanner: dependencies.VulnerabilityScanner,
		supplementalScanner:  dependencies.SupplementalScanner,
		dependencyEnumerator: dependencies.DependencyEnumerator,
		outdatedLister:       dependencies.OutdatedLister,
		reportSink:           dependencies.ReportSink,
		clock:                clock,
		outputWriter:         outputWriter,
	}, nil
}

// Run executes the pipeline. The timestamp is taken once and shared by every
// renderer. In fail-open mode collector failures degrade to empty results and
// the accumulated errors are returned after the reports are written; in
// fail-closed mode the first collector failure aborts the run.
func (service *Service) Run(executionContext context.Context, options RunOptions) error {
	generatedAt := service.clock.Now().UTC()

	var degradedErrors *multierror.Error
	stepStatuses := make([]model.CollectionStepStatus, 0, 4)

	recordStep := func(step model.CollectionStep, label string, collectionError error) error {
		stepStatuses = append(stepStatuses, buildStepStatus(step, collectionError))
		if collectionError == nil {
			return nil
		}
		if options.FailMode == FailModeClosed {
			return fmt.Errorf(stepAbortedTemplateConstant, label, collectionError)
		}
		service.logger.Warn(stepDegradedLogMessageConstant, zap.String(stepLogFieldNameConstant, string(step)), zap.Error(collectionError))
		degradedErrors = multierror.Append(degradedErrors, fmt.Errorf(stepDegradedTemplateConstant, label, collectionError))
		return nil
	}

	primaryFindings, primaryError := service.vulnerabilityScanner.Scan(executionContext, options.RequirementsFile)
	if abortError := recordStep(model.CollectionStepVulnerabilityScan, vulnerabilityScanLabelConstant, primaryError); abortError != nil {
		return abortError
	}
	if primaryError != nil {
		primaryFindings = nil
	}

	supplementalFindings, supplementalError := service.supplementalScanner.Scan(executionContext)
	if abortError := recordStep(model.CollectionStepSupplementalScan, supplementalScanLabelConstant, supplementalError); abortError != nil {
		return abortError
	}
	if supplementalError != nil {
		supplementalFindings = nil
	}

	dependencyRecords, enumerationError := service.dependencyEnumerator.Enumerate(executionContext)
	if abortError := recordStep(model.CollectionStepLicenseEnumeration, licenseEnumerationLabelConstant, enumerationError); abortError != nil {
		return abortError
	}
	if enumerationError != nil {
		dependencyRecords = nil
	}

	outdatedRecords, outdatedError := service.outdatedLister.List(executionContext)
	if abortError := recordStep(model.CollectionStepDependencyInventory, dependencyInventoryLabelConstant, outdatedError); abortError != nil {
		return abortError
	}
	if outdatedError != nil {
		outdatedRecords = nil
	}

	dataset := model.AuditDataset{
		GeneratedAt:  generatedAt,
		Findings:     MergeFindings(primaryFindings, supplementalFindings),
		Dependencies: SortDependencies(dependencyRecords),
		Outdated:     outdatedRecords,
		Steps:        stepStatuses,
	}

	renderedJSON, renderError := report.RenderJSON(dataset)
	if renderError != nil {
		return renderError
	}

	artifacts := report.Artifacts{
		Markdown: report.RenderMarkdown(dataset),
		JSON:     renderedJSON,
		Summary:  report.RenderCISummary(dataset),
	}

	if writeError := service.reportSink.Write(artifacts); writeError != nil {
		return writeError
	}

	if transcriptError := report.WriteConsoleTranscript(service.outputWriter, dataset); transcriptError != nil {
		return transcriptError
	}

	service.logger.Info(
		reportsWrittenLogMessageConstant,
		zap.String(outputDirectoryLogFieldNameConstant, options.OutputDirectory),
		zap.Int(vulnerabilityCountLogFieldName, dataset.VulnerabilityCount()),
		zap.Int(dependencyCountLogFieldNameConstant, dataset.DependencyCount()),
	)

	return degradedErrors.ErrorOrNil()
}

func buildStepStatus(step model.CollectionStep, collectionError error) model.CollectionStepStatus {
	status := model.CollectionStepStatus{Step: step, Completed: collectionError == nil}
	if collectionError != nil {
		status.Detail = collectionError.Error()
	}
	return status
}
