package app

import "dockerfile-analyzer/internal/types"

type ClassifyRequest struct {
	Path        string
	Manifests   []string
	ScanProject bool
}

type ClassifyResult struct {
	Report         types.Report
	Classification types.Classification
}

type ASTRequest struct {
	Path         string
	ParseScripts bool
}
