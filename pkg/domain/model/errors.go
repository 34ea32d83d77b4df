package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrReportNotFound = goerr.New("report not found")
)
