// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/catalog.go -destination=catalog_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/invoice_store.go -destination=invoice_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/jobs.go -destination=jobs_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/ledger.go -destination=ledger_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/report.go -destination=report_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/services.go -destination=services_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/unit_of_work.go -destination=unit_of_work_mock.go -package=mocks
