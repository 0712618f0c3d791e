//go:generate mockgen -source=../order_source.go      -destination=./mock_order_source.go      -package=mocks
//go:generate mockgen -source=../cache_store.go       -destination=./mock_cache_store.go       -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../dashboard_service.go -destination=./mock_dashboard_service.go -package=mocks
//go:generate mockgen -source=../connectivity.go      -destination=./mock_connectivity.go      -package=mocks

package mocks
