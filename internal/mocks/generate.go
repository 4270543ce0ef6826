package mocks

//go:generate go tool -modfile=../../tools/go.mod mockgen -destination=metrics.go -package=mocks github.com/ygrebnov/stopwatch/metrics Gauge,Counter
//go:generate go tool -modfile=../../tools/go.mod mockgen -destination=monitor.go -package=mocks github.com/ygrebnov/stopwatch/monitor Monitor
